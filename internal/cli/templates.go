package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	apperrors "github.com/dpshade/pocket-analyst/internal/errors"
	"github.com/dpshade/pocket-analyst/internal/models"
)

var templatesCmd = &cobra.Command{
	Use:     "templates",
	Aliases: []string{"t"},
	Short:   "Manage the prompt template library",
}

var listTags []string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates in the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		templates := svc.ListTemplates()
		if len(listTags) > 0 {
			templates = svc.FilterByTags(listTags)
		}

		if jsonOutput {
			if len(listTags) == 0 {
				return printJSON(svc.ListSummaries())
			}
			summaries := make([]models.Summary, 0, len(templates))
			for _, tmpl := range templates {
				summaries = append(summaries, tmpl.Summary())
			}
			return printJSON(summaries)
		}

		if len(templates) == 0 {
			fmt.Println("No templates found.")
			return nil
		}
		renderTemplateTable(templates)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a template in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tmpl, ok := svc.GetTemplate(args[0])
		if !ok {
			return apperrors.NotFoundError(fmt.Sprintf("template %q", args[0]))
		}

		if jsonOutput {
			return printJSON(tmpl)
		}

		out, err := glamour.Render(templateMarkdown(tmpl), "auto")
		if err != nil {
			// Fall back to the raw markdown when the terminal renderer
			// cannot be set up.
			fmt.Println(templateMarkdown(tmpl))
			return nil
		}
		fmt.Print(out)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy-search templates by name and description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		matches := svc.SearchTemplates(args[0])
		if jsonOutput {
			summaries := make([]models.Summary, 0, len(matches))
			for _, tmpl := range matches {
				summaries = append(summaries, tmpl.Summary())
			}
			return printJSON(summaries)
		}
		if len(matches) == 0 {
			fmt.Println("No matching templates.")
			return nil
		}
		renderTemplateTable(matches)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove a template from the library",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := svc.RemoveTemplate(args[0])
		if err != nil {
			return err
		}
		if !removed {
			return apperrors.NotFoundError(fmt.Sprintf("template %q", args[0]))
		}
		fmt.Printf("Removed template %q\n", args[0])
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export all templates to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := svc.ExportTemplates(args[0]); err != nil {
			return err
		}
		fmt.Printf("Exported %d templates to %s\n", len(svc.ListTemplates()), args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import templates from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := svc.ImportTemplates(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d templates\n", count)
		return nil
	},
}

func init() {
	listCmd.Flags().StringSliceVar(&listTags, "tag", nil, "only show templates carrying any of these tags")

	templatesCmd.AddCommand(listCmd)
	templatesCmd.AddCommand(showCmd)
	templatesCmd.AddCommand(searchCmd)
	templatesCmd.AddCommand(runCmd)
	templatesCmd.AddCommand(createCmd)
	templatesCmd.AddCommand(rmCmd)
	templatesCmd.AddCommand(exportCmd)
	templatesCmd.AddCommand(importCmd)
}

func renderTemplateTable(templates []*models.Template) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Description", "Parameters", "Tags"})
	for _, tmpl := range templates {
		summary := tmpl.Summary()
		t.AppendRow(table.Row{
			summary.Name,
			summary.Description,
			strings.Join(summary.Parameters, ", "),
			strings.Join(summary.Tags, ", "),
		})
	}
	t.Render()
}

// templateMarkdown formats a template as a markdown document for the
// show command.
func templateMarkdown(tmpl *models.Template) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", tmpl.Name)
	if tmpl.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", tmpl.Description)
	}
	fmt.Fprintf(&b, "**Version:** %s\n\n", tmpl.Version)
	if len(tmpl.Tags) > 0 {
		fmt.Fprintf(&b, "**Tags:** %s\n\n", strings.Join(tmpl.Tags, ", "))
	}
	if tmpl.SystemMessage != "" {
		fmt.Fprintf(&b, "## System Message\n\n%s\n\n", tmpl.SystemMessage)
	}
	fmt.Fprintf(&b, "## Template\n\n```\n%s\n```\n", tmpl.Body)
	if len(tmpl.Parameters) > 0 {
		b.WriteString("\n## Parameters\n\n")
		summary := tmpl.Summary()
		for _, name := range summary.Parameters {
			fmt.Fprintf(&b, "- `$%s`: %s\n", name, tmpl.Parameters[name])
		}
	}
	if len(tmpl.Examples) > 0 {
		b.WriteString("\n## Examples\n")
		for i, example := range tmpl.Examples {
			fmt.Fprintf(&b, "\n### Example %d\n\n", i+1)
			for name, value := range example.Parameters {
				fmt.Fprintf(&b, "- `$%s` = %q\n", name, value)
			}
			if example.Output != "" {
				fmt.Fprintf(&b, "\nExpected output:\n\n```\n%s\n```\n", example.Output)
			}
		}
	}
	return b.String()
}
