package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	apperrors "github.com/dpshade/pocket-analyst/internal/errors"
	"github.com/dpshade/pocket-analyst/internal/ui"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new template interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		form := ui.NewCreateForm()
		if _, err := tea.NewProgram(form).Run(); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeCommandFailed, "interactive form failed")
		}
		if form.Cancelled() {
			fmt.Println("Cancelled.")
			return nil
		}

		tmpl := form.Template()
		path, err := svc.SaveTemplate(tmpl)
		if err != nil {
			return err
		}
		fmt.Printf("Saved template %q to %s\n", tmpl.Name, path)
		return nil
	},
}
