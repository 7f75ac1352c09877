package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dpshade/pocket-analyst/internal/clipboard"
	apperrors "github.com/dpshade/pocket-analyst/internal/errors"
	"github.com/dpshade/pocket-analyst/internal/llm"
	"github.com/dpshade/pocket-analyst/internal/renderer"
)

const promptPreviewLimit = 500

var (
	runModel       string
	runTemperature float64
	runMaxTokens   int
	runCopy        bool
	runDryRun      bool
)

var runCmd = &cobra.Command{
	Use:   "run <name> [param=value ...]",
	Short: "Render a template and send it to the configured LLM",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tmpl, ok := svc.GetTemplate(args[0])
		if !ok {
			return apperrors.NotFoundError(fmt.Sprintf("template %q", args[0]))
		}

		values, err := parseParams(args[1:])
		if err != nil {
			return err
		}

		if missing := renderer.MissingParameters(tmpl, values); len(missing) > 0 {
			var b strings.Builder
			b.WriteString("missing required parameters:\n")
			for _, name := range missing {
				fmt.Fprintf(&b, "  $%s: %s\n", name, tmpl.Parameters[name])
			}
			return apperrors.New(apperrors.ErrCodeInvalidInput, strings.TrimRight(b.String(), "\n"))
		}

		messages := renderer.ToMessages(tmpl, values)
		prompt := messages[len(messages)-1].Content

		if !jsonOutput {
			fmt.Println("Prompt preview:")
			fmt.Println(previewText(prompt, promptPreviewLimit))
			fmt.Println()
		}

		if runCopy {
			if err := clipboard.Copy(prompt); err != nil {
				logger.Warn("clipboard copy failed", "error", err)
			} else if !jsonOutput {
				fmt.Println("Prompt copied to clipboard.")
			}
		}

		if runDryRun {
			if jsonOutput {
				return printJSON(map[string]any{"prompt": prompt})
			}
			return nil
		}

		// The key must be in the environment before the provider builds
		// its auth header.
		cfg.InjectEnv()

		client, err := llm.NewClient(cfg.Provider, cfg.BaseURL, llm.WithLogger(logger))
		if err != nil {
			return apperrors.ExternalAPIError(err)
		}

		model := runModel
		if model == "" {
			model = cfg.Model
		}

		resp, err := client.Complete(cmd.Context(), llm.Request{
			Model:       model,
			Messages:    toLLMMessages(messages),
			Temperature: &runTemperature,
			MaxTokens:   runMaxTokens,
		})
		if err != nil {
			return apperrors.ExternalAPIError(err)
		}

		if jsonOutput {
			return printJSON(map[string]any{
				"template": tmpl.Name,
				"model":    resp.Model,
				"response": resp.Content,
				"usage":    resp.Usage,
			})
		}

		fmt.Println("Response:")
		fmt.Println(resp.Content)
		fmt.Println()
		fmt.Printf("Tokens: %d prompt + %d completion = %d total\n",
			resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runModel, "model", "", "model to use (defaults to the configured model)")
	runCmd.Flags().Float64Var(&runTemperature, "temperature", 0.7, "sampling temperature")
	runCmd.Flags().IntVar(&runMaxTokens, "max-tokens", 500, "maximum response tokens")
	runCmd.Flags().BoolVar(&runCopy, "copy", false, "copy the rendered prompt to the clipboard")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "render the prompt without calling the LLM")
}

// parseParams splits key=value arguments into a parameter map.
func parseParams(args []string) (map[string]string, error) {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput,
				fmt.Sprintf("invalid parameter %q, expected key=value", arg))
		}
		values[key] = value
	}
	return values, nil
}

func toLLMMessages(messages []renderer.Message) []llm.Message {
	out := make([]llm.Message, len(messages))
	for i, m := range messages {
		out[i] = llm.Message{Role: m.Role, Content: m.Content}
	}
	return out
}

// previewText truncates s for display, counting characters rather than
// bytes.
func previewText(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
