package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dpshade/pocket-analyst/internal/analyzer"
	"github.com/dpshade/pocket-analyst/internal/document"
	apperrors "github.com/dpshade/pocket-analyst/internal/errors"
	"github.com/dpshade/pocket-analyst/internal/llm"
)

var analyzeModel string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <kind> <file>",
	Short: "Run a structured analysis of a document",
	Long: "Send a document to the configured LLM for structured analysis.\n\n" +
		"Available kinds:\n" + kindHelp(),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, ok := analyzer.ParseKind(args[0])
		if !ok {
			return apperrors.New(apperrors.ErrCodeInvalidKind,
				fmt.Sprintf("unknown analysis kind %q, expected one of: %s", args[0], kindNames()))
		}
		return runAnalysis(cmd, kind, args[1])
	},
}

var metadataCmd = &cobra.Command{
	Use:   "metadata <file>",
	Short: "Extract title, summary, keywords, and topics from a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalysis(cmd, analyzer.KindMetadata, args[0])
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "model to use (defaults to the configured model)")
	metadataCmd.Flags().StringVar(&analyzeModel, "model", "", "model to use (defaults to the configured model)")
}

func runAnalysis(cmd *cobra.Command, kind analyzer.Kind, path string) error {
	doc, err := document.NewLoader().Load(path)
	if err != nil {
		return err
	}

	cfg.InjectEnv()
	client, err := llm.NewClient(cfg.Provider, cfg.BaseURL, llm.WithLogger(logger))
	if err != nil {
		return apperrors.ExternalAPIError(err)
	}

	model := analyzeModel
	if model == "" {
		model = cfg.Model
	}

	result := analyzer.New(client, logger).Analyze(cmd.Context(), doc.Text, kind, model)

	if jsonOutput {
		if err := printJSON(result); err != nil {
			return err
		}
		if result.Errored() {
			return apperrors.New(errorCodeFor(result.ErrorKind), result.Error)
		}
		return nil
	}

	if result.Errored() {
		return apperrors.New(errorCodeFor(result.ErrorKind), result.Error)
	}

	fmt.Printf("%s analysis of %s (model %s)\n\n", kind, doc.Path, result.Model)
	printAnalysisData(result.Data)
	return nil
}

// errorCodeFor maps an analysis error kind to the shared error code so
// the CLI surfaces it like any other failure.
func errorCodeFor(kind analyzer.ErrorKind) apperrors.ErrorCode {
	switch kind {
	case analyzer.ErrorInvalidKind:
		return apperrors.ErrCodeInvalidKind
	case analyzer.ErrorMalformedResponse:
		return apperrors.ErrCodeMalformedResponse
	case analyzer.ErrorSchemaViolation:
		return apperrors.ErrCodeSchemaViolation
	default:
		return apperrors.ErrCodeExternalAPI
	}
}

// printAnalysisData renders the result fields in a stable order.
func printAnalysisData(data map[string]any) {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Printf("%s:\n", key)
		switch value := data[key].(type) {
		case []any:
			for _, item := range value {
				fmt.Printf("  - %v\n", item)
			}
		case map[string]any:
			subKeys := make([]string, 0, len(value))
			for k := range value {
				subKeys = append(subKeys, k)
			}
			sort.Strings(subKeys)
			for _, k := range subKeys {
				fmt.Printf("  %s: %v\n", k, value[k])
			}
		default:
			fmt.Printf("  %v\n", value)
		}
		fmt.Println()
	}
}

func kindNames() string {
	kinds := analyzer.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func kindHelp() string {
	var b strings.Builder
	for _, k := range analyzer.Kinds() {
		fmt.Fprintf(&b, "  %-15s %s\n", k, k.Description())
	}
	return strings.TrimRight(b.String(), "\n")
}
