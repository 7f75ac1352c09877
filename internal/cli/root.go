// Package cli implements the pocket-analyst command tree.
package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dpshade/pocket-analyst/internal/config"
	_ "github.com/dpshade/pocket-analyst/internal/llm/providers" // register providers
	"github.com/dpshade/pocket-analyst/internal/service"
	"github.com/dpshade/pocket-analyst/internal/storage"
)

var (
	cfg    *config.Config
	svc    *service.Service
	logger *slog.Logger

	jsonOutput bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "pocket-analyst",
	Short: "Manage prompt templates and run LLM-backed document analysis",
	Long: `pocket-analyst keeps a local library of prompt templates, renders them
with parameter values, and sends documents to an LLM for structured
analysis (sentiment, entities, key points, structure, action items,
and metadata extraction).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		store, err := storage.NewStorage(cfg.LibraryDir, storage.WithLogger(logger))
		if err != nil {
			return err
		}
		svc, err = service.NewService(store, logger)
		if err != nil {
			return err
		}

		// First run seeds the starter catalog; an existing library is
		// never touched.
		if _, err := svc.InstallDefaults(); err != nil {
			return err
		}
		return nil
	},
}

// Execute runs the root command. A non-nil return means the process
// should exit with a failure status.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit machine-readable JSON output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(metadataCmd)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the template library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := svc.InitLibrary(); err != nil {
			return err
		}
		fmt.Printf("Library initialized at %s\n", svc.BaseDir())
		fmt.Printf("%d templates available\n", len(svc.ListTemplates()))
		return nil
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List all tags used across templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tags := svc.AllTags()
		if jsonOutput {
			return printJSON(tags)
		}
		for _, tag := range tags {
			fmt.Println(tag)
		}
		return nil
	},
}
