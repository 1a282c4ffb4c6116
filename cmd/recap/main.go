// Command recap turns meeting recordings into stored, refinable summaries.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	cfgFile      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "recap",
	Short: "Local meeting notes: transcribe recordings and summarize them",
	Long: `recap watches an inbox for meeting recordings, transcribes them with whisper.cpp,
stores transcripts in SQLite and generates markdown summaries with an LLM.

COMMON WORKFLOWS:
  Run the pipeline:    recap serve
  One-off ingest:      recap ingest ./standup.m4a
  Summaries:           recap summaries  →  recap summaries <id>  →  recap refine <id> "shorter"
  Re-summarize:        recap summarize <meeting-id> --format action_items
  Use from an agent:   recap mcp`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml")

	rootCmd.AddCommand(
		newServeCommand(),
		newIngestCommand(),
		newMeetingsCommand(),
		newSummarizeCommand(),
		newSummariesCommand(),
		newRefineCommand(),
		newExportCommand(),
		newPrefsCommand(),
		newMCPCommand(),
		newVersionCommand(),
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
