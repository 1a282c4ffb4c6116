package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newPrefsCommand() *cobra.Command {
	var (
		format      string
		language    string
		detail      string
		autoSummary bool
		timestamps  bool
		actionItems bool
		decisions   bool
	)

	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or update summary preferences",
		Long: `Show the summary preferences, creating the defaults on first use. Any flag that is
set updates the stored value.

Examples:
  recap prefs
  recap prefs --language fr --format bullet_points
  recap prefs --auto-summary=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.meetings.Preferences(ctx)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.NFlag() > 0 {
				if flags.Changed("format") {
					p.DefaultFormat = format
				}
				if flags.Changed("language") {
					p.DefaultLanguage = language
				}
				if flags.Changed("detail") {
					p.DefaultDetailLevel = detail
				}
				if flags.Changed("auto-summary") {
					p.AutoGenerateSummary = autoSummary
				}
				if flags.Changed("timestamps") {
					p.IncludeTimestamps = timestamps
				}
				if flags.Changed("action-items") {
					p.IncludeActionItems = actionItems
				}
				if flags.Changed("decisions") {
					p.IncludeDecisions = decisions
				}
				if p, err = a.meetings.SavePreferences(ctx, p); err != nil {
					return err
				}
			}

			return render(cmd.OutOrStdout(), p, func(w io.Writer) error {
				fmt.Fprintf(w, "format:        %s\n", p.DefaultFormat)
				fmt.Fprintf(w, "language:      %s\n", p.DefaultLanguage)
				fmt.Fprintf(w, "detail:        %s\n", p.DefaultDetailLevel)
				fmt.Fprintf(w, "auto summary:  %t\n", p.AutoGenerateSummary)
				fmt.Fprintf(w, "timestamps:    %t\n", p.IncludeTimestamps)
				fmt.Fprintf(w, "action items:  %t\n", p.IncludeActionItems)
				_, err := fmt.Fprintf(w, "decisions:     %t\n", p.IncludeDecisions)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Default format")
	cmd.Flags().StringVar(&language, "language", "", "Default language")
	cmd.Flags().StringVar(&detail, "detail", "", "Default detail level")
	cmd.Flags().BoolVar(&autoSummary, "auto-summary", true, "Summarize right after transcription")
	cmd.Flags().BoolVar(&timestamps, "timestamps", true, "Include timestamps by default")
	cmd.Flags().BoolVar(&actionItems, "action-items", true, "Include action items")
	cmd.Flags().BoolVar(&decisions, "decisions", true, "Include decisions")
	return cmd
}
