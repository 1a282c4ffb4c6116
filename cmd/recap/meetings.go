package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/recap-flow/internal/meeting"
	"github.com/nguyentantai21042004/recap-flow/internal/store"
	"github.com/nguyentantai21042004/recap-flow/internal/summarizer"
)

func newMeetingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "meetings",
		Short: "List ingested meetings, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			meetings, err := a.meetings.ListMeetings(cmd.Context())
			if err != nil {
				return err
			}
			if meetings == nil {
				meetings = []store.Meeting{}
			}

			return render(cmd.OutOrStdout(), meetings, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tLANGUAGE\tCREATED")
				for _, m := range meetings {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.Title, m.Status, m.Language, m.CreatedAt.Format("2006-01-02 15:04"))
				}
				return tw.Flush()
			})
		},
	}
}

func newSummarizeCommand() *cobra.Command {
	var (
		format     string
		language   string
		detail     string
		timestamps bool
	)

	cmd := &cobra.Command{
		Use:   "summarize <meeting-id>",
		Short: "Generate a new summary for a meeting",
		Long: `Generate and store a new summary for a transcribed meeting. Flags that are not set
use the stored preferences (see recap prefs).

Examples:
  recap summarize 3f2a... --format action_items
  recap summarize 3f2a... --language fr --detail detailed --timestamps=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			prefs, err := a.meetings.Preferences(ctx)
			if err != nil {
				return err
			}
			opts := optionsFromFlags(cmd, prefs, format, language, detail, timestamps)

			sum, err := a.meetings.Summarize(ctx, meeting.SummarizeInput{MeetingID: args[0], Options: opts})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), sum, func(w io.Writer) error {
				return printSummary(w, sum)
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "structured, bullet_points, paragraph or action_items")
	cmd.Flags().StringVar(&language, "language", "", "Summary language: en or fr")
	cmd.Flags().StringVar(&detail, "detail", "", "brief, medium or detailed")
	cmd.Flags().BoolVar(&timestamps, "timestamps", true, "Include segment timestamps in the prompt")
	return cmd
}

func optionsFromFlags(cmd *cobra.Command, prefs store.Preferences, format, language, detail string, timestamps bool) summarizer.Options {
	opts := meeting.OptionsFromPreferences(prefs)
	if cmd.Flags().Changed("format") {
		opts.Format = summarizer.Format(format)
	}
	if cmd.Flags().Changed("language") {
		opts.Language = summarizer.Language(language)
	}
	if cmd.Flags().Changed("detail") {
		opts.DetailLevel = summarizer.DetailLevel(detail)
	}
	if cmd.Flags().Changed("timestamps") {
		opts.IncludeTimestamps = timestamps
	}
	return opts.Normalize()
}

func printSummary(w io.Writer, sum store.Summary) error {
	fmt.Fprintf(w, "# %s\n\n", sum.Title)
	fmt.Fprintf(w, "id: %s  meeting: %s  format: %s  language: %s  detail: %s  model: %s  (%.1fs)\n\n",
		sum.ID, sum.MeetingID, sum.Format, sum.Language, sum.DetailLevel, sum.ModelUsed, sum.GenerationTimeSeconds)
	_, err := fmt.Fprintln(w, sum.Text)
	return err
}
