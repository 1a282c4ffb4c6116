package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/recap-flow/internal/llm"
	"github.com/nguyentantai21042004/recap-flow/internal/meeting"
	"github.com/nguyentantai21042004/recap-flow/internal/store"
	"github.com/nguyentantai21042004/recap-flow/internal/summarizer"
)

func newSummariesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summaries [summary-id]",
		Short: "List summaries, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if len(args) == 1 {
				sum, err := a.meetings.GetSummary(ctx, args[0])
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), sum, func(w io.Writer) error {
					return printSummary(w, sum)
				})
			}

			summaries, err := a.meetings.ListSummaries(ctx)
			if err != nil {
				return err
			}
			if summaries == nil {
				summaries = []store.Summary{}
			}
			return render(cmd.OutOrStdout(), summaries, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tTITLE\tFORMAT\tLANGUAGE\tDETAIL\tCREATED")
				for _, s := range summaries {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
						s.ID, s.Title, s.Format, s.Language, s.DetailLevel, s.CreatedAt.Format("2006-01-02 15:04"))
				}
				return tw.Flush()
			})
		},
	}
}

func newRefineCommand() *cobra.Command {
	var historyFile string

	cmd := &cobra.Command{
		Use:   "refine <summary-id> <message...>",
		Short: "Ask for a change to a summary",
		Long: `Send one refinement message about a summary. When the reply is a complete revised
summary it replaces the stored one (and its .md/.docx files); otherwise the reply is
printed and nothing is stored.

With --history the earlier turns are read from the file (YAML or JSON list of
{role, content}) and this turn is appended to it, so consecutive calls form one
conversation.

Examples:
  recap refine 9c1e... "make it shorter and focus on decisions"
  recap refine 9c1e... what was decided about the budget?
  recap refine 9c1e... --history chat.yaml "and drop the timeline"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			var history []llm.Message
			if historyFile != "" {
				if history, err = loadHistory(historyFile); err != nil {
					return err
				}
			}

			message := strings.Join(args[1:], " ")
			res, err := a.meetings.Refine(ctx, meeting.RefineInput{
				SummaryID: args[0],
				Message:   message,
				History:   history,
			})
			if err != nil {
				return err
			}

			if historyFile != "" {
				history = append(history,
					llm.Message{Role: llm.RoleUser, Content: message},
					llm.Message{Role: llm.RoleAssistant, Content: res.AssistantMessage},
				)
				if err := saveHistory(historyFile, history); err != nil {
					return err
				}
			}

			return render(cmd.OutOrStdout(), res, func(w io.Writer) error {
				if res.IsSummaryUpdated {
					fmt.Fprintln(w, "Summary updated:")
					fmt.Fprintln(w)
					_, err := fmt.Fprintln(w, res.UpdatedSummary)
					return err
				}
				_, err := fmt.Fprintln(w, res.AssistantMessage)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&historyFile, "history", "", "File holding the conversation so far; updated after the reply")
	return cmd
}

func newExportCommand() *cobra.Command {
	var (
		dir            string
		withTranscript bool
	)

	cmd := &cobra.Command{
		Use:   "export <summary-id>",
		Short: "Write a summary as .md and .docx files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if dir == "" {
				dir = a.cfg.Paths.Output
			}

			mdPath, docxPath, err := a.meetings.ExportSummary(ctx, args[0], dir)
			if err != nil {
				return err
			}
			paths := []string{mdPath, docxPath}

			if withTranscript {
				sum, err := a.meetings.GetSummary(ctx, args[0])
				if err != nil {
					return err
				}
				_, segments, err := a.meetings.Transcript(ctx, sum.MeetingID)
				if err != nil {
					return err
				}
				path := filepath.Join(dir, summarizer.ArtifactStem(sum.Title, sum.ID)+"_transcript.docx")
				if err := summarizer.ExportTranscriptDocx(sum.Title, segments, path); err != nil {
					return err
				}
				paths = append(paths, path)
			}

			return render(cmd.OutOrStdout(), paths, func(w io.Writer) error {
				for _, p := range paths {
					fmt.Fprintln(w, p)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (default paths.output)")
	cmd.Flags().BoolVar(&withTranscript, "transcript", false, "Also export the raw transcript as .docx")
	return cmd
}
