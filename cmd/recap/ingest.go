package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/recap-flow/internal/processor"
	"github.com/nguyentantai21042004/recap-flow/pkg/executor"
)

func newIngestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <audio> [audio...]",
		Short: "Transcribe recordings once, without watching the inbox",
		Long: `Transcribe and store the given recordings, up to performance.max_concurrent at a time.
Each recording is moved to paths.archived once transcribed.

Examples:
  recap ingest ./standup.m4a
  recap ingest recordings/*.wav -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := ensureDirectories(a.cfg); err != nil {
				return err
			}
			proc := processor.New(a.cfg, executor.New(), a.meetings, a.log)

			var mu sync.Mutex
			results := make([]processor.Result, len(args))

			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(a.cfg.Performance.MaxConcurrent)
			for i, path := range args {
				g.Go(func() error {
					res, err := proc.Process(gctx, path)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					mu.Lock()
					results[i] = res
					mu.Unlock()
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), results, func(w io.Writer) error {
				for i, r := range results {
					fmt.Fprintf(w, "%s\tmeeting=%s\tsegments=%d", args[i], r.MeetingID, r.Segments)
					if r.SummaryID != "" {
						fmt.Fprintf(w, "\tsummary=%s", r.SummaryID)
					}
					fmt.Fprintln(w)
				}
				return nil
			})
		},
	}
}
