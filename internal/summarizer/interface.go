package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/recap-flow/internal/transcript"
)

// Summarizer turns an ordered transcript into one bounded markdown summary.
type Summarizer interface {
	// Summarize returns the final summary text. Segments must already be sorted by
	// start time. Any completion failure fails the whole call; partial summaries are
	// never returned.
	Summarize(ctx context.Context, segments []transcript.Segment, opts Options) (string, error)
}
