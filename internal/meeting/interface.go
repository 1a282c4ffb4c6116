package meeting

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/recap-flow/internal/llm"
	"github.com/nguyentantai21042004/recap-flow/internal/refiner"
	"github.com/nguyentantai21042004/recap-flow/internal/store"
	"github.com/nguyentantai21042004/recap-flow/internal/summarizer"
	"github.com/nguyentantai21042004/recap-flow/internal/transcript"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("not authorized to access this meeting")
)

// SummarizeInput selects the meeting and the generation options.
type SummarizeInput struct {
	MeetingID string
	Options   summarizer.Options
}

// RefineInput is one refinement message about a stored summary.
type RefineInput struct {
	SummaryID string
	Message   string
	History   []llm.Message
}

// Service is the application layer over the store, the summarizer and the refiner.
// Every call acts on behalf of the configured user.
type Service interface {
	StartMeeting(ctx context.Context, title string) (store.Meeting, error)
	// AttachTranscript stores the transcription and marks the meeting done.
	AttachTranscript(ctx context.Context, meetingID, audioPath, model string, res transcript.Result) (store.Transcript, error)
	MarkFailed(ctx context.Context, meetingID string) error
	ListMeetings(ctx context.Context) ([]store.Meeting, error)
	Transcript(ctx context.Context, meetingID string) (store.Transcript, []transcript.Segment, error)

	Summarize(ctx context.Context, in SummarizeInput) (store.Summary, error)
	// AutoSummarize summarizes with the user's stored defaults when auto generation
	// is enabled. It returns false when it was skipped.
	AutoSummarize(ctx context.Context, meetingID string) (store.Summary, bool, error)
	Refine(ctx context.Context, in RefineInput) (refiner.Result, error)

	ListSummaries(ctx context.Context) ([]store.Summary, error)
	GetSummary(ctx context.Context, id string) (store.Summary, error)
	ExportSummary(ctx context.Context, id, dir string) (mdPath, docxPath string, err error)

	Preferences(ctx context.Context) (store.Preferences, error)
	SavePreferences(ctx context.Context, p store.Preferences) (store.Preferences, error)
}
