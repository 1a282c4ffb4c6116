package store

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/recap-flow/internal/transcript"
)

var ErrNotFound = errors.New("not found")

// Store persists meetings, transcripts, segments, summaries and preferences.
type Store interface {
	CreateMeeting(ctx context.Context, userID, title string) (Meeting, error)
	// UpdateMeeting writes Status, AudioPath and Language.
	UpdateMeeting(ctx context.Context, m Meeting) error
	GetMeeting(ctx context.Context, id string) (Meeting, error)
	ListMeetings(ctx context.Context, userID string) ([]Meeting, error)

	// CreateTranscript stores the transcript and its segments in one transaction.
	CreateTranscript(ctx context.Context, t Transcript, segments []transcript.Segment) (Transcript, error)
	TranscriptForMeeting(ctx context.Context, meetingID string) (Transcript, error)
	// Segments returns the segments of a transcript ordered by start time.
	Segments(ctx context.Context, transcriptID string) ([]transcript.Segment, error)

	CreateSummary(ctx context.Context, s Summary) (Summary, error)
	// GetSummary only returns summaries owned by userID.
	GetSummary(ctx context.Context, id, userID string) (Summary, error)
	// ListSummaries returns the user's summaries, newest first.
	ListSummaries(ctx context.Context, userID string) ([]Summary, error)
	UpdateSummaryText(ctx context.Context, id, userID, text string) (Summary, error)

	// GetPreferences creates the default preferences when the user has none yet.
	GetPreferences(ctx context.Context, userID string) (Preferences, error)
	SavePreferences(ctx context.Context, p Preferences) (Preferences, error)

	Close() error
}
