package processor

import "context"

// Result identifies what one processed recording produced. SummaryID is empty when
// no summary was generated.
type Result struct {
	MeetingID    string
	TranscriptID string
	SummaryID    string
	Segments     int
}

// Processor turns one audio recording into a stored, optionally summarized, meeting.
type Processor interface {
	Process(ctx context.Context, audioPath string) (Result, error)
}
