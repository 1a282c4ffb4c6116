package store

import "time"

const (
	MeetingStatusProcessing = "processing"
	MeetingStatusDone       = "done"
	MeetingStatusFailed     = "failed"
)

// Meeting is one ingested recording.
type Meeting struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	AudioPath string    `json:"audio_path,omitempty"`
	Language  string    `json:"language,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Transcript is the full transcription of a meeting. Its segments live in their own table.
type Transcript struct {
	ID        string    `json:"id"`
	MeetingID string    `json:"meeting_id"`
	Model     string    `json:"model"`
	Language  string    `json:"language"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary is a generated summary together with the parameters it was generated with.
type Summary struct {
	ID                    string    `json:"id"`
	MeetingID             string    `json:"meeting_id"`
	UserID                string    `json:"user_id"`
	TranscriptID          string    `json:"transcript_id"`
	Title                 string    `json:"title"`
	Text                  string    `json:"summary_text"`
	Format                string    `json:"format"`
	Language              string    `json:"language"`
	DetailLevel           string    `json:"detail_level"`
	ModelUsed             string    `json:"model_used"`
	GenerationTimeSeconds float64   `json:"generation_time_seconds"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Preferences are the per-user summary defaults.
type Preferences struct {
	UserID              string    `json:"user_id"`
	DefaultFormat       string    `json:"default_format"`
	DefaultLanguage     string    `json:"default_language"`
	DefaultDetailLevel  string    `json:"default_detail_level"`
	AutoGenerateSummary bool      `json:"auto_generate_summary"`
	IncludeTimestamps   bool      `json:"include_timestamps"`
	IncludeActionItems  bool      `json:"include_action_items"`
	IncludeDecisions    bool      `json:"include_decisions"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// DefaultPreferences are created on the first read for a user.
func DefaultPreferences(userID string) Preferences {
	return Preferences{
		UserID:              userID,
		DefaultFormat:       "structured",
		DefaultLanguage:     "en",
		DefaultDetailLevel:  "medium",
		AutoGenerateSummary: true,
		IncludeTimestamps:   true,
		IncludeActionItems:  true,
		IncludeDecisions:    true,
	}
}
