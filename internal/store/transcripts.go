package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/recap-flow/internal/transcript"
)

func (s *implStore) CreateTranscript(ctx context.Context, t Transcript, segments []transcript.Segment) (Transcript, error) {
	t.ID = uuid.NewString()
	t.CreatedAt = s.now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Transcript{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO transcripts (id, meeting_id, model, language, text, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.ID, t.MeetingID, t.Model, t.Language, t.Text, unixFromTime(t.CreatedAt))
	if err != nil {
		return Transcript{}, fmt.Errorf("insert transcript: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO segments (id, transcript_id, start_seconds, end_seconds, speaker_label, text)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return Transcript{}, fmt.Errorf("prepare segment insert: %w", err)
	}
	defer stmt.Close()

	for i, seg := range segments {
		var speaker sql.NullString
		if seg.SpeakerLabel != nil {
			speaker = sql.NullString{String: *seg.SpeakerLabel, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, uuid.NewString(), t.ID, seg.StartSeconds, seg.EndSeconds, speaker, seg.Text); err != nil {
			return Transcript{}, fmt.Errorf("insert segment %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Transcript{}, fmt.Errorf("commit transcript: %w", err)
	}
	return t, nil
}

func (s *implStore) TranscriptForMeeting(ctx context.Context, meetingID string) (Transcript, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, meeting_id, model, language, text, created_at
		FROM transcripts
		WHERE meeting_id = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, meetingID)

	var t Transcript
	var createdAt float64
	if err := row.Scan(&t.ID, &t.MeetingID, &t.Model, &t.Language, &t.Text, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Transcript{}, ErrNotFound
		}
		return Transcript{}, fmt.Errorf("scan transcript: %w", err)
	}
	t.CreatedAt = timeFromUnix(createdAt)
	return t, nil
}

func (s *implStore) Segments(ctx context.Context, transcriptID string) ([]transcript.Segment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT start_seconds, end_seconds, speaker_label, text
		FROM segments
		WHERE transcript_id = ?
		ORDER BY start_seconds ASC, rowid ASC
	`, transcriptID)
	if err != nil {
		return nil, fmt.Errorf("query segments: %w", err)
	}
	defer rows.Close()

	var segments []transcript.Segment
	for rows.Next() {
		var seg transcript.Segment
		var speaker sql.NullString
		if err := rows.Scan(&seg.StartSeconds, &seg.EndSeconds, &speaker, &seg.Text); err != nil {
			return nil, fmt.Errorf("scan segment: %w", err)
		}
		if speaker.Valid {
			label := speaker.String
			seg.SpeakerLabel = &label
		}
		segments = append(segments, seg)
	}
	return segments, rows.Err()
}
