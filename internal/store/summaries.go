package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const summaryColumns = `id, meeting_id, user_id, transcript_id, title, summary_text, format, language,
	detail_level, model_used, generation_time_seconds, created_at, updated_at`

func (s *implStore) CreateSummary(ctx context.Context, sum Summary) (Summary, error) {
	sum.ID = uuid.NewString()
	sum.CreatedAt = s.now()
	sum.UpdatedAt = sum.CreatedAt

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO summaries (`+summaryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sum.ID, sum.MeetingID, sum.UserID, sum.TranscriptID, sum.Title, sum.Text, sum.Format, sum.Language,
		sum.DetailLevel, sum.ModelUsed, sum.GenerationTimeSeconds, unixFromTime(sum.CreatedAt), unixFromTime(sum.UpdatedAt))
	if err != nil {
		return Summary{}, fmt.Errorf("insert summary: %w", err)
	}
	return sum, nil
}

func (s *implStore) GetSummary(ctx context.Context, id, userID string) (Summary, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+summaryColumns+`
		FROM summaries
		WHERE id = ? AND user_id = ?
	`, id, userID)

	sum, err := scanSummary(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Summary{}, ErrNotFound
		}
		return Summary{}, fmt.Errorf("scan summary: %w", err)
	}
	return sum, nil
}

func (s *implStore) ListSummaries(ctx context.Context, userID string) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+summaryColumns+`
		FROM summaries
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

func (s *implStore) UpdateSummaryText(ctx context.Context, id, userID, text string) (Summary, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE summaries SET summary_text = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, text, unixFromTime(s.now()), id, userID)
	if err != nil {
		return Summary{}, fmt.Errorf("update summary: %w", err)
	}
	if err := requireRow(res); err != nil {
		return Summary{}, err
	}
	return s.GetSummary(ctx, id, userID)
}

func scanSummary(r scanner) (Summary, error) {
	var sum Summary
	var createdAt, updatedAt float64
	err := r.Scan(&sum.ID, &sum.MeetingID, &sum.UserID, &sum.TranscriptID, &sum.Title, &sum.Text,
		&sum.Format, &sum.Language, &sum.DetailLevel, &sum.ModelUsed, &sum.GenerationTimeSeconds,
		&createdAt, &updatedAt)
	if err != nil {
		return Summary{}, err
	}
	sum.CreatedAt = timeFromUnix(createdAt)
	sum.UpdatedAt = timeFromUnix(updatedAt)
	return sum, nil
}
