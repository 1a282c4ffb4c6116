package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

func (s *implStore) CreateMeeting(ctx context.Context, userID, title string) (Meeting, error) {
	m := Meeting{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Status:    MeetingStatusProcessing,
		CreatedAt: s.now(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meetings (id, user_id, title, status, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, m.ID, m.UserID, m.Title, m.Status, unixFromTime(m.CreatedAt))
	if err != nil {
		return Meeting{}, fmt.Errorf("insert meeting: %w", err)
	}
	return m, nil
}

func (s *implStore) UpdateMeeting(ctx context.Context, m Meeting) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE meetings SET status = ?, audio_path = ?, language = ?
		WHERE id = ?
	`, m.Status, m.AudioPath, m.Language, m.ID)
	if err != nil {
		return fmt.Errorf("update meeting: %w", err)
	}
	return requireRow(res)
}

func (s *implStore) GetMeeting(ctx context.Context, id string) (Meeting, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, status, audio_path, language, created_at
		FROM meetings
		WHERE id = ?
	`, id)

	m, err := scanMeeting(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Meeting{}, ErrNotFound
		}
		return Meeting{}, fmt.Errorf("scan meeting: %w", err)
	}
	return m, nil
}

func (s *implStore) ListMeetings(ctx context.Context, userID string) ([]Meeting, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, title, status, audio_path, language, created_at
		FROM meetings
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query meetings: %w", err)
	}
	defer rows.Close()

	var meetings []Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMeeting(r scanner) (Meeting, error) {
	var m Meeting
	var createdAt float64
	if err := r.Scan(&m.ID, &m.UserID, &m.Title, &m.Status, &m.AudioPath, &m.Language, &createdAt); err != nil {
		return Meeting{}, err
	}
	m.CreatedAt = timeFromUnix(createdAt)
	return m, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
