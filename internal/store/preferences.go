package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

func (s *implStore) GetPreferences(ctx context.Context, userID string) (Preferences, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, default_format, default_language, default_detail_level,
			auto_generate_summary, include_timestamps, include_action_items, include_decisions, updated_at
		FROM user_preferences
		WHERE user_id = ?
	`, userID)

	var p Preferences
	var updatedAt float64
	err := row.Scan(&p.UserID, &p.DefaultFormat, &p.DefaultLanguage, &p.DefaultDetailLevel,
		&p.AutoGenerateSummary, &p.IncludeTimestamps, &p.IncludeActionItems, &p.IncludeDecisions, &updatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return s.SavePreferences(ctx, DefaultPreferences(userID))
	case err != nil:
		return Preferences{}, fmt.Errorf("scan preferences: %w", err)
	}
	p.UpdatedAt = timeFromUnix(updatedAt)
	return p, nil
}

func (s *implStore) SavePreferences(ctx context.Context, p Preferences) (Preferences, error) {
	p.UpdatedAt = s.now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_preferences (user_id, default_format, default_language, default_detail_level,
			auto_generate_summary, include_timestamps, include_action_items, include_decisions, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			default_format = excluded.default_format,
			default_language = excluded.default_language,
			default_detail_level = excluded.default_detail_level,
			auto_generate_summary = excluded.auto_generate_summary,
			include_timestamps = excluded.include_timestamps,
			include_action_items = excluded.include_action_items,
			include_decisions = excluded.include_decisions,
			updated_at = excluded.updated_at
	`, p.UserID, p.DefaultFormat, p.DefaultLanguage, p.DefaultDetailLevel,
		p.AutoGenerateSummary, p.IncludeTimestamps, p.IncludeActionItems, p.IncludeDecisions, unixFromTime(p.UpdatedAt))
	if err != nil {
		return Preferences{}, fmt.Errorf("upsert preferences: %w", err)
	}
	return p, nil
}
