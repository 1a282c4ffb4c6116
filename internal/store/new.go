package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS meetings (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	title TEXT NOT NULL,
	status TEXT NOT NULL,
	audio_path TEXT NOT NULL DEFAULT '',
	language TEXT NOT NULL DEFAULT '',
	created_at REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_meetings_user ON meetings(user_id, created_at);

CREATE TABLE IF NOT EXISTS transcripts (
	id TEXT PRIMARY KEY,
	meeting_id TEXT NOT NULL REFERENCES meetings(id) ON DELETE CASCADE,
	model TEXT NOT NULL,
	language TEXT NOT NULL DEFAULT '',
	text TEXT NOT NULL,
	created_at REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transcripts_meeting ON transcripts(meeting_id);

CREATE TABLE IF NOT EXISTS segments (
	id TEXT PRIMARY KEY,
	transcript_id TEXT NOT NULL REFERENCES transcripts(id) ON DELETE CASCADE,
	start_seconds REAL NOT NULL,
	end_seconds REAL NOT NULL,
	speaker_label TEXT,
	text TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_segments_transcript ON segments(transcript_id, start_seconds);

CREATE TABLE IF NOT EXISTS summaries (
	id TEXT PRIMARY KEY,
	meeting_id TEXT NOT NULL REFERENCES meetings(id) ON DELETE CASCADE,
	user_id TEXT NOT NULL,
	transcript_id TEXT NOT NULL REFERENCES transcripts(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	summary_text TEXT NOT NULL,
	format TEXT NOT NULL,
	language TEXT NOT NULL,
	detail_level TEXT NOT NULL,
	model_used TEXT NOT NULL,
	generation_time_seconds REAL NOT NULL,
	created_at REAL NOT NULL,
	updated_at REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_summaries_user ON summaries(user_id, created_at);

CREATE TABLE IF NOT EXISTS user_preferences (
	user_id TEXT PRIMARY KEY,
	default_format TEXT NOT NULL,
	default_language TEXT NOT NULL,
	default_detail_level TEXT NOT NULL,
	auto_generate_summary INTEGER NOT NULL,
	include_timestamps INTEGER NOT NULL,
	include_action_items INTEGER NOT NULL,
	include_decisions INTEGER NOT NULL,
	updated_at REAL NOT NULL
);
`

type implStore struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the SQLite database at path and applies the schema.
func Open(ctx context.Context, path string) (Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &implStore{db: db, now: time.Now}, nil
}

func (s *implStore) Close() error {
	return s.db.Close()
}

func unixFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}
