package watcher

import "context"

// Watcher monitors the inbox directory for new recordings.
type Watcher interface {
	// Start processes recordings already in the inbox, then handles new ones until ctx
	// is done. It waits for in-flight handlers before returning.
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles one recording.
type EventHandler func(ctx context.Context, filePath string) error
