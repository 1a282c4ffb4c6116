package executor

import "context"

// Executor runs external commands (ffmpeg, whisper.cpp) and returns their stdout.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteInDir runs the command with dir as its working directory.
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
}
