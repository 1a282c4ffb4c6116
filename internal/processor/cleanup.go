package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const maxArchiveSuffix = 10000

// moveToArchived moves the processed recording out of the inbox so it is not picked up
// again, and returns its new path.
func (p *implProcessor) moveToArchived(ctx context.Context, audioPath string) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return "", fmt.Errorf("create archived dir: %w", err)
	}
	destPath, err := reserveArchivePath(p.cfg.Paths.Archived, filepath.Base(audioPath))
	if err != nil {
		return "", err
	}

	p.logger.Info(ctx, "Moving to archived folder: %s -> %s", audioPath, destPath)

	if err := os.Rename(audioPath, destPath); err != nil {
		// Rename fails across devices; fall back to copy and remove.
		if err := copyFile(audioPath, destPath); err != nil {
			os.Remove(destPath)
			return "", fmt.Errorf("move to archived: %w", err)
		}
		if err := os.Remove(audioPath); err != nil {
			p.logger.Warn(ctx, "Failed to remove %s after copy: %v", audioPath, err)
		}
	}
	return destPath, nil
}

// reserveArchivePath creates an empty file under dir named after base, or base with a
// "_2", "_3", ... suffix when that name is taken, and returns its path. Earlier
// recordings with the same name are never overwritten.
func reserveArchivePath(dir, base string) (string, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for n := 1; n <= maxArchiveSuffix; n++ {
		name := base
		if n > 1 {
			name = fmt.Sprintf("%s_%d%s", stem, n, ext)
		}
		path := filepath.Join(dir, name)

		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("reserve archived path: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("reserve archived path: %w", err)
		}
		return path, nil
	}
	return "", fmt.Errorf("reserve archived path: too many recordings named %s", base)
}

// cleanupTempDir removes a per-recording work directory, logs warning if fails
func (p *implProcessor) cleanupTempDir(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp dir %s: %v", dir, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp dir: %s", dir)
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy: %w", err)
	}
	return out.Close()
}
