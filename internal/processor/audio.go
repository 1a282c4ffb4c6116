package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
)

const wavName = "audio.wav"

// convertAudio converts any ffmpeg-readable recording to PCM WAV at the configured
// sample rate and channel count (16 kHz mono by default) inside workDir.
func (p *implProcessor) convertAudio(ctx context.Context, audioPath, workDir string) (string, error) {
	wavPath := filepath.Join(workDir, wavName)

	p.logger.Info(ctx, "Converting audio: %s", audioPath)

	// -vn: drop any video stream
	// -c:a pcm_s16le: 16-bit PCM, what whisper.cpp reads
	args := []string{
		"-i", audioPath,
		"-vn",
		"-ar", strconv.Itoa(p.cfg.FFmpeg.SampleRate),
		"-ac", strconv.Itoa(p.cfg.FFmpeg.Channels),
		"-c:a", "pcm_s16le",
		"-y",
		wavPath,
	}

	if _, err := p.executor.Execute(ctx, p.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg convert audio: %w", err)
	}

	p.logger.Debug(ctx, "Audio converted: %s", wavPath)
	return wavPath, nil
}
