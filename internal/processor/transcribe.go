package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/recap-flow/internal/transcript"
)

// transcribe runs whisper.cpp on the WAV file with JSON output and decodes the result.
// whisper.cpp runs inside workDir so its output file stays next to the WAV.
func (p *implProcessor) transcribe(ctx context.Context, wavPath, workDir string) (transcript.Result, error) {
	prefix := strings.TrimSuffix(filepath.Base(wavPath), filepath.Ext(wavPath))

	modelPath, err := filepath.Abs(p.cfg.Whisper.ModelPath)
	if err != nil {
		return transcript.Result{}, fmt.Errorf("resolve model path: %w", err)
	}

	lang := p.cfg.Whisper.Language
	if lang == "" {
		lang = "auto"
	}

	p.logger.Info(ctx, "Starting transcription with %d threads (language: %s): %s",
		p.cfg.Whisper.Threads, lang, wavPath)

	// -oj: JSON output with per-segment offsets
	// -l: language, "auto" lets whisper detect it
	args := []string{
		"-m", modelPath,
		"-f", filepath.Base(wavPath),
		"-oj",
		"-l", lang,
		"-t", strconv.Itoa(p.cfg.Whisper.Threads),
		"--output-file", prefix,
	}
	if p.cfg.Whisper.Prompt != "" {
		args = append(args, "--prompt", p.cfg.Whisper.Prompt)
	}

	if _, err := p.executor.ExecuteInDir(ctx, workDir, p.binaryPath(), args...); err != nil {
		return transcript.Result{}, fmt.Errorf("whisper transcribe: %w", err)
	}

	jsonPath := filepath.Join(workDir, prefix+".json")
	f, err := os.Open(jsonPath)
	if err != nil {
		return transcript.Result{}, fmt.Errorf("open whisper output: %w", err)
	}
	defer f.Close()

	res, err := transcript.DecodeWhisperJSON(f)
	if err != nil {
		return transcript.Result{}, err
	}

	p.logger.Info(ctx, "Transcription completed: %d segments", len(res.Segments))
	return res, nil
}

// binaryPath makes a relative whisper binary path absolute, since the command runs in
// another directory. Bare names are left for PATH lookup.
func (p *implProcessor) binaryPath() string {
	bin := p.cfg.Whisper.BinaryPath
	if !strings.ContainsRune(bin, filepath.Separator) {
		return bin
	}
	if abs, err := filepath.Abs(bin); err == nil {
		return abs
	}
	return bin
}
