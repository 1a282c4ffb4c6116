package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Process runs the ingest pipeline for one recording: meeting row, audio conversion,
// transcription, transcript storage, archiving and, when the user's preferences ask
// for it, summarization.
func (p *implProcessor) Process(ctx context.Context, audioPath string) (Result, error) {
	startTime := time.Now()
	filename := filepath.Base(audioPath)
	title := strings.TrimSuffix(filename, filepath.Ext(filename))

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting meeting processing: %s", audioPath)
	p.logger.Info(ctx, "========================================")

	m, err := p.meetings.StartMeeting(ctx, title)
	if err != nil {
		return Result{}, fmt.Errorf("start meeting: %w", err)
	}

	res, err := p.ingest(ctx, m.ID, audioPath)
	if err != nil {
		// Still record the failure when ingest stopped because ctx was cancelled.
		if markErr := p.meetings.MarkFailed(context.WithoutCancel(ctx), m.ID); markErr != nil {
			p.logger.Warn(ctx, "Failed to mark meeting %s as failed: %v", m.ID, markErr)
		}
		return Result{MeetingID: m.ID}, err
	}

	sum, done, err := p.meetings.AutoSummarize(ctx, m.ID)
	switch {
	case err != nil:
		// The transcript is stored; the summary can be generated again later.
		p.logger.Error(ctx, "Auto summary failed for meeting %s: %v", m.ID, err)
	case done:
		res.SummaryID = sum.ID
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Meeting: %s (%d segments)", res.MeetingID, res.Segments)
	if res.SummaryID != "" {
		p.logger.Info(ctx, "Summary: %s", res.SummaryID)
	}
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return res, nil
}

func (p *implProcessor) ingest(ctx context.Context, meetingID, audioPath string) (Result, error) {
	if err := os.MkdirAll(p.cfg.Paths.Temp, 0755); err != nil {
		return Result{}, fmt.Errorf("create temp dir: %w", err)
	}
	// One work dir per recording.
	workDir, err := os.MkdirTemp(p.cfg.Paths.Temp, "recap-*")
	if err != nil {
		return Result{}, fmt.Errorf("create work dir: %w", err)
	}
	defer p.cleanupTempDir(ctx, workDir)

	wavPath, err := p.convertAudio(ctx, audioPath, workDir)
	if err != nil {
		return Result{}, fmt.Errorf("convert audio: %w", err)
	}

	tr, err := p.transcribe(ctx, wavPath, workDir)
	if err != nil {
		return Result{}, fmt.Errorf("transcribe: %w", err)
	}

	archivedPath, err := p.moveToArchived(ctx, audioPath)
	if err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
		archivedPath = audioPath
	}

	stored, err := p.meetings.AttachTranscript(ctx, meetingID, archivedPath, p.cfg.Whisper.ModelName, tr)
	if err != nil {
		return Result{}, fmt.Errorf("store transcript: %w", err)
	}

	return Result{
		MeetingID:    meetingID,
		TranscriptID: stored.ID,
		Segments:     len(tr.Segments),
	}, nil
}
