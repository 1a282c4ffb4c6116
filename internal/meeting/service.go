package meeting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/recap-flow/internal/refiner"
	"github.com/nguyentantai21042004/recap-flow/internal/store"
	"github.com/nguyentantai21042004/recap-flow/internal/summarizer"
	"github.com/nguyentantai21042004/recap-flow/internal/transcript"
)

func (s *implService) StartMeeting(ctx context.Context, title string) (store.Meeting, error) {
	return s.store.CreateMeeting(ctx, s.cfg.UserID, title)
}

func (s *implService) AttachTranscript(ctx context.Context, meetingID, audioPath, model string, res transcript.Result) (store.Transcript, error) {
	m, err := s.ownedMeeting(ctx, meetingID)
	if err != nil {
		return store.Transcript{}, err
	}

	tr, err := s.store.CreateTranscript(ctx, store.Transcript{
		MeetingID: m.ID,
		Model:     model,
		Language:  res.Language,
		Text:      res.Text,
	}, res.Segments)
	if err != nil {
		return store.Transcript{}, fmt.Errorf("save transcript: %w", err)
	}

	m.Status = store.MeetingStatusDone
	m.AudioPath = audioPath
	m.Language = res.Language
	if err := s.store.UpdateMeeting(ctx, m); err != nil {
		return store.Transcript{}, fmt.Errorf("update meeting: %w", err)
	}

	s.logger.Info(ctx, "Meeting %s transcribed: %d segments, language=%s", m.ID, len(res.Segments), res.Language)
	return tr, nil
}

func (s *implService) MarkFailed(ctx context.Context, meetingID string) error {
	m, err := s.ownedMeeting(ctx, meetingID)
	if err != nil {
		return err
	}
	m.Status = store.MeetingStatusFailed
	return s.store.UpdateMeeting(ctx, m)
}

func (s *implService) ListMeetings(ctx context.Context) ([]store.Meeting, error) {
	return s.store.ListMeetings(ctx, s.cfg.UserID)
}

func (s *implService) Transcript(ctx context.Context, meetingID string) (store.Transcript, []transcript.Segment, error) {
	if _, err := s.ownedMeeting(ctx, meetingID); err != nil {
		return store.Transcript{}, nil, err
	}

	tr, err := s.store.TranscriptForMeeting(ctx, meetingID)
	if err != nil {
		return store.Transcript{}, nil, mapNotFound(err, "transcript")
	}
	segments, err := s.store.Segments(ctx, tr.ID)
	if err != nil {
		return store.Transcript{}, nil, err
	}
	return tr, segments, nil
}

// Summarize loads the meeting's segments, runs the summarizer and stores the result.
// The summary row keeps the normalized options that were actually used.
func (s *implService) Summarize(ctx context.Context, in SummarizeInput) (store.Summary, error) {
	startTime := time.Now()

	m, err := s.ownedMeeting(ctx, in.MeetingID)
	if err != nil {
		return store.Summary{}, err
	}

	tr, segments, err := s.Transcript(ctx, m.ID)
	if err != nil {
		return store.Summary{}, err
	}
	if len(segments) == 0 {
		return store.Summary{}, fmt.Errorf("%w: no segments for meeting %s", ErrNotFound, m.ID)
	}

	opts := in.Options.Normalize()
	text, err := s.summarizer.Summarize(ctx, segments, opts)
	if err != nil {
		return store.Summary{}, fmt.Errorf("summarize meeting %s: %w", m.ID, err)
	}

	sum, err := s.store.CreateSummary(ctx, store.Summary{
		MeetingID:             m.ID,
		UserID:                s.cfg.UserID,
		TranscriptID:          tr.ID,
		Title:                 m.Title,
		Text:                  text,
		Format:                string(opts.Format),
		Language:              string(opts.Language),
		DetailLevel:           string(opts.DetailLevel),
		ModelUsed:             s.cfg.ModelUsed,
		GenerationTimeSeconds: time.Since(startTime).Seconds(),
	})
	if err != nil {
		return store.Summary{}, fmt.Errorf("save summary: %w", err)
	}

	s.logger.Info(ctx, "Summary %s for meeting %s generated in %.1fs", sum.ID, m.ID, sum.GenerationTimeSeconds)
	s.writeArtifacts(ctx, sum)
	return sum, nil
}

func (s *implService) AutoSummarize(ctx context.Context, meetingID string) (store.Summary, bool, error) {
	prefs, err := s.store.GetPreferences(ctx, s.cfg.UserID)
	if err != nil {
		return store.Summary{}, false, fmt.Errorf("load preferences: %w", err)
	}
	if !prefs.AutoGenerateSummary {
		s.logger.Debug(ctx, "Auto summary disabled, skipping meeting %s", meetingID)
		return store.Summary{}, false, nil
	}

	sum, err := s.Summarize(ctx, SummarizeInput{MeetingID: meetingID, Options: OptionsFromPreferences(prefs)})
	if err != nil {
		return store.Summary{}, false, err
	}
	return sum, true, nil
}

// Refine runs one refinement turn. The stored summary is only overwritten when the
// reply is classified as a replacement summary.
func (s *implService) Refine(ctx context.Context, in RefineInput) (refiner.Result, error) {
	sum, err := s.GetSummary(ctx, in.SummaryID)
	if err != nil {
		return refiner.Result{}, err
	}

	res, err := s.refiner.Refine(ctx, refiner.Turn{
		CurrentSummary: sum.Text,
		Language:       sum.Language,
		UserMessage:    in.Message,
		History:        in.History,
	})
	if err != nil {
		return refiner.Result{}, fmt.Errorf("refine summary %s: %w", sum.ID, err)
	}

	if res.IsSummaryUpdated {
		updated, err := s.store.UpdateSummaryText(ctx, sum.ID, s.cfg.UserID, res.UpdatedSummary)
		if err != nil {
			return refiner.Result{}, fmt.Errorf("save refined summary: %w", err)
		}
		s.logger.Info(ctx, "Summary %s refined", sum.ID)
		s.writeArtifacts(ctx, updated)
	}
	return res, nil
}

func (s *implService) ListSummaries(ctx context.Context) ([]store.Summary, error) {
	return s.store.ListSummaries(ctx, s.cfg.UserID)
}

func (s *implService) GetSummary(ctx context.Context, id string) (store.Summary, error) {
	sum, err := s.store.GetSummary(ctx, id, s.cfg.UserID)
	if err != nil {
		return store.Summary{}, mapNotFound(err, "summary")
	}
	return sum, nil
}

func (s *implService) ExportSummary(ctx context.Context, id, dir string) (string, string, error) {
	sum, err := s.GetSummary(ctx, id)
	if err != nil {
		return "", "", err
	}
	return summarizer.ExportAll(dir, sum.Title, sum.ID, sum.Text, sum.UpdatedAt)
}

func (s *implService) Preferences(ctx context.Context) (store.Preferences, error) {
	return s.store.GetPreferences(ctx, s.cfg.UserID)
}

func (s *implService) SavePreferences(ctx context.Context, p store.Preferences) (store.Preferences, error) {
	p.UserID = s.cfg.UserID
	opts := OptionsFromPreferences(p)
	p.DefaultFormat = string(opts.Format)
	p.DefaultLanguage = string(opts.Language)
	p.DefaultDetailLevel = string(opts.DetailLevel)
	return s.store.SavePreferences(ctx, p)
}

// OptionsFromPreferences builds normalized summary options from stored defaults.
func OptionsFromPreferences(p store.Preferences) summarizer.Options {
	return summarizer.Options{
		Format:            summarizer.Format(p.DefaultFormat),
		Language:          summarizer.Language(p.DefaultLanguage),
		DetailLevel:       summarizer.DetailLevel(p.DefaultDetailLevel),
		IncludeTimestamps: p.IncludeTimestamps,
	}.Normalize()
}

func (s *implService) ownedMeeting(ctx context.Context, id string) (store.Meeting, error) {
	m, err := s.store.GetMeeting(ctx, id)
	if err != nil {
		return store.Meeting{}, mapNotFound(err, "meeting")
	}
	if m.UserID != s.cfg.UserID {
		return store.Meeting{}, ErrForbidden
	}
	return m, nil
}

// writeArtifacts failures are logged only: the summary is already stored.
func (s *implService) writeArtifacts(ctx context.Context, sum store.Summary) {
	if s.cfg.OutputDir == "" {
		return
	}
	mdPath, docxPath, err := summarizer.ExportAll(s.cfg.OutputDir, sum.Title, sum.ID, sum.Text, sum.UpdatedAt)
	if err != nil {
		s.logger.Warn(ctx, "Failed to write artifacts for summary %s: %v", sum.ID, err)
		return
	}
	s.logger.Info(ctx, "[DONE] %s -> %s, %s", sum.Title, mdPath, docxPath)
}

func mapNotFound(err error, what string) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}
