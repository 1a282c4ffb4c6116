package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/recap-flow/internal/llm"
	"github.com/nguyentantai21042004/recap-flow/internal/transcript"
)

// Summarize renders the transcript and either summarizes it in one call, or splits it
// into chunks, summarizes each one and merges the partial summaries.
func (s *implSummarizer) Summarize(ctx context.Context, segments []transcript.Segment, opts Options) (string, error) {
	startTime := time.Now()
	opts = opts.Normalize()

	system := SystemPrompt(opts.Language, opts.Format)
	userTemplate := UserPromptTemplate(opts.Language, opts.DetailLevel)

	rendered := transcript.Render(segments, opts.IncludeTimestamps)
	size := charLen(rendered)

	s.logger.Info(ctx, "Summarizing %d segments (%d chars) format=%s language=%s detail=%s",
		len(segments), size, opts.Format, opts.Language, opts.DetailLevel)

	if size <= s.cfg.MaxChars {
		out, err := s.summarizeChunk(ctx, rendered, system, userTemplate, 0, 1)
		s.metrics.ObserveSummary("single", 1, err)
		if err != nil {
			return "", err
		}
		s.logger.Info(ctx, "Single-pass summary done in %s", time.Since(startTime))
		return out, nil
	}

	chunks := ChunkSegments(segments, s.cfg.MaxChars)
	s.logger.Info(ctx, "Transcript exceeds %d chars, split into %d chunks", s.cfg.MaxChars, len(chunks))

	out, err := s.summarizeChunked(ctx, chunks, system, userTemplate, opts.Language)
	s.metrics.ObserveSummary("chunked", len(chunks), err)
	if err != nil {
		return "", err
	}

	s.logger.Info(ctx, "Chunked summary done in %s (%d chunks)", time.Since(startTime), len(chunks))
	return out, nil
}

func (s *implSummarizer) summarizeChunked(ctx context.Context, chunks []Chunk, system, userTemplate string, lang Language) (string, error) {
	partials := make([]string, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for _, ch := range chunks {
		g.Go(func() error {
			out, err := s.summarizeChunk(gctx, ch.Content, system, userTemplate, ch.Index, ch.Total)
			if err != nil {
				return fmt.Errorf("summarize part %d/%d: %w", ch.Index+1, ch.Total, err)
			}
			partials[ch.Index] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	if len(partials) == 1 {
		return partials[0], nil
	}
	return s.reduce(ctx, partials, system, lang)
}

// summarizeChunk issues one completion call for one chunk. Intermediate chunks get the
// smaller output budget since they are compressed again by reduce.
func (s *implSummarizer) summarizeChunk(ctx context.Context, content, system, userTemplate string, index, total int) (string, error) {
	prompt := fmt.Sprintf(userTemplate, content)
	maxTokens := s.cfg.FinalMaxTokens
	if total > 1 {
		prompt += fmt.Sprintf("\n\n(This is part %d of %d of the transcript.)", index+1, total)
		maxTokens = s.cfg.ChunkMaxTokens
	}

	s.logger.Debug(ctx, "Completion for part %d/%d (%d chars, max %d tokens)", index+1, total, charLen(prompt), maxTokens)

	return s.completer.Complete(ctx, llm.Request{
		SystemPrompt:    system,
		UserPrompt:      prompt,
		Temperature:     *s.cfg.Temperature,
		MaxOutputTokens: maxTokens,
	})
}

// reduce merges two or more ordered partial summaries in one call. It only sees the
// partial summaries, never the transcript.
func (s *implSummarizer) reduce(ctx context.Context, partials []string, system string, lang Language) (string, error) {
	parts := make([]string, len(partials))
	for i, p := range partials {
		parts[i] = fmt.Sprintf("## Part %d\n%s", i+1, p)
	}

	s.logger.Info(ctx, "Merging %d partial summaries", len(partials))

	out, err := s.completer.Complete(ctx, llm.Request{
		SystemPrompt:    system,
		UserPrompt:      fmt.Sprintf(CombinePrompt(lang), strings.Join(parts, "\n\n")),
		Temperature:     *s.cfg.Temperature,
		MaxOutputTokens: s.cfg.ReduceMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("merge %d partial summaries: %w", len(partials), err)
	}
	return out, nil
}
