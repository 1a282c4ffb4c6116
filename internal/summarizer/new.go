package summarizer

import (
	"github.com/nguyentantai21042004/recap-flow/internal/llm"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/metrics"
)

// Config bounds the pipeline. Zero values take the defaults; a nil Temperature means 0.2.
type Config struct {
	MaxChars        int
	Temperature     *float64
	ChunkMaxTokens  int
	FinalMaxTokens  int
	ReduceMaxTokens int
	Concurrency     int
}

func (c Config) withDefaults() Config {
	if c.MaxChars <= 0 {
		c.MaxChars = DefaultMaxChars
	}
	if c.Temperature == nil {
		t := 0.2
		c.Temperature = &t
	}
	if c.ChunkMaxTokens <= 0 {
		c.ChunkMaxTokens = 1500
	}
	if c.FinalMaxTokens <= 0 {
		c.FinalMaxTokens = 3000
	}
	if c.ReduceMaxTokens <= 0 {
		c.ReduceMaxTokens = 3000
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	return c
}

type implSummarizer struct {
	completer llm.Completer
	cfg       Config
	logger    logger.Logger
	metrics   *metrics.Metrics
}

// New creates a Summarizer on top of the given completion capability. m may be nil.
func New(completer llm.Completer, cfg Config, log logger.Logger, m *metrics.Metrics) Summarizer {
	return &implSummarizer{
		completer: completer,
		cfg:       cfg.withDefaults(),
		logger:    log,
		metrics:   m,
	}
}
