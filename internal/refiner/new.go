package refiner

import (
	"github.com/nguyentantai21042004/recap-flow/internal/llm"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/metrics"
)

// Config holds the completion parameters of a refinement turn.
type Config struct {
	Temperature     *float64
	MaxOutputTokens int
}

type implRefiner struct {
	completer  llm.Completer
	classifier Classifier
	cfg        Config
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// Option customizes a Refiner.
type Option func(*implRefiner)

// WithClassifier replaces the default HeuristicClassifier.
func WithClassifier(c Classifier) Option {
	return func(r *implRefiner) { r.classifier = c }
}

// New creates a Refiner. A nil temperature defaults to 0.3, a zero token budget to 2500.
func New(completer llm.Completer, cfg Config, log logger.Logger, m *metrics.Metrics, opts ...Option) Refiner {
	if cfg.Temperature == nil {
		t := 0.3
		cfg.Temperature = &t
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = 2500
	}

	r := &implRefiner{
		completer:  completer,
		classifier: HeuristicClassifier{},
		cfg:        cfg,
		logger:     log,
		metrics:    m,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
