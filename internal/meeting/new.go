package meeting

import (
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/refiner"
	"github.com/nguyentantai21042004/recap-flow/internal/store"
	"github.com/nguyentantai21042004/recap-flow/internal/summarizer"
)

type Config struct {
	UserID string
	// ModelUsed is recorded on every generated summary.
	ModelUsed string
	// OutputDir receives the .md and .docx artifacts. Empty disables them.
	OutputDir string
}

type implService struct {
	store      store.Store
	summarizer summarizer.Summarizer
	refiner    refiner.Refiner
	cfg        Config
	logger     logger.Logger
}

func New(st store.Store, sum summarizer.Summarizer, ref refiner.Refiner, cfg Config, log logger.Logger) Service {
	if cfg.UserID == "" {
		cfg.UserID = "local"
	}
	return &implService{
		store:      st,
		summarizer: sum,
		refiner:    ref,
		cfg:        cfg,
		logger:     log,
	}
}
