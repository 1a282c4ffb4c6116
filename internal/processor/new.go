package processor

import (
	"github.com/nguyentantai21042004/recap-flow/internal/config"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/meeting"
	"github.com/nguyentantai21042004/recap-flow/pkg/executor"
)

type implProcessor struct {
	cfg      *config.Config
	executor executor.Executor
	meetings meeting.Service
	logger   logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, exec executor.Executor, meetings meeting.Service, log logger.Logger) Processor {
	return &implProcessor{
		cfg:      cfg,
		executor: exec,
		meetings: meetings,
		logger:   log,
	}
}
