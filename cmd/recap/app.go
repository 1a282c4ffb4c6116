package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/nguyentantai21042004/recap-flow/internal/config"
	"github.com/nguyentantai21042004/recap-flow/internal/llm"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/meeting"
	"github.com/nguyentantai21042004/recap-flow/internal/metrics"
	"github.com/nguyentantai21042004/recap-flow/internal/refiner"
	"github.com/nguyentantai21042004/recap-flow/internal/store"
	"github.com/nguyentantai21042004/recap-flow/internal/summarizer"
)

// app holds the wired dependencies shared by all commands.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	registry *prometheus.Registry
	store    store.Store
	meetings meeting.Service
}

// unavailableCompleter stands in when no provider could be configured, so commands
// that never call the model still work.
type unavailableCompleter struct {
	provider string
	err      error
}

func (u unavailableCompleter) Complete(context.Context, llm.Request) (string, error) {
	return "", &llm.CompletionError{Provider: u.provider, Err: u.err}
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// stdout carries command output and the MCP protocol; logs go to stderr.
	log := logger.NewWithWriter(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	log.Debug(ctx, "System: %s/%s, CPU cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	completer, err := llm.New(cfg, m)
	if err != nil {
		log.Warn(ctx, "LLM provider unavailable, summarization disabled: %v", err)
		completer = unavailableCompleter{provider: cfg.LLM.Provider, err: err}
	}

	st, err := store.Open(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	sum := summarizer.New(completer, summarizer.Config{
		MaxChars:        cfg.Summary.MaxChars,
		Temperature:     cfg.Summary.Temperature,
		ChunkMaxTokens:  cfg.Summary.ChunkMaxTokens,
		FinalMaxTokens:  cfg.Summary.FinalMaxTokens,
		ReduceMaxTokens: cfg.Summary.FinalMaxTokens,
		Concurrency:     cfg.Summary.Concurrency,
	}, log, m)

	ref := refiner.New(completer, refiner.Config{
		Temperature:     cfg.Summary.RefineTemperature,
		MaxOutputTokens: cfg.Summary.RefineMaxTokens,
	}, log, m)

	meetings := meeting.New(st, sum, ref, meeting.Config{
		UserID:    cfg.UserID,
		ModelUsed: cfg.LLM.Model,
		OutputDir: cfg.Paths.Output,
	}, log)

	return &app{
		cfg:      cfg,
		log:      log,
		registry: registry,
		store:    st,
		meetings: meetings,
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
