package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	UserID      string            `yaml:"user_id" env:"RECAP_USER_ID"`
	LLM         LLMConfig         `yaml:"llm"`
	Summary     SummaryConfig     `yaml:"summary"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Paths       PathsConfig       `yaml:"paths"`
	Database    DatabaseConfig    `yaml:"database"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

type LLMConfig struct {
	Provider string        `yaml:"provider" env:"RECAP_LLM_PROVIDER"`
	Model    string        `yaml:"model" env:"RECAP_LLM_MODEL"`
	APIKey   string        `yaml:"api_key" env:"OPENAI_API_KEY"`
	APIKeys  []string      `yaml:"api_keys" env:"GEMINI_API_KEYS" envSeparator:","`
	Timeout  time.Duration `yaml:"timeout"`
}

type SummaryConfig struct {
	MaxChars          int      `yaml:"max_chars"`
	Temperature       *float64 `yaml:"temperature"`
	RefineTemperature *float64 `yaml:"refine_temperature"`
	ChunkMaxTokens    int      `yaml:"chunk_max_tokens"`
	FinalMaxTokens    int      `yaml:"final_max_tokens"`
	RefineMaxTokens   int      `yaml:"refine_max_tokens"`
	Concurrency       int      `yaml:"concurrency"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	ModelName  string `yaml:"model_name"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	SampleRate int    `yaml:"sample_rate"`
	Channels   int    `yaml:"channels"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" env:"RECAP_DB_PATH"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"RECAP_LOG_LEVEL"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr" env:"RECAP_METRICS_ADDR"`
}

// Load reads the YAML file at path, layers an optional .env file next to it and the
// process environment on top, then validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	dotenv := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", dotenv, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	switch c.LLM.Provider {
	case "":
		c.LLM.Provider = "openai"
	case "openai", "gemini":
	default:
		return fmt.Errorf("llm.provider must be openai or gemini, got %q", c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		if c.LLM.Provider == "gemini" {
			c.LLM.Model = "gemini-2.5-flash"
		} else {
			c.LLM.Model = "gpt-4o-mini"
		}
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 2 * time.Minute
	}

	if c.Summary.MaxChars < 0 || c.Summary.Concurrency < 0 {
		return fmt.Errorf("summary limits must be >= 0")
	}
	if c.Summary.MaxChars == 0 {
		c.Summary.MaxChars = 20000
	}
	// Temperatures are pointers so an explicit 0 is kept.
	if c.Summary.Temperature == nil {
		c.Summary.Temperature = float64Ptr(0.2)
	}
	if c.Summary.RefineTemperature == nil {
		c.Summary.RefineTemperature = float64Ptr(0.3)
	}
	if *c.Summary.Temperature < 0 || *c.Summary.RefineTemperature < 0 {
		return fmt.Errorf("summary temperatures must be >= 0")
	}
	if c.Summary.ChunkMaxTokens == 0 {
		c.Summary.ChunkMaxTokens = 1500
	}
	if c.Summary.FinalMaxTokens == 0 {
		c.Summary.FinalMaxTokens = 3000
	}
	if c.Summary.RefineMaxTokens == 0 {
		c.Summary.RefineMaxTokens = 2500
	}
	if c.Summary.Concurrency == 0 {
		c.Summary.Concurrency = 4
	}

	if c.UserID == "" {
		c.UserID = "local"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/recap.sqlite"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.Whisper.ModelName == "" {
		c.Whisper.ModelName = "whisper-base"
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}
	if c.FFmpeg.Channels == 0 {
		c.FFmpeg.Channels = 1
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	return nil
}

// ProviderKeys returns the API keys for the configured provider: the single OpenAI key, or
// the Gemini key set used round-robin.
func (c *Config) ProviderKeys() []string {
	if c.LLM.Provider == "gemini" {
		keys := make([]string, 0, len(c.LLM.APIKeys))
		for _, k := range c.LLM.APIKeys {
			if k != "" {
				keys = append(keys, k)
			}
		}
		return keys
	}
	if c.LLM.APIKey == "" {
		return nil
	}
	return []string{c.LLM.APIKey}
}

func float64Ptr(v float64) *float64 { return &v }
