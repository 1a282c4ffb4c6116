package llm

import (
	"fmt"

	"github.com/nguyentantai21042004/recap-flow/internal/config"
	"github.com/nguyentantai21042004/recap-flow/internal/metrics"
)

// New builds the configured provider with its per-call timeout and metrics.
func New(cfg *config.Config, m *metrics.Metrics) (Completer, error) {
	var (
		c   Completer
		err error
	)

	keys := cfg.ProviderKeys()
	switch cfg.LLM.Provider {
	case providerGemini:
		c, err = NewGemini(keys, cfg.LLM.Model)
	case providerOpenAI:
		if len(keys) == 0 {
			return nil, fmt.Errorf("openai: missing OPENAI_API_KEY (or llm.api_key)")
		}
		c, err = NewOpenAI(keys[0], cfg.LLM.Model)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
	if err != nil {
		return nil, err
	}

	return Instrument(WithTimeout(c, cfg.LLM.Timeout), cfg.LLM.Provider, m), nil
}
