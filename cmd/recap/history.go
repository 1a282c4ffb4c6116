package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nguyentantai21042004/recap-flow/internal/llm"
)

// loadHistory reads a refinement conversation. A missing file is an empty conversation.
// YAML is a superset of JSON, so both formats decode the same way.
func loadHistory(path string) ([]llm.Message, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	var history []llm.Message
	if err := yaml.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("parse history %s: %w", path, err)
	}
	for i, m := range history {
		if m.Role != llm.RoleUser && m.Role != llm.RoleAssistant {
			return nil, fmt.Errorf("history %s: entry %d: role must be user or assistant, got %q", path, i, m.Role)
		}
	}
	return history, nil
}

// saveHistory writes JSON for .json files and YAML otherwise.
func saveHistory(path string, history []llm.Message) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(history, "", "  ")
	} else {
		data, err = yaml.Marshal(history)
	}
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}
