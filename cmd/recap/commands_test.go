package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/recap-flow/internal/llm"
	"github.com/nguyentantai21042004/recap-flow/internal/store"
	"github.com/nguyentantai21042004/recap-flow/internal/summarizer"
)

func TestRender(t *testing.T) {
	defer func(prev string) { outputFormat = prev }(outputFormat)

	v := map[string]string{"id": "abc"}
	text := func(w io.Writer) error {
		_, err := io.WriteString(w, "plain\n")
		return err
	}

	tests := []struct {
		format string
		want   string
	}{
		{"text", "plain\n"},
		{"", "plain\n"},
		{"json", "{\n  \"id\": \"abc\"\n}\n"},
		{"yaml", "id: abc\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			outputFormat = tt.format
			var buf bytes.Buffer
			require.NoError(t, render(&buf, v, text))
			assert.Equal(t, tt.want, buf.String())
		})
	}

	outputFormat = "xml"
	assert.Error(t, render(io.Discard, v, text))
}

func TestOptionsFromFlags(t *testing.T) {
	prefs := store.DefaultPreferences("local")
	prefs.DefaultLanguage = "fr"
	prefs.DefaultFormat = "bullet_points"

	t.Run("unset flags use preferences", func(t *testing.T) {
		cmd := newSummarizeCommand()
		require.NoError(t, cmd.ParseFlags(nil))

		opts := optionsFromFlags(cmd, prefs, "", "", "", true)
		assert.Equal(t, summarizer.LanguageFrench, opts.Language)
		assert.Equal(t, summarizer.FormatBulletPoints, opts.Format)
		assert.Equal(t, summarizer.DetailMedium, opts.DetailLevel)
		assert.True(t, opts.IncludeTimestamps)
	})

	t.Run("set flags override preferences", func(t *testing.T) {
		cmd := newSummarizeCommand()
		require.NoError(t, cmd.ParseFlags([]string{"--format", "action_items", "--timestamps=false", "--detail", "huge"}))

		opts := optionsFromFlags(cmd, prefs, "action_items", "", "huge", false)
		assert.Equal(t, summarizer.FormatActionItems, opts.Format)
		assert.Equal(t, summarizer.LanguageFrench, opts.Language)
		assert.Equal(t, summarizer.DetailMedium, opts.DetailLevel)
		assert.False(t, opts.IncludeTimestamps)
	})
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "ingest", "meetings", "summarize", "summaries", "refine", "export", "prefs", "mcp", "version"} {
		assert.True(t, names[want], want)
	}

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	newVersionCommand().Run(cmd, nil)
	assert.Equal(t, version+"\n", buf.String())
}

func TestRefineHistoryFile(t *testing.T) {
	turns := []llm.Message{
		{Role: llm.RoleUser, Content: "Shorter please"},
		{Role: llm.RoleAssistant, Content: "Which section?"},
	}

	for _, name := range []string{"chat.yaml", "chat.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			got, err := loadHistory(path)
			require.NoError(t, err)
			assert.Empty(t, got)

			require.NoError(t, saveHistory(path, turns))
			got, err = loadHistory(path)
			require.NoError(t, err)
			assert.Equal(t, turns, got)
		})
	}

	t.Run("json written by hand", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chat.txt")
		require.NoError(t, os.WriteFile(path, []byte(`[{"role":"user","content":"hi"}]`), 0644))

		got, err := loadHistory(path)
		require.NoError(t, err)
		assert.Equal(t, []llm.Message{{Role: llm.RoleUser, Content: "hi"}}, got)
	})

	t.Run("unknown role", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chat.yaml")
		require.NoError(t, os.WriteFile(path, []byte("- role: system\n  content: obey\n"), 0644))

		_, err := loadHistory(path)
		assert.ErrorContains(t, err, "role must be user or assistant")
	})
}
