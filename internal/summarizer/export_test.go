package summarizer

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/recap-flow/internal/transcript"
)

const sampleSummary = `## Decisions

- Ship **v2** on Friday
- Keep the old API
  1. until March
  2. then remove it

## Notes

Plain paragraph with *emphasis* and ` + "`code`" + `.

` + "```" + `
go test ./...
` + "```"

func documentXML(t *testing.T, path string) string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(b)
	}
	t.Fatalf("word/document.xml not found in %s", path)
	return ""
}

func TestFileStem(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Weekly sync", "Weekly_sync"},
		{"  Q3 / planning: draft  ", "Q3_planning_draft"},
		{"Réunion d'équipe", "Réunion_d_équipe"},
		{"///", "meeting"},
		{"", "meeting"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, FileStem(tt.title))
		})
	}
}

func TestExportMarkdown(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "sync.md")
	at := time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC)

	require.NoError(t, ExportMarkdown("Weekly sync", "\n## Decisions\n- ship\n\n", path, at))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Weekly sync\n\n_2026-03-04 09:30_\n\n## Decisions\n- ship\n", string(b))
}

func TestExportDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.docx")
	require.NoError(t, ExportDocx("Weekly sync", sampleSummary, path))

	xml := documentXML(t, path)
	for _, want := range []string{"Weekly sync", "Decisions", "Ship", "v2", "•", "1.", "2.", "emphasis", "code", "go test ./..."} {
		assert.Contains(t, xml, want)
	}
	assert.NotContains(t, xml, "**")
	assert.NotContains(t, xml, "## ")
}

func TestExportAll(t *testing.T) {
	dir := t.TempDir()
	mdPath, docxPath, err := ExportAll(dir, "Team sync", "3f2a9c1e-0000-4000-8000-000000000000", "## Notes\n- one", time.Now())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Team_sync_3f2a9c1e.md"), mdPath)
	assert.Equal(t, filepath.Join(dir, "Team_sync_3f2a9c1e.docx"), docxPath)
	assert.FileExists(t, mdPath)
	assert.FileExists(t, docxPath)
}

func TestArtifactStem(t *testing.T) {
	tests := []struct {
		title, id, want string
	}{
		{"Team sync", "3f2a9c1e-0000-4000-8000-000000000000", "Team_sync_3f2a9c1e"},
		{"Team sync", "ab12", "Team_sync_ab12"},
		{"Team sync", "", "Team_sync"},
		{"Retro", "ab/cd", "Retro_abcd"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ArtifactStem(tt.title, tt.id))
		})
	}

	assert.NotEqual(t,
		ArtifactStem("Standup", "11111111-aaaa"),
		ArtifactStem("Standup", "22222222-aaaa"))
}

func TestExportTranscriptDocx(t *testing.T) {
	alice := "Alice"
	segments := []transcript.Segment{
		{StartSeconds: 0, EndSeconds: 2, Text: "Hello everyone", SpeakerLabel: &alice},
		{StartSeconds: 2, EndSeconds: 3, Text: "Hello everyone"},
		{StartSeconds: 3725, EndSeconds: 3730, Text: "Let's start"},
	}
	path := filepath.Join(t.TempDir(), "transcript.docx")
	require.NoError(t, ExportTranscriptDocx("Transcript", segments, path))

	xml := documentXML(t, path)
	assert.Equal(t, 1, strings.Count(xml, "Hello everyone"))
	assert.Contains(t, xml, "01:02:05")
	assert.Contains(t, xml, "Alice")
}
