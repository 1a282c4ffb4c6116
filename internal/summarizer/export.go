package summarizer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var reUnsafeName = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)

// FileStem turns a meeting title into a file name without extension.
func FileStem(title string) string {
	stem := strings.Trim(reUnsafeName.ReplaceAllString(strings.TrimSpace(title), "_"), "_.")
	if stem == "" {
		return "meeting"
	}
	return stem
}

const artifactIDLen = 8

// ArtifactStem names the files of one summary: the title stem plus the start of the
// summary id, so meetings sharing a title keep separate files.
func ArtifactStem(title, id string) string {
	stem := FileStem(title)
	id = reUnsafeName.ReplaceAllString(id, "")
	if len(id) > artifactIDLen {
		id = id[:artifactIDLen]
	}
	if id == "" {
		return stem
	}
	return stem + "_" + id
}

// ExportMarkdown writes the summary as "# title", a generation date line and the body.
func ExportMarkdown(title, markdown, outputPath string, generatedAt time.Time) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
		title,
		generatedAt.Format("2006-01-02 15:04"),
		strings.TrimSpace(markdown),
	)

	if err := os.WriteFile(outputPath, []byte(md), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// ExportAll writes <stem>.md and <stem>.docx into dir, stem being ArtifactStem(title, id),
// and returns both paths.
func ExportAll(dir, title, id, markdown string, generatedAt time.Time) (mdPath, docxPath string, err error) {
	stem := ArtifactStem(title, id)
	mdPath = filepath.Join(dir, stem+".md")
	docxPath = filepath.Join(dir, stem+".docx")

	if err := ExportMarkdown(title, markdown, mdPath, generatedAt); err != nil {
		return "", "", err
	}
	if err := ExportDocx(title, markdown, docxPath); err != nil {
		return "", "", err
	}
	return mdPath, docxPath, nil
}
