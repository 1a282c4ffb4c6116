// Package transcript holds timestamped transcript segments and their text rendering.
package transcript

import (
	"fmt"
	"strings"
)

// Segment is one timestamped fragment produced by the transcription engine.
// Segments are never mutated once handed to the summarizer.
type Segment struct {
	StartSeconds float64 `json:"start_seconds"`
	EndSeconds   float64 `json:"end_seconds"`
	Text         string  `json:"text"`
	SpeakerLabel *string `json:"speaker_label,omitempty"`
}

// Render emits one "- " line per segment, prefixed with its [start–end] range when
// includeTimestamps is set. Order is preserved; empty input renders to "".
func Render(segments []Segment, includeTimestamps bool) string {
	lines := make([]string, 0, len(segments))
	for _, s := range segments {
		if includeTimestamps {
			lines = append(lines, fmt.Sprintf("- [%.1fs–%.1fs] %s", s.StartSeconds, s.EndSeconds, s.Text))
		} else {
			lines = append(lines, "- "+s.Text)
		}
	}
	return strings.Join(lines, "\n")
}
