package transcript

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Result is a decoded transcription.
type Result struct {
	Language string
	Text     string
	Segments []Segment
}

type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// DecodeWhisperJSON reads whisper.cpp "-oj" output. Offsets are milliseconds.
func DecodeWhisperJSON(r io.Reader) (Result, error) {
	var out whisperOutput
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("decode whisper json: %w", err)
	}

	res := Result{
		Language: out.Result.Language,
		Segments: make([]Segment, 0, len(out.Transcription)),
	}

	var text strings.Builder
	for _, t := range out.Transcription {
		text.WriteString(t.Text)
		res.Segments = append(res.Segments, Segment{
			StartSeconds: float64(t.Offsets.From) / 1000,
			EndSeconds:   float64(t.Offsets.To) / 1000,
			Text:         strings.TrimSpace(t.Text),
		})
	}
	res.Text = strings.TrimSpace(text.String())

	return res, nil
}
