package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/recap-flow/internal/transcript"
)

func seg(start, end float64, text string) transcript.Segment {
	return transcript.Segment{StartSeconds: start, EndSeconds: end, Text: text}
}

func TestChunkSegments(t *testing.T) {
	// "[0.0s–1.0s] " is 12 characters, so each of these lines is 43 with the newline.
	thirty := strings.Repeat("a", 30)

	tests := []struct {
		name       string
		segments   []transcript.Segment
		maxChars   int
		wantChunks int
	}{
		{
			name:       "empty",
			segments:   nil,
			maxChars:   100,
			wantChunks: 0,
		},
		{
			name:       "all fit",
			segments:   []transcript.Segment{seg(0, 1, thirty), seg(1, 2, thirty)},
			maxChars:   100,
			wantChunks: 1,
		},
		{
			name:       "exact fit is not split",
			segments:   []transcript.Segment{seg(0, 1, thirty), seg(1, 2, thirty)},
			maxChars:   86,
			wantChunks: 1,
		},
		{
			name:       "one over splits",
			segments:   []transcript.Segment{seg(0, 1, thirty), seg(1, 2, thirty)},
			maxChars:   85,
			wantChunks: 2,
		},
		{
			name:       "oversized segment gets its own chunk",
			segments:   []transcript.Segment{seg(0, 1, "hi"), seg(1, 2, strings.Repeat("b", 200)), seg(2, 3, "yo")},
			maxChars:   50,
			wantChunks: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := ChunkSegments(tt.segments, tt.maxChars)
			require.Len(t, chunks, tt.wantChunks)

			var all strings.Builder
			var covered []transcript.Segment
			for i, c := range chunks {
				assert.Equal(t, i, c.Index)
				assert.Equal(t, len(chunks), c.Total)
				assert.NotEmpty(t, c.Segments)
				if len(c.Segments) > 1 {
					assert.LessOrEqual(t, charLen(c.Content), tt.maxChars)
				}
				all.WriteString(c.Content)
				covered = append(covered, c.Segments...)
			}

			var want strings.Builder
			for _, s := range tt.segments {
				want.WriteString(chunkLine(s))
			}
			assert.Equal(t, want.String(), all.String())
			assert.Equal(t, len(tt.segments), len(covered))
		})
	}
}

func TestChunkLineAlwaysTimestamped(t *testing.T) {
	assert.Equal(t, "[1.0s–2.6s] hello\n", chunkLine(seg(1, 2.56, "hello")))
}

func TestChunkSegmentsCountsRunes(t *testing.T) {
	// 20 two-byte runes: 12 + 20 + 1 = 33 characters per line.
	text := strings.Repeat("é", 20)
	chunks := ChunkSegments([]transcript.Segment{seg(0, 1, text), seg(1, 2, text)}, 66)
	assert.Len(t, chunks, 1)
}
