package summarizer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/recap-flow/internal/transcript"
)

// DefaultMaxChars keeps a single prompt under the model's input budget while keeping
// the number of calls low.
const DefaultMaxChars = 20000

// Chunk is a rendered slice of the transcript handed to one completion call.
type Chunk struct {
	Content  string
	Index    int
	Total    int
	Segments []transcript.Segment
}

// chunkLine always carries timestamps so that chronology survives chunk boundaries,
// whatever the caller asked for.
func chunkLine(s transcript.Segment) string {
	return fmt.Sprintf("[%.1fs–%.1fs] %s\n", s.StartSeconds, s.EndSeconds, s.Text)
}

// ChunkSegments packs segments greedily, in order, into chunks of at most maxChars
// characters. Boundaries fall between segments only: a segment longer than maxChars
// gets a chunk of its own.
func ChunkSegments(segments []transcript.Segment, maxChars int) []Chunk {
	var (
		chunks []Chunk
		buf    strings.Builder
		size   int
		start  int
	)

	flush := func(end int) {
		chunks = append(chunks, Chunk{
			Content:  buf.String(),
			Index:    len(chunks),
			Segments: segments[start:end:end],
		})
		buf.Reset()
		size = 0
		start = end
	}

	for i, s := range segments {
		line := chunkLine(s)
		n := utf8.RuneCountInString(line)
		if size+n > maxChars && size > 0 {
			flush(i)
		}
		buf.WriteString(line)
		size += n
	}
	if size > 0 {
		flush(len(segments))
	}

	for i := range chunks {
		chunks[i].Total = len(chunks)
	}
	return chunks
}

func charLen(s string) int {
	return utf8.RuneCountInString(s)
}
