package refiner

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minSummaryChars = 300
	metaWindow      = 200
)

var metaPhrases = []string{
	"here's the",
	"i've made",
	"i've updated",
	"based on your request",
	"i have",
	"let me",
	"i can",
	"would you like",
	"here is the",
}

var preambles = []string{
	"Here's the refined version:",
	"Here is the refined version:",
	"Here's the updated summary:",
}

// HeuristicClassifier treats a reply as a replacement summary when it has a markdown
// heading, is longer than 300 characters and does not open with meta-commentary.
// The known preambles are stripped before the meta-commentary check, so a summary
// introduced by "Here's the refined version:" still counts.
type HeuristicClassifier struct{}

func (HeuristicClassifier) Classify(reply, previous string) Outcome {
	hasMarkdown := strings.Contains(reply, "##")
	isSubstantial := utf8.RuneCountInString(reply) > minSummaryChars

	cleaned := stripPreamble(reply)
	if hasMarkdown && isSubstantial && !hasMetaCommentary(cleaned) {
		return Outcome{IsReplacementSummary: true, CleanedText: cleaned}
	}
	return Outcome{CleanedText: previous}
}

// stripPreamble removes a known preamble and the whitespace around it. A reply without
// one is returned unchanged.
func stripPreamble(reply string) string {
	s := strings.TrimLeftFunc(reply, unicode.IsSpace)
	for _, p := range preambles {
		if strings.HasPrefix(s, p) {
			return strings.TrimSpace(strings.TrimPrefix(s, p))
		}
	}
	return reply
}

func hasMetaCommentary(s string) bool {
	head := []rune(strings.ToLower(s))
	if len(head) > metaWindow {
		head = head[:metaWindow]
	}
	h := string(head)
	for _, p := range metaPhrases {
		if strings.Contains(h, p) {
			return true
		}
	}
	return false
}
