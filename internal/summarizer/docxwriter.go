package summarizer

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/nguyentantai21042004/recap-flow/internal/transcript"
)

const (
	fontName = "Times New Roman"
	codeFont = "Courier New"
	fontSize = 13
)

type paragraphAdder interface {
	AddParagraph(string) *docx.Paragraph
}

// ExportDocx writes a markdown summary to a styled docx file. The markdown is parsed
// with goldmark so nested lists and inline emphasis survive the conversion.
func ExportDocx(title, markdown, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new document: %w", err)
	}

	addRun(doc.AddParagraph(""), title, true, 16)

	src := []byte(markdown)
	root := goldmark.New().Parser().Parse(text.NewReader(src))
	writeBlocks(doc, root, src, 0)

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save docx: %w", err)
	}
	return nil
}

// ExportTranscriptDocx writes the raw transcript, one paragraph per segment.
// Consecutive duplicate lines, common in whisper output, are dropped.
func ExportTranscriptDocx(title string, segments []transcript.Segment, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new document: %w", err)
	}

	addRun(doc.AddParagraph(""), title, true, 16)
	doc.AddParagraph("")

	var last string
	for _, s := range segments {
		t := strings.TrimSpace(s.Text)
		if t == "" || t == last {
			continue
		}
		last = t

		p := doc.AddParagraph("")
		addRun(p, fmt.Sprintf("[%s] ", formatClock(s.StartSeconds)), true, fontSize)
		if s.SpeakerLabel != nil && *s.SpeakerLabel != "" {
			addRun(p, *s.SpeakerLabel+": ", true, fontSize)
		}
		addRun(p, t, false, fontSize)
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save docx: %w", err)
	}
	return nil
}

func writeBlocks(doc paragraphAdder, parent ast.Node, src []byte, depth int) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch b := n.(type) {
		case *ast.Heading:
			addInline(doc.AddParagraph(""), b, src, true, headingSize(b.Level))
		case *ast.Paragraph, *ast.TextBlock:
			addInline(doc.AddParagraph(""), b, src, false, fontSize)
		case *ast.List:
			writeList(doc, b, src, depth)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := b.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				line := strings.TrimRight(string(seg.Value(src)), "\n")
				doc.AddParagraph("").AddText(line).Font(codeFont).Size(fontSize - 2).Color("000000")
			}
		case *ast.ThematicBreak:
		default:
			writeBlocks(doc, n, src, depth)
		}
	}
}

func writeList(doc paragraphAdder, list *ast.List, src []byte, depth int) {
	indent := strings.Repeat("    ", depth)
	num := list.Start
	if num == 0 {
		num = 1
	}

	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}

		first := true
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch b := c.(type) {
			case *ast.List:
				writeList(doc, b, src, depth+1)
			default:
				p := doc.AddParagraph("")
				if first {
					addRun(p, indent+marker, false, fontSize)
				} else {
					addRun(p, indent+"  ", false, fontSize)
				}
				addInline(p, c, src, false, fontSize)
			}
			first = false
		}
	}
}

func addInline(p *docx.Paragraph, parent ast.Node, src []byte, bold bool, size uint64) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch t := n.(type) {
		case *ast.Text:
			s := string(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				s += " "
			}
			addRun(p, s, bold, size)
		case *ast.String:
			addRun(p, string(t.Value), bold, size)
		case *ast.Emphasis:
			addInline(p, t, src, bold || t.Level >= 2, size)
		case *ast.AutoLink:
			addRun(p, string(t.URL(src)), bold, size)
		default:
			addInline(p, n, src, bold, size)
		}
	}
}

func addRun(p *docx.Paragraph, s string, bold bool, size uint64) {
	if s == "" {
		return
	}
	run := p.AddText(s).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func formatClock(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
