package richtext

import (
	"regexp"
	"strconv"
	"strings"
)

// Inline formatting marks produced by the markdown compiler.
const (
	MarkBold   = "bold"
	MarkItalic = "italic"
)

const bulletGlyph = "• "

var (
	headingLine = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	bulletLine  = regexp.MustCompile(`^[*-]\s+(.+)$`)
	boldSpan    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicSpan  = regexp.MustCompile(`\*([^*]+)\*`)
)

// FromMarkdown compiles a constrained markdown subset into document block
// nodes suitable as a doc root's content. Headings map to heading nodes,
// bullet lines to glyph-prefixed paragraphs (no list nesting is modeled),
// and remaining lines to paragraphs with bold and italic spans. When
// highlight is set, every emitted leaf carries a highlight mark so the
// editor can show what the assistant wrote. Callers always get at least
// one node: empty input yields a single empty paragraph.
func FromMarkdown(markdown string, highlight bool) []Node {
	var blocks []Node
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if m := headingLine.FindStringSubmatch(trimmed); m != nil {
			blocks = append(blocks, Heading(len(m[1]), leaf(m[2], "", highlight)))
			continue
		}
		if m := bulletLine.FindStringSubmatch(trimmed); m != nil {
			blocks = append(blocks, Paragraph(leaf(bulletGlyph+m[1], "", highlight)))
			continue
		}
		blocks = append(blocks, Paragraph(inlineLeaves(trimmed, highlight)...))
	}
	if len(blocks) == 0 {
		return []Node{Paragraph()}
	}
	return blocks
}

// sentinel delimits extracted span placeholders. NUL cannot occur in
// editor text, so splitting on it is unambiguous.
const sentinel = "\x00"

type inlineSpan struct {
	text string
	mark string
}

// inlineLeaves extracts bold then italic spans by replacing each match with
// an indexed placeholder, then splits on the placeholders and re-interleaves
// formatted and plain leaves in their original order.
func inlineLeaves(line string, highlight bool) []Node {
	var spans []inlineSpan

	replaced := boldSpan.ReplaceAllStringFunc(line, func(m string) string {
		spans = append(spans, inlineSpan{text: boldSpan.FindStringSubmatch(m)[1], mark: MarkBold})
		return sentinel + strconv.Itoa(len(spans)-1) + sentinel
	})
	replaced = italicSpan.ReplaceAllStringFunc(replaced, func(m string) string {
		spans = append(spans, inlineSpan{text: italicSpan.FindStringSubmatch(m)[1], mark: MarkItalic})
		return sentinel + strconv.Itoa(len(spans)-1) + sentinel
	})

	var leaves []Node
	for i, part := range strings.Split(replaced, sentinel) {
		if part == "" {
			continue
		}
		if i%2 == 1 {
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(spans) {
				leaves = append(leaves, leaf(part, "", highlight))
				continue
			}
			leaves = append(leaves, leaf(spans[idx].text, spans[idx].mark, highlight))
			continue
		}
		leaves = append(leaves, leaf(part, "", highlight))
	}
	if len(leaves) == 0 {
		leaves = append(leaves, leaf(line, "", highlight))
	}
	return leaves
}

func leaf(text, mark string, highlight bool) Node {
	var marks []Mark
	if mark != "" {
		marks = append(marks, Mark{Type: mark})
	}
	if highlight {
		marks = append(marks, Mark{Type: MarkHighlight})
	}
	return TextLeaf(text, marks...)
}
