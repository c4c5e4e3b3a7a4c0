// Package richtext models the nested document tree used to store notebook
// page content: a doc root containing block nodes containing text leaves,
// serialized as JSON in the page's content column.
package richtext

import (
	"encoding/json"
	"strings"
)

// Node types used by the editor schema.
const (
	TypeDoc       = "doc"
	TypeParagraph = "paragraph"
	TypeHeading   = "heading"
	TypeText      = "text"
)

// MarkHighlight tags leaves inserted by the assistant so the editor can
// render them highlighted.
const MarkHighlight = "highlight"

// Mark is an inline formatting annotation on a text leaf.
type Mark struct {
	Type string `json:"type"`
}

// Node is one node of the document tree. A node is either a leaf carrying
// Text or a container carrying Content, never neither. Marks are only
// meaningful on leaves; Attrs carries block-level attributes such as a
// heading's level.
type Node struct {
	Type    string         `json:"type"`
	Text    string         `json:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []Node         `json:"content,omitempty"`
}

// IsLeaf reports whether the node carries text rather than children.
func (n *Node) IsLeaf() bool { return n.Text != "" || len(n.Content) == 0 }

// TextLeaf creates a text leaf with the given marks.
func TextLeaf(text string, marks ...Mark) Node {
	return Node{Type: TypeText, Text: text, Marks: marks}
}

// Paragraph creates a paragraph containing the given children.
func Paragraph(children ...Node) Node {
	return Node{Type: TypeParagraph, Content: children}
}

// Heading creates a heading of the given level containing the children.
func Heading(level int, children ...Node) Node {
	return Node{Type: TypeHeading, Attrs: map[string]any{"level": level}, Content: children}
}

// EmptyDocument creates a doc root with no content.
func EmptyDocument() Node {
	return Node{Type: TypeDoc, Content: []Node{}}
}

// Document creates a doc root holding the given block nodes.
func Document(blocks []Node) Node {
	return Node{Type: TypeDoc, Content: blocks}
}

// Marshal serializes a document tree for storage.
func Marshal(doc Node) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseDocument deserializes stored page content into a document tree.
// Pages written before the editor migration hold plain text; anything that
// is not a JSON document node is wrapped into a single-paragraph doc so
// callers never see a parse failure.
func ParseDocument(content string) Node {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return EmptyDocument()
	}
	var n Node
	if err := json.Unmarshal([]byte(trimmed), &n); err != nil || n.Type == "" {
		return Document([]Node{Paragraph(TextLeaf(content))})
	}
	return n
}

// Flatten extracts the plain text of a tree depth-first, appending one
// space after every leaf's text.
func Flatten(n Node) string {
	var b strings.Builder
	flattenInto(&b, n)
	return b.String()
}

// FlattenContent flattens serialized page content, falling back to the raw
// string for non-JSON values via ParseDocument.
func FlattenContent(content string) string {
	return Flatten(ParseDocument(content))
}

func flattenInto(b *strings.Builder, n Node) {
	if n.Text != "" {
		b.WriteString(n.Text)
		b.WriteByte(' ')
	}
	for _, child := range n.Content {
		flattenInto(b, child)
	}
}
