package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgallion1/docview/internal/doctree"
)

// Format selects an output style.
type Format string

const (
	// FormatText flattens the document into markdown-like text: heading
	// marker lines with bodies indented by nesting depth.
	FormatText Format = "text"
	// FormatOutline emits headings only, indented by nesting depth.
	FormatOutline Format = "outline"
	// FormatHTML wraps each section in a heading tag of matching depth.
	FormatHTML Format = "html"
)

// ErrUnsupportedFormat is returned for unrecognized format values.
var ErrUnsupportedFormat = errors.New("unsupported render format")

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatOutline, FormatHTML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Render serializes a document in the given format. Output is deterministic
// for the same document and format.
func Render(doc *doctree.Document, format Format) (string, error) {
	switch format {
	case FormatText:
		return renderText(doc), nil
	case FormatOutline:
		return renderOutline(doc), nil
	case FormatHTML:
		return renderHTML(doc)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}
}

// renderText emits heading markers at column 0 so the output re-parses to
// the same heading structure, with body lines indented by nesting depth.
func renderText(doc *doctree.Document) string {
	var blocks []string
	doc.Walk(func(s *doctree.Section, depth int) {
		if s.Heading != "" {
			blocks = append(blocks, strings.Repeat("#", markerLevel(s))+" "+s.Heading)
		}
		if s.Body != "" {
			blocks = append(blocks, indentLines(s.Body, depth))
		}
	})
	return strings.Join(blocks, "\n\n")
}

func renderOutline(doc *doctree.Document) string {
	var lines []string
	doc.Walk(func(s *doctree.Section, depth int) {
		if s.Heading == "" {
			return
		}
		lines = append(lines, strings.Repeat("  ", depth)+s.Heading)
	})
	return strings.Join(lines, "\n")
}

// markerLevel keeps heading markers within markdown's depth range.
func markerLevel(s *doctree.Section) int {
	if s.Level < 1 {
		return 1
	}
	if s.Level > 6 {
		return 6
	}
	return s.Level
}

// indentLines prefixes each line with two spaces per depth level. Two
// spaces stay below markdown's code-block threshold, so indented bodies
// survive a re-parse as plain text.
func indentLines(text string, depth int) string {
	if depth <= 0 {
		return text
	}
	prefix := strings.Repeat("  ", depth)
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
