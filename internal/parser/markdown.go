package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/dgallion1/docview/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. An optional YAML
// frontmatter block may supply the document title.
type MarkdownParser struct {
	Options Options
}

type markdownMeta struct {
	Title string `yaml:"title"`
}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	title := baseTitle(filename)
	var meta markdownMeta
	src, err := frontmatter.Parse(bytes.NewReader(raw), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta.Title != "" {
		title = meta.Title
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	stack := newSectionStack()
	var currentText bytes.Buffer

	flushText := func() {
		stack.AppendBody(currentText.String())
		currentText.Reset()
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			flushText()
			stack.OpenHeading(string(node.Text(src)), node.Level, headingLine(node, src))

		default:
			// Collect text content from non-heading blocks.
			t := extractText(n, src)
			if t != "" {
				if currentText.Len() > 0 {
					currentText.WriteString("\n\n")
				}
				currentText.WriteString(t)
			}
		}
	}
	flushText()

	return stack.Document(title, p.Options.AllowPlain)
}

// headingLine maps a heading node back to its 1-based source line.
func headingLine(h *ast.Heading, src []byte) int {
	start := -1
	if lines := h.Lines(); lines.Len() > 0 {
		start = lines.At(0).Start
	} else if t, ok := h.FirstChild().(*ast.Text); ok {
		start = t.Segment.Start
	}
	if start < 0 || start > len(src) {
		return 0
	}
	return 1 + bytes.Count(src[:start], []byte{'\n'})
}

// extractText gets the text content of a goldmark AST node. Block nodes
// with source lines (paragraphs, code blocks) yield those lines directly;
// the inline children hold the same text, so walking both would emit every
// body twice. Container blocks without lines (lists, quotes) recurse.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines.Len() > 0 {
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(src))
			}
			return strings.TrimSpace(buf.String())
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
			continue
		}
		s := extractText(c, src)
		if s == "" {
			continue
		}
		if c.Type() == ast.TypeBlock && buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(s)
	}
	return strings.TrimSpace(buf.String())
}
