package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docview/internal/doctree"
)

// TextParser handles plain text files with markdown-style heading markers:
// one or more leading '#' characters followed by a space open a section at
// that depth. Everything else accumulates into the innermost open section.
type TextParser struct {
	Options Options
}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	stack := newSectionStack()
	var body strings.Builder
	lineNo := 0

	flushBody := func() {
		stack.AppendBody(body.String())
		body.Reset()
	}

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if level, heading, ok := headingMarker(line); ok {
			flushBody()
			stack.OpenHeading(heading, level, lineNo)
			continue
		}

		if strings.TrimSpace(line) == "" {
			// Paragraph break.
			if body.Len() > 0 {
				flushBody()
			}
			continue
		}

		if body.Len() > 0 {
			body.WriteString("\n")
		}
		body.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flushBody()

	return stack.Document(baseTitle(filename), p.Options.AllowPlain)
}

// headingMarker reports whether a line is a heading marker, returning its
// depth and trimmed heading text. Markers must start at column 0.
func headingMarker(line string) (level int, heading string, ok bool) {
	i := 0
	for i < len(line) && line[i] == '#' {
		i++
	}
	if i == 0 || i >= len(line) || line[i] != ' ' {
		return 0, "", false
	}
	return i, strings.TrimSpace(line[i+1:]), true
}
