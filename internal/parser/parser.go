package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docview/internal/doctree"
)

// ErrNoHeadings is returned when an input contains no heading structure at
// all. Callers that want a single anonymous section instead set AllowPlain
// in Options.
var ErrNoHeadings = errors.New("malformed input: no headings found")

// Options controls parsing behavior shared across formats.
type Options struct {
	// AllowPlain collapses a headingless input into one anonymous section
	// holding all of its text instead of failing with ErrNoHeadings.
	AllowPlain bool

	// PDFFallbackPdftotext enables the pdftotext fallback for PDFs the Go
	// library cannot read.
	PDFFallbackPdftotext bool
}

// Parser converts raw document bytes into a Document.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{Options: opts}, nil
	case ".md", ".markdown":
		return &MarkdownParser{Options: opts}, nil
	case ".html", ".htm":
		return &HTMLParser{Options: opts}, nil
	case ".pdf":
		return &PDFParser{Options: opts}, nil
	case ".docx":
		return &DOCXParser{Options: opts}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// baseTitle strips a known extension from a filename to produce a default
// document title.
func baseTitle(filename string) string {
	ext := filepath.Ext(filename)
	if SupportedExtensions[strings.ToLower(ext)] {
		return strings.TrimSuffix(filename, ext)
	}
	return filename
}

// sectionStack builds a section tree from a stream of headings and body
// text, enforcing the depth discipline: a new heading pops every open
// section of equal or lower depth before attaching.
type sectionStack struct {
	root  *doctree.Section
	stack []stackEntry
}

type stackEntry struct {
	section *doctree.Section
	level   int
}

func newSectionStack() *sectionStack {
	root := &doctree.Section{}
	return &sectionStack{
		root:  root,
		stack: []stackEntry{{section: root, level: 0}},
	}
}

// OpenHeading starts a new section at the given level.
func (s *sectionStack) OpenHeading(heading string, level, line int) {
	sec := &doctree.Section{Heading: heading, Level: level, Line: line}
	for len(s.stack) > 1 && s.stack[len(s.stack)-1].level >= level {
		s.stack = s.stack[:len(s.stack)-1]
	}
	parent := s.stack[len(s.stack)-1].section
	parent.Children = append(parent.Children, sec)
	s.stack = append(s.stack, stackEntry{section: sec, level: level})
}

// AppendBody adds text to the innermost open section, separating blocks
// with a blank line.
func (s *sectionStack) AppendBody(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	top := s.stack[len(s.stack)-1].section
	if top.Body != "" {
		top.Body += "\n\n" + text
	} else {
		top.Body = text
	}
}

// Document finalizes the tree. A headingless input either fails with
// ErrNoHeadings or, with allowPlain, becomes one anonymous section.
func (s *sectionStack) Document(title string, allowPlain bool) (*doctree.Document, error) {
	doc := &doctree.Document{Title: title, Sections: s.root.Children}
	if len(doc.Sections) == 0 {
		if !allowPlain {
			return nil, ErrNoHeadings
		}
		if s.root.Body != "" {
			doc.Sections = []*doctree.Section{{Body: s.root.Body}}
		}
	}
	return doc, nil
}
