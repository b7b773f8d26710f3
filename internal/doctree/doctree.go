package doctree

// Document is the root of a parsed document. It is constructed once by a
// parser and never mutated afterwards; a reload produces a new Document.
type Document struct {
	Title    string     `json:"title"`    // Document title (from metadata or filename)
	Sections []*Section `json:"sections"` // Top-level sections, in source order
}

// Section is one heading-delimited unit of the document tree. A child's
// Level is strictly greater than its parent's.
type Section struct {
	Heading  string     `json:"heading"`            // Section heading (empty for an anonymous section)
	Level    int        `json:"level"`              // Heading depth (1 for h1/"#", 0 for anonymous)
	Body     string     `json:"body,omitempty"`     // Text content of this section (may be empty)
	Line     int        `json:"line,omitempty"`     // Source line of the heading (0 if N/A)
	Children []*Section `json:"children,omitempty"` // Subsections
}

// Walk visits every section in pre-order, i.e. source order.
func (d *Document) Walk(fn func(s *Section, depth int)) {
	var visit func(s *Section, depth int)
	visit = func(s *Section, depth int) {
		fn(s, depth)
		for _, c := range s.Children {
			visit(c, depth+1)
		}
	}
	for _, s := range d.Sections {
		visit(s, 0)
	}
}

// Headings returns every heading in source order, skipping anonymous sections.
func (d *Document) Headings() []string {
	var out []string
	d.Walk(func(s *Section, _ int) {
		if s.Heading != "" {
			out = append(out, s.Heading)
		}
	})
	return out
}

// SectionCount returns the total number of sections, nested included.
func (d *Document) SectionCount() int {
	n := 0
	d.Walk(func(*Section, int) { n++ })
	return n
}
