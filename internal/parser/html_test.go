package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_HeadingsAndTitle(t *testing.T) {
	input := `<html><head><title>Page Title</title></head><body>
<h1>Main</h1>
<p>Intro paragraph.</p>
<h2>Detail</h2>
<p>Detail paragraph.</p>
<script>ignored()</script>
</body></html>`

	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "Page Title" {
		t.Errorf("expected title from <title>, got %q", doc.Title)
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 top-level section, got %d", len(doc.Sections))
	}
	main := doc.Sections[0]
	if main.Heading != "Main" || main.Level != 1 {
		t.Errorf("expected Main at level 1, got %q level %d", main.Heading, main.Level)
	}
	if !strings.Contains(main.Body, "Intro paragraph.") {
		t.Errorf("expected intro in body, got %q", main.Body)
	}
	if strings.Contains(main.Body, "ignored") {
		t.Errorf("script content leaked into body: %q", main.Body)
	}
	if len(main.Children) != 1 || main.Children[0].Heading != "Detail" {
		t.Fatalf("expected child Detail, got %+v", main.Children)
	}
}

func TestHeadingLevelTags(t *testing.T) {
	tests := []struct {
		tag  string
		want int
	}{
		{"h1", 1},
		{"h6", 6},
		{"h7", 0},
		{"p", 0},
		{"header", 0},
	}
	for _, tt := range tests {
		if got := headingLevel(tt.tag); got != tt.want {
			t.Errorf("headingLevel(%q) = %d, want %d", tt.tag, got, tt.want)
		}
	}
}
