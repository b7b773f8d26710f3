package render

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/dgallion1/docview/internal/doctree"
	"github.com/dgallion1/docview/internal/parser"
)

func parseText(t *testing.T, input string) *doctree.Document {
	t.Helper()
	p := &parser.TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "doc.txt")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestRenderOutline(t *testing.T) {
	doc := parseText(t, "# A\nhello\n## B\nworld\n")
	out, err := Render(doc, FormatOutline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "A\n  B" {
		t.Errorf("expected %q, got %q", "A\n  B", out)
	}
}

func TestRenderOutline_MatchesSourceHeadingOrder(t *testing.T) {
	input := "# One\n## Two\n### Three\n## Four\n# Five\n"
	doc := parseText(t, input)
	out, err := Render(doc, FormatOutline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "One\n  Two\n    Three\n  Four\nFive"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestRenderText_RoundTripPreservesStructure(t *testing.T) {
	input := "# A\nhello\n## B\nworld\n### C\ndeep body\n# D\ntail\n"
	doc := parseText(t, input)

	out, err := Render(doc, FormatText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reparsed := parseText(t, out)
	if !reflect.DeepEqual(doc.Headings(), reparsed.Headings()) {
		t.Errorf("headings changed: %v vs %v", doc.Headings(), reparsed.Headings())
	}

	var levels, reLevels []int
	doc.Walk(func(s *doctree.Section, _ int) { levels = append(levels, s.Level) })
	reparsed.Walk(func(s *doctree.Section, _ int) { reLevels = append(reLevels, s.Level) })
	if !reflect.DeepEqual(levels, reLevels) {
		t.Errorf("nesting changed: %v vs %v", levels, reLevels)
	}
}

func TestRenderText_HeadingMarkersAtColumnZero(t *testing.T) {
	doc := parseText(t, "# A\nhello\n## B\nworld\n")
	out, err := Render(doc, FormatText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(out, "\n")
	foundIndentedBody := false
	for _, l := range lines {
		if strings.HasPrefix(l, " #") {
			t.Errorf("indented heading marker in output: %q", l)
		}
		if l == "  world" {
			foundIndentedBody = true
		}
	}
	if !foundIndentedBody {
		t.Errorf("expected body of nested section indented two spaces, got:\n%s", out)
	}
}

func TestRenderHTML(t *testing.T) {
	doc := parseText(t, "# A & B\nhello *world*\n## C\nbody\n")
	out, err := Render(doc, FormatHTML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<h1>A &amp; B</h1>") {
		t.Errorf("expected escaped h1, got %q", out)
	}
	if !strings.Contains(out, "<h2>C</h2>") {
		t.Errorf("expected h2 for nested section, got %q", out)
	}
	if !strings.Contains(out, "<em>world</em>") {
		t.Errorf("expected markdown body converted to HTML, got %q", out)
	}
}

func TestRenderHTML_ClampsDeepLevels(t *testing.T) {
	doc := &doctree.Document{
		Sections: []*doctree.Section{{Heading: "Deep", Level: 9}},
	}
	out, err := Render(doc, FormatHTML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<h6>Deep</h6>") {
		t.Errorf("expected level clamped to h6, got %q", out)
	}
}

func TestRender_Deterministic(t *testing.T) {
	doc := parseText(t, "# A\nhello\n## B\nworld\n")
	for _, f := range []Format{FormatText, FormatOutline, FormatHTML} {
		a, err := Render(doc, f)
		if err != nil {
			t.Fatalf("render %s: %v", f, err)
		}
		b, err := Render(doc, f)
		if err != nil {
			t.Fatalf("render %s: %v", f, err)
		}
		if a != b {
			t.Errorf("format %s: non-deterministic output", f)
		}
	}
}

func TestRender_UnsupportedFormat(t *testing.T) {
	doc := parseText(t, "# A\n")
	_, err := Render(doc, Format("yaml"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"outline", FormatOutline, false},
		{"html", FormatHTML, false},
		{"", "", true},
		{"xml", "", true},
		{"TEXT", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("ParseFormat(%q): expected ErrUnsupportedFormat, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
