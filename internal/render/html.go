package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/dgallion1/docview/internal/doctree"
	"github.com/yuin/goldmark"
)

// bodyMarkdown converts section bodies to HTML. goldmark instances are
// stateless, so a single engine is shared across renders.
var bodyMarkdown = goldmark.New()

// renderHTML wraps each section heading in the matching <hN> tag and runs
// bodies through goldmark so markdown sources keep their inline formatting.
func renderHTML(doc *doctree.Document) (string, error) {
	var buf strings.Builder
	var renderErr error

	doc.Walk(func(s *doctree.Section, _ int) {
		if renderErr != nil {
			return
		}
		if s.Heading != "" {
			level := markerLevel(s)
			fmt.Fprintf(&buf, "<h%d>%s</h%d>\n", level, html.EscapeString(s.Heading), level)
		}
		if s.Body != "" {
			var body strings.Builder
			if err := bodyMarkdown.Convert([]byte(s.Body), &body); err != nil {
				renderErr = fmt.Errorf("render body: %w", err)
				return
			}
			buf.WriteString(body.String())
		}
	})

	if renderErr != nil {
		return "", renderErr
	}
	return buf.String(), nil
}
