package doctree

import (
	"reflect"
	"testing"
)

func sampleDoc() *Document {
	return &Document{
		Title: "sample",
		Sections: []*Section{
			{
				Heading: "A",
				Level:   1,
				Body:    "hello",
				Children: []*Section{
					{Heading: "B", Level: 2, Body: "world"},
				},
			},
			{Heading: "C", Level: 1},
		},
	}
}

func TestWalk_PreOrder(t *testing.T) {
	var visited []string
	var depths []int
	sampleDoc().Walk(func(s *Section, depth int) {
		visited = append(visited, s.Heading)
		depths = append(depths, depth)
	})

	if !reflect.DeepEqual(visited, []string{"A", "B", "C"}) {
		t.Errorf("expected source-order visit, got %v", visited)
	}
	if !reflect.DeepEqual(depths, []int{0, 1, 0}) {
		t.Errorf("expected depths [0 1 0], got %v", depths)
	}
}

func TestHeadings_SkipsAnonymous(t *testing.T) {
	doc := &Document{
		Sections: []*Section{
			{Body: "anonymous preamble"},
			{Heading: "A", Level: 1},
		},
	}
	if got := doc.Headings(); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("expected [A], got %v", got)
	}
}

func TestSectionCount(t *testing.T) {
	if got := sampleDoc().SectionCount(); got != 3 {
		t.Errorf("expected 3 sections, got %d", got)
	}
	empty := &Document{}
	if got := empty.SectionCount(); got != 0 {
		t.Errorf("expected 0 sections, got %d", got)
	}
}
