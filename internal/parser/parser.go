package parser

import (
	"strings"

	"github.com/ziadkadry99/codevec/internal/walker"
)

// Parse extracts the structure for content according to its file type.
// It never fails; the variant returned is fixed by ft.Category(). The
// language does not affect extraction; code rules are keyed on ft.
func Parse(content string, ft walker.FileType, _ walker.Language) Structure {
	switch ft.Category() {
	case walker.CategoryDocumentation:
		return ParseDocumentation(content, ft)
	case walker.CategoryCode:
		return ParseCode(content, ft)
	case walker.CategoryConfig:
		return ParseConfig(content)
	default:
		return ParsePlainText(content)
	}
}

// ParsePlainText splits content into blank-line separated paragraphs and
// individual lines, trimmed, with empty entries dropped.
func ParsePlainText(content string) *PlainText {
	pt := &PlainText{
		Paragraphs: []string{},
		Lines:      []string{},
	}
	for _, p := range strings.Split(content, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			pt.Paragraphs = append(pt.Paragraphs, p)
		}
	}
	for _, l := range strings.Split(content, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			pt.Lines = append(pt.Lines, l)
		}
	}
	return pt
}
