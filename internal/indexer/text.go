package indexer

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/codevec/internal/parser"
)

// ToText flattens a block into the string that gets embedded. The header
// names the file; the body lists what was parsed from it. Output depends
// only on the block, so equal blocks give byte-identical text.
func ToText(b Block) string {
	lines := []string{
		"File: " + b.RelPath,
		"Type: " + string(b.Type),
		"Language: " + string(b.Language),
	}

	switch s := b.Parsed.(type) {
	case *parser.Documentation:
		lines = appendDocumentation(lines, s)
	case *parser.Code:
		// Comments are parsed but not embedded.
		lines = appendPrefixed(lines, "Function: ", s.Functions)
		lines = appendPrefixed(lines, "Class: ", s.Classes)
		lines = appendPrefixed(lines, "Struct: ", s.Structs)
		lines = appendPrefixed(lines, "Trait: ", s.Traits)
		lines = appendPrefixed(lines, "Import: ", s.Imports)
	case *parser.Config:
		lines = appendConfig(lines, s)
	case *parser.PlainText:
		lines = append(lines, s.Paragraphs...)
	case nil:
	default:
		panic(fmt.Sprintf("indexer: unhandled structure %T", s))
	}

	return strings.Join(lines, "\n")
}

func appendDocumentation(lines []string, d *parser.Documentation) []string {
	for _, sec := range d.Sections {
		lines = append(lines, "Section: "+sec.Title)
		lines = append(lines, sec.Content...)
	}
	for _, cb := range d.CodeBlocks {
		lang := cb.Language
		if lang == "" {
			lang = "None"
		}
		lines = append(lines, "Code block ("+lang+"):", cb.Code)
	}
	for _, l := range d.Links {
		lines = append(lines, "Link: "+l.Text+" -> "+l.URL)
	}
	for _, img := range d.Images {
		lines = append(lines, "Image: "+img.Alt+" -> "+img.URL)
	}
	return lines
}

func appendConfig(lines []string, c *parser.Config) []string {
	if len(c.Sections) == 0 {
		return append(lines, "Config: {}")
	}
	for _, sec := range c.Sections {
		lines = append(lines, "Section ["+sec.Name+"]:")
		for _, e := range sec.Entries {
			lines = append(lines, "  "+e.Key+" = "+e.Value)
		}
	}
	return lines
}

func appendPrefixed(lines []string, prefix string, values []string) []string {
	for _, v := range values {
		lines = append(lines, prefix+v)
	}
	return lines
}
