package parser

import (
	"regexp"
	"strings"

	"github.com/ziadkadry99/codevec/internal/walker"
)

var (
	codeBlockRegex = regexp.MustCompile("(?s)```(\\w+)?\n(.*?)\n```")
	mdLinkRegex    = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	mdImageRegex   = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)
	rstLinkRegex   = regexp.MustCompile("`(.*?) <(.*?)>`_")
	rstImageRegex  = regexp.MustCompile(`\.\. image:: (.*?)\n\s+:alt: (.*?)(?:\n|$)`)
)

// ParseDocumentation splits a documentation file into sections and collects
// its code blocks, links and images.
//
// Markdown sections start at lines beginning with '#'. A reStructuredText
// adornment line (only '=' or only '-') starts a new untitled section;
// untitled sections are never emitted, so reStructuredText files currently
// produce no sections. README files are not sectioned at all.
func ParseDocumentation(content string, ft walker.FileType) *Documentation {
	sections := []Section{}
	switch ft {
	case walker.TypeMarkdown:
		sections = markdownSections(content)
	case walker.TypeRestructuredText:
		sections = rstSections(content)
	}

	return &Documentation{
		Sections:   sections,
		CodeBlocks: extractCodeBlocks(content),
		Links:      extractLinks(content),
		Images:     extractImages(content),
	}
}

func markdownSections(content string) []Section {
	sections := []Section{}
	current := Section{Content: []string{}}
	inFence := false

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, " \t\r")

		// Fenced code is reported as code blocks, not section text.
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		if strings.HasPrefix(line, "#") {
			if current.Title != "" {
				sections = append(sections, current)
			}
			current = Section{
				Title:   strings.TrimSpace(strings.TrimLeft(line, "#")),
				Content: []string{},
			}
			continue
		}
		if strings.TrimSpace(line) != "" {
			current.Content = append(current.Content, line)
		}
	}

	if current.Title != "" {
		sections = append(sections, current)
	}
	return sections
}

func rstSections(content string) []Section {
	sections := []Section{}
	current := Section{Content: []string{}}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if isAdornment(line) {
			if current.Title != "" {
				sections = append(sections, current)
			}
			current = Section{Content: []string{}}
			continue
		}
		if strings.TrimSpace(line) != "" {
			current.Content = append(current.Content, line)
		}
	}

	if current.Title != "" {
		sections = append(sections, current)
	}
	return sections
}

// isAdornment reports whether line consists solely of '=' or solely of '-'.
func isAdornment(line string) bool {
	if line == "" {
		return false
	}
	return strings.Trim(line, "=") == "" || strings.Trim(line, "-") == ""
}

func extractCodeBlocks(content string) []CodeBlock {
	blocks := []CodeBlock{}
	for _, m := range codeBlockRegex.FindAllStringSubmatch(content, -1) {
		blocks = append(blocks, CodeBlock{Language: m[1], Code: m[2]})
	}
	return blocks
}

func extractLinks(content string) []Link {
	links := []Link{}
	// ![alt](url) also matches here, so images are reported as links too.
	for _, m := range mdLinkRegex.FindAllStringSubmatch(content, -1) {
		links = append(links, Link{Text: m[1], URL: m[2], Kind: MarkupMarkdown})
	}
	for _, m := range rstLinkRegex.FindAllStringSubmatch(content, -1) {
		links = append(links, Link{Text: m[1], URL: m[2], Kind: MarkupRST})
	}
	return links
}

func extractImages(content string) []Image {
	images := []Image{}
	for _, m := range mdImageRegex.FindAllStringSubmatch(content, -1) {
		images = append(images, Image{Alt: m[1], URL: m[2], Kind: MarkupMarkdown})
	}
	for _, m := range rstImageRegex.FindAllStringSubmatch(content, -1) {
		images = append(images, Image{Alt: m[2], URL: m[1], Kind: MarkupRST})
	}
	return images
}
