// Package parser extracts best-effort structure from file content.
//
// Extraction is pattern based, not a grammar-aware parse. Every function in
// this package is total: input that matches nothing yields empty fields.
package parser

// Structure is the parsed form of one file. It is a closed set: the only
// implementations are *Documentation, *Code, *Config and *PlainText, and
// callers switch over exactly those four.
type Structure interface {
	// Kind names the variant in serialized output.
	Kind() string
	structure()
}

// Documentation is extracted from README, Markdown and reStructuredText files.
type Documentation struct {
	Sections   []Section   `json:"sections"`
	CodeBlocks []CodeBlock `json:"code_blocks"`
	Links      []Link      `json:"links"`
	Images     []Image     `json:"images"`
}

// Section is a titled run of content lines.
type Section struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// CodeBlock is a fenced code block. Language is empty when the fence has no tag.
type CodeBlock struct {
	Language string `json:"language,omitempty"`
	Code     string `json:"code"`
}

// MarkupKind records which markup syntax produced a link or image.
type MarkupKind string

const (
	MarkupMarkdown MarkupKind = "markdown"
	MarkupRST      MarkupKind = "rst"
)

type Link struct {
	Text string     `json:"text"`
	URL  string     `json:"url"`
	Kind MarkupKind `json:"type"`
}

type Image struct {
	Alt  string     `json:"alt"`
	URL  string     `json:"url"`
	Kind MarkupKind `json:"type"`
}

// Code holds names pulled out of source files. Fields that have no
// extraction rule for the file's language stay empty.
type Code struct {
	Functions []string `json:"functions"`
	Classes   []string `json:"classes"`
	Structs   []string `json:"structs"`
	Traits    []string `json:"traits"`
	Imports   []string `json:"imports"`
	Comments  []string `json:"comments"`
}

// PlainText splits generic text into paragraphs and lines.
type PlainText struct {
	Paragraphs []string `json:"paragraphs"`
	Lines      []string `json:"lines"`
}

func (*Documentation) Kind() string { return "documentation" }
func (*Code) Kind() string          { return "code" }
func (*Config) Kind() string        { return "config" }
func (*PlainText) Kind() string     { return "text" }

func (*Documentation) structure() {}
func (*Code) structure()          {}
func (*Config) structure()        {}
func (*PlainText) structure()     {}
