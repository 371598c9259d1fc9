package walker

// FileType is the coarse category assigned to a file by Classify. Code files
// carry their language name as the type value.
type FileType string

const (
	TypeReadme           FileType = "readme"
	TypeMarkdown         FileType = "markdown"
	TypeRestructuredText FileType = "restructuredtext"
	TypeRust             FileType = "rust"
	TypeMove             FileType = "move"
	TypePython           FileType = "python"
	TypeJavaScript       FileType = "javascript"
	TypeTypeScript       FileType = "typescript"
	TypeJava             FileType = "java"
	TypeCpp              FileType = "cpp"
	TypeC                FileType = "c"
	TypeHeader           FileType = "header"
	TypeCppHeader        FileType = "cpp_header"
	TypeCSharp           FileType = "csharp"
	TypeGo               FileType = "go"
	TypeRuby             FileType = "ruby"
	TypePHP              FileType = "php"
	TypeSwift            FileType = "swift"
	TypeKotlin           FileType = "kotlin"
	TypeScala            FileType = "scala"
	TypeConfig           FileType = "config"
	TypeText             FileType = "text"
)

// Category selects the parser and normalizer branch for a FileType.
type Category int

const (
	CategoryText Category = iota
	CategoryDocumentation
	CategoryCode
	CategoryConfig
)

func (c Category) String() string {
	switch c {
	case CategoryDocumentation:
		return "documentation"
	case CategoryCode:
		return "code"
	case CategoryConfig:
		return "config"
	default:
		return "text"
	}
}

// Category returns the branch this file type is parsed under. Header files
// are deliberately not code: they fall through to plain text.
func (t FileType) Category() Category {
	switch t {
	case TypeReadme, TypeMarkdown, TypeRestructuredText:
		return CategoryDocumentation
	case TypeRust, TypeMove, TypePython, TypeJavaScript, TypeTypeScript,
		TypeJava, TypeCpp, TypeC, TypeCSharp, TypeGo, TypeRuby, TypePHP,
		TypeSwift, TypeKotlin, TypeScala:
		return CategoryCode
	case TypeConfig:
		return CategoryConfig
	default:
		return CategoryText
	}
}

// Language is the source language derived from a file's extension.
type Language string

const (
	LangRust       Language = "rust"
	LangMove       Language = "move"
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangJava       Language = "java"
	LangCpp        Language = "cpp"
	LangC          Language = "c"
	LangCSharp     Language = "csharp"
	LangGo         Language = "go"
	LangRuby       Language = "ruby"
	LangPHP        Language = "php"
	LangSwift      Language = "swift"
	LangKotlin     Language = "kotlin"
	LangScala      Language = "scala"
	LangUnknown    Language = "unknown"
)

// FileRecord holds one file discovered during a crawl.
type FileRecord struct {
	Path     string   `json:"path"`          // Absolute path on disk.
	RelPath  string   `json:"relative_path"` // Slash-separated path relative to the root.
	Content  string   `json:"content"`
	Type     FileType `json:"type"`
	Language Language `json:"language"`
	Size     int64    `json:"size"`
}
