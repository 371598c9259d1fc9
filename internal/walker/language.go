package walker

import (
	"path/filepath"
	"strings"
)

// readmeNames are matched against the lower-cased file name.
var readmeNames = map[string]bool{
	"readme":     true,
	"readme.md":  true,
	"readme.txt": true,
}

// extensionToType maps lower-cased extensions to code file types.
var extensionToType = map[string]FileType{
	".rs":    TypeRust,
	".move":  TypeMove,
	".py":    TypePython,
	".js":    TypeJavaScript,
	".ts":    TypeTypeScript,
	".java":  TypeJava,
	".cpp":   TypeCpp,
	".c":     TypeC,
	".h":     TypeHeader,
	".hpp":   TypeCppHeader,
	".cs":    TypeCSharp,
	".go":    TypeGo,
	".rb":    TypeRuby,
	".php":   TypePHP,
	".swift": TypeSwift,
	".kt":    TypeKotlin,
	".scala": TypeScala,
}

// configNames are matched against the lower-cased file name.
var configNames = map[string]bool{
	"cargo.toml":       true,
	"package.json":     true,
	"requirements.txt": true,
	"setup.py":         true,
	"pom.xml":          true,
}

// extensionToLanguage maps file extensions to languages. Lookups are
// case-sensitive.
var extensionToLanguage = map[string]Language{
	".rs":    LangRust,
	".move":  LangMove,
	".py":    LangPython,
	".js":    LangJavaScript,
	".ts":    LangTypeScript,
	".java":  LangJava,
	".cpp":   LangCpp,
	".c":     LangC,
	".h":     LangC,
	".hpp":   LangCpp,
	".cs":    LangCSharp,
	".go":    LangGo,
	".rb":    LangRuby,
	".php":   LangPHP,
	".swift": LangSwift,
	".kt":    LangKotlin,
	".scala": LangScala,
}

// Classify returns the file type and language for a path. Only the file
// name is inspected; the file is never opened.
func Classify(path string) (FileType, Language) {
	return DetectFileType(path), DetectLanguage(path)
}

// DetectFileType applies the naming rules in priority order: readme names,
// documentation extensions, code extensions, config file names, then text.
func DetectFileType(path string) FileType {
	name := strings.ToLower(filepath.Base(path))

	if readmeNames[name] {
		return TypeReadme
	}
	if strings.HasSuffix(name, ".md") {
		return TypeMarkdown
	}
	if strings.HasSuffix(name, ".rst") {
		return TypeRestructuredText
	}
	if ft, ok := extensionToType[filepath.Ext(name)]; ok {
		return ft
	}
	if configNames[name] {
		return TypeConfig
	}
	return TypeText
}

// DetectLanguage returns the language for a path based on its extension,
// or LangUnknown.
func DetectLanguage(path string) Language {
	if lang, ok := extensionToLanguage[filepath.Ext(filepath.Base(path))]; ok {
		return lang
	}
	return LangUnknown
}
