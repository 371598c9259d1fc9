package walker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path     string
		wantType FileType
		wantLang Language
	}{
		{"README", TypeReadme, LangUnknown},
		{"readme.md", TypeReadme, LangUnknown},
		{"docs/ReadMe.TXT", TypeReadme, LangUnknown},
		{"docs/intro.md", TypeMarkdown, LangUnknown},
		{"docs/API.MD", TypeMarkdown, LangUnknown},
		{"docs/guide.rst", TypeRestructuredText, LangUnknown},
		{"src/lib.rs", TypeRust, LangRust},
		{"sources/coin.move", TypeMove, LangMove},
		{"app.py", TypePython, LangPython},
		{"web/index.js", TypeJavaScript, LangJavaScript},
		{"web/app.ts", TypeTypeScript, LangTypeScript},
		{"Main.java", TypeJava, LangJava},
		{"engine.cpp", TypeCpp, LangCpp},
		{"engine.c", TypeC, LangC},
		{"engine.h", TypeHeader, LangC},
		{"engine.hpp", TypeCppHeader, LangCpp},
		{"Program.cs", TypeCSharp, LangCSharp},
		{"main.go", TypeGo, LangGo},
		{"app.rb", TypeRuby, LangRuby},
		{"index.php", TypePHP, LangPHP},
		{"App.swift", TypeSwift, LangSwift},
		{"Main.kt", TypeKotlin, LangKotlin},
		{"Main.scala", TypeScala, LangScala},
		{"Cargo.toml", TypeConfig, LangUnknown},
		{"package.json", TypeConfig, LangUnknown},
		{"requirements.txt", TypeConfig, LangUnknown},
		{"pom.xml", TypeConfig, LangUnknown},
		{"setup.py", TypePython, LangPython},
		{"notes.txt", TypeText, LangUnknown},
		{"Makefile", TypeText, LangUnknown},
		{"config.yaml", TypeText, LangUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			ft, lang := Classify(tt.path)
			assert.Equal(t, tt.wantType, ft)
			assert.Equal(t, tt.wantLang, lang)
		})
	}
}

func TestClassify_Pure(t *testing.T) {
	for _, p := range []string{"a.py", "README", "x.h", "Cargo.toml", "weird.name.rst", ""} {
		ft1, l1 := Classify(p)
		ft2, l2 := Classify(p)
		assert.Equal(t, ft1, ft2)
		assert.Equal(t, l1, l2)
	}
}

func TestDetectLanguage_CaseSensitive(t *testing.T) {
	ft, lang := Classify("SCRIPT.PY")
	assert.Equal(t, TypePython, ft)
	assert.Equal(t, LangUnknown, lang)
}

func TestFileType_Category(t *testing.T) {
	assert.Equal(t, CategoryDocumentation, TypeReadme.Category())
	assert.Equal(t, CategoryDocumentation, TypeRestructuredText.Category())
	assert.Equal(t, CategoryCode, TypeMove.Category())
	assert.Equal(t, CategoryCode, TypeScala.Category())
	assert.Equal(t, CategoryText, TypeHeader.Category())
	assert.Equal(t, CategoryText, TypeCppHeader.Category())
	assert.Equal(t, CategoryConfig, TypeConfig.Category())
	assert.Equal(t, CategoryText, TypeText.Category())
	assert.Equal(t, CategoryText, FileType("something-else").Category())
	assert.Equal(t, "documentation", CategoryDocumentation.String())
}
