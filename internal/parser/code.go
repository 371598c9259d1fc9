package parser

import (
	"regexp"

	"github.com/ziadkadry99/codevec/internal/walker"
)

var (
	pyImportRegex  = regexp.MustCompile(`(?m)^(?:from\s+(\w+)\s+import|\s*import\s+(\w+))`)
	useRegex       = regexp.MustCompile(`use\s+([^;]+);`)
	pyDefRegex     = regexp.MustCompile(`def\s+(\w+)\s*\(`)
	rustFnRegex    = regexp.MustCompile(`fn\s+(\w+)\s*\(`)
	moveFunRegex   = regexp.MustCompile(`public\s+fun\s+(\w+)\s*\(`)
	pyClassRegex   = regexp.MustCompile(`class\s+(\w+)`)
	structRegex    = regexp.MustCompile(`struct\s+(\w+)`)
	hashCommentRe  = regexp.MustCompile(`(?m)#\s*(.+)$`)
	lineCommentRe  = regexp.MustCompile(`(?m)//\s*(.+)$`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*([^*]*\*+([^*/][^*]*\*+)*/)`)
)

// ParseCode pulls imports, function, class and struct names and comments out
// of source code using patterns chosen by file type.
//
// Only Python, Rust and Move files have name rules; every other type yields
// comments only. The block comment pattern does not understand nesting, so
// nested or "*/"-adjacent comments may be split or merged.
func ParseCode(content string, ft walker.FileType) *Code {
	c := &Code{
		Functions: []string{},
		Classes:   []string{},
		Structs:   []string{},
		Traits:    []string{},
		Imports:   []string{},
		Comments:  []string{},
	}

	switch ft {
	case walker.TypePython:
		for _, m := range pyImportRegex.FindAllStringSubmatch(content, -1) {
			// One of the two alternatives matched.
			if m[1] != "" {
				c.Imports = append(c.Imports, m[1])
			} else {
				c.Imports = append(c.Imports, m[2])
			}
		}
		c.Functions = submatches(pyDefRegex, content)
		c.Classes = submatches(pyClassRegex, content)
	case walker.TypeRust:
		c.Imports = submatches(useRegex, content)
		c.Functions = submatches(rustFnRegex, content)
		c.Structs = submatches(structRegex, content)
	case walker.TypeMove:
		c.Imports = submatches(useRegex, content)
		c.Functions = submatches(moveFunRegex, content)
		c.Structs = submatches(structRegex, content)
	}

	if ft == walker.TypePython {
		c.Comments = submatches(hashCommentRe, content)
	} else {
		c.Comments = append(submatches(lineCommentRe, content), submatches(blockCommentRe, content)...)
	}

	return c
}

// submatches returns the first capture group of every match, in order.
func submatches(re *regexp.Regexp, content string) []string {
	out := []string{}
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		out = append(out, m[1])
	}
	return out
}
