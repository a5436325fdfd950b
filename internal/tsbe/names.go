package tsbe

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// reserved are the JavaScript reserved words, strict mode included, and the
// class member names that clash with the generated struct classes.
var reserved = map[string]bool{
	"await": true, "break": true, "case": true, "catch": true, "class": true,
	"const": true, "constructor": true, "continue": true, "debugger": true, "default": true,
	"delete": true, "do": true, "else": true, "enum": true, "export": true,
	"extends": true, "false": true, "finally": true, "for": true, "function": true,
	"if": true, "implements": true, "import": true, "in": true, "instanceof": true,
	"interface": true, "let": true, "new": true, "null": true, "package": true,
	"private": true, "protected": true, "public": true, "return": true, "static": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "yield": true,
}

// Rename turns an IR identifier into a valid TypeScript identifier.
// Compiler temporaries such as %#1 become $$1, keywords get a __ suffix.
func Rename(name string) string {
	if reserved[name] {
		return name + "__"
	}

	return strings.Map(func(r rune) rune {
		if r == '%' || r == '#' {
			return '$'
		}

		return r
	}, name)
}

// Quote returns s as a double-quoted string literal.
func Quote(s string) string {
	return strconv.Quote(s)
}

// ImportName is the namespace a module or package is imported as.
func ImportName(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
