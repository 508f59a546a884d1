package syntax

import (
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// ruleSpec is a compiled-in rule table for one language family.
type ruleSpec struct {
	keywords []string
	number   string
	strPat   string
	comment  string
}

var specs = map[string]ruleSpec{
	"Go": {
		keywords: []string{
			"break", "case", "chan", "const", "continue", "default",
			"defer", "else", "fallthrough", "for", "func", "go", "goto",
			"if", "import", "interface", "map", "package", "range",
			"return", "select", "struct", "switch", "type", "var",
		},
		number:  `\b\d[\d_]*(\.\d+)?\b`,
		strPat:  "`[^`]*`?|\"(\\\\.|[^\"\\\\])*\"?|'(\\\\.|[^'\\\\])*'?",
		comment: `//.*$`,
	},
	"Python": {
		keywords: []string{
			"and", "as", "assert", "async", "await", "break", "class",
			"continue", "def", "del", "elif", "else", "except", "finally",
			"for", "from", "global", "if", "import", "in", "is", "lambda",
			"None", "nonlocal", "not", "or", "pass", "raise", "return",
			"True", "False", "try", "while", "with", "yield",
		},
		number:  `\b\d[\d_]*(\.\d+)?\b`,
		strPat:  "\"(\\\\.|[^\"\\\\])*\"?|'(\\\\.|[^'\\\\])*'?",
		comment: `#.*$`,
	},
	"Bash": {
		keywords: []string{
			"case", "do", "done", "elif", "else", "esac", "fi", "for",
			"function", "if", "in", "local", "return", "then", "until",
			"while", "export", "source",
		},
		number:  `\b\d+\b`,
		strPat:  "\"(\\\\.|[^\"\\\\])*\"?|'[^']*'?",
		comment: `#.*$`,
	},
}

var compiled = map[string][]Rule{}

func compileSpec(s ruleSpec) []Rule {
	rules := []Rule{
		{Keyword, regexp.MustCompile(`\b(` + strings.Join(s.keywords, "|") + `)\b`)},
		{Number, regexp.MustCompile(s.number)},
		{String, regexp.MustCompile(s.strPat)},
		{Comment, regexp.MustCompile(s.comment)},
	}
	return rules
}

// Resolve returns the rule set for path, or nil when the filetype is unknown
// or has no compiled-in table. Identification goes through chroma's lexer
// registry so extension aliases (.pyw, .bash, .zsh and friends) resolve to
// the same table as the canonical extension.
func Resolve(path string) []Rule {
	if path == "" {
		return nil
	}
	lex := lexers.Match(path)
	if lex == nil {
		return nil
	}
	name := lex.Config().Name
	if rules, ok := compiled[name]; ok {
		return rules
	}
	spec, ok := specs[name]
	if !ok {
		compiled[name] = nil
		return nil
	}
	rules := compileSpec(spec)
	compiled[name] = rules
	return rules
}
