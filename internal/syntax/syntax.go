// Package syntax provides a small regexp-driven highlighting rule engine.
// Rules classify spans of a single line into categories; the view maps
// categories to theme colors. This is deliberately line-local: no lexer
// state crosses line boundaries, so a multi-line construct highlights only
// on lines where its pattern matches.
package syntax

import "regexp"

// Category classifies a rune for rendering purposes.
type Category int

const (
	None Category = iota
	Keyword
	Number
	String
	Comment
)

// Rule pairs a category with the pattern that produces it.
type Rule struct {
	Category Category
	Pattern  *regexp.Regexp
}

// Apply runs every rule against line and returns one category per rune.
// Rules are applied in order keyword, number, string, comment regardless of
// their order in the slice, so on overlap a comment wins over a string,
// a string over a number, and a number over a keyword.
func Apply(line []rune, rules []Rule) []Category {
	out := make([]Category, len(line))
	if len(rules) == 0 || len(line) == 0 {
		return out
	}
	s := string(line)
	// Byte offset to rune index, for mapping match spans back onto runes.
	byteToRune := make(map[int]int, len(line)+1)
	bi := 0
	for ri, r := range line {
		byteToRune[bi] = ri
		bi += len(string(r))
	}
	byteToRune[bi] = len(line)

	for _, cat := range []Category{Keyword, Number, String, Comment} {
		for _, rule := range rules {
			if rule.Category != cat {
				continue
			}
			for _, span := range rule.Pattern.FindAllStringIndex(s, -1) {
				start, okS := byteToRune[span[0]]
				end, okE := byteToRune[span[1]]
				if !okS || !okE {
					continue
				}
				for i := start; i < end; i++ {
					out[i] = cat
				}
			}
		}
	}
	return out
}
