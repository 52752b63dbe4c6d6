// Package search implements free-text and date filtering over table rows.
package search

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/Veraticus/the-books-must-balance/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningDiacritics is the Combining Diacritical Marks block, U+0300..U+036F.
var combiningDiacritics = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

// datePattern matches calendar dates lexically; 2024-13-45 is a date token.
var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize stringifies v, lower-cases it and strips combining accents so that
// "ÁrBOL" and "arbol" compare equal. Nil values normalize to "".
func Normalize(v any) string {
	s := model.Stringify(v)
	if s == "" {
		return ""
	}

	// Lower first: some upper-case letters lower into a base letter plus a
	// combining mark, which the later steps remove.
	t := transform.Chain(
		cases.Lower(language.Und),
		norm.NFD,
		runes.Remove(runes.In(combiningDiacritics)),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// ExtractDateTokens returns every YYYY-MM-DD substring of query in order of
// appearance, duplicates included.
func ExtractDateTokens(query string) []string {
	matches := datePattern.FindAllString(query, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}

// StripDateTokens removes date tokens from query and collapses whitespace.
// Tokens are replaced by a space so the text on either side cannot join into
// a new date token.
func StripDateTokens(query string) string {
	stripped := datePattern.ReplaceAllString(query, " ")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(stripped, " "))
}

// JoinDates rebuilds a search term from its text part and a list of selected
// dates, the way the date picker writes them into the search box.
func JoinDates(term string, dates []string) string {
	parts := make([]string, 0, 2)
	if text := StripDateTokens(term); text != "" {
		parts = append(parts, text)
	}
	if len(dates) > 0 {
		parts = append(parts, strings.Join(dates, " "))
	}
	return strings.Join(parts, " ")
}
