package store

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify is the stored question text as it appears in a detail url: lower
// cased, spaces turned into dashes, trailing "?" kept.
func Slugify(question string) string {
	return strings.ToLower(strings.Replace(question, " ", "-", -1))
}

// QuestionSlug is what Slugify yields for the question a slug points to.
// Slugs travel without the question mark.
func QuestionSlug(slug string) string {
	return strings.ToLower(slug) + "?"
}

// Tokenize splits text into lower cased words without diacritics, the unit a
// $text index matches on.
func Tokenize(s string) []string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
