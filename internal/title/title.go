// Package title нормализует названия фильмов для хранения и сравнения.
package title

import (
	"strings"
	"unicode"
)

// Normalize strips every rune that is not a letter, digit or whitespace,
// collapses whitespace runs and title-cases each remaining word.
// Idempotent; validation of the result length is up to the caller.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		runes := []rune(w)
		words[i] = string(unicode.ToUpper(runes[0])) + strings.ToLower(string(runes[1:]))
	}
	return strings.Join(words, " ")
}
