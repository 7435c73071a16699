package word

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns the canonical lookup key of w: lowercased, with every
// combining diacritical mark removed ("ÁRBOL" -> "arbol", "Pingüino" -> "pinguino").
//
// It is used before every dictionary lookup, embedding-cache lookup and
// exact-match comparison.
func Normalize(w string) string {
	// transform.Chain keeps state, a new one is built per call so Normalize
	// can be used from many goroutines.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(w))
	if err != nil {
		return strings.ToLower(w)
	}
	return out
}
