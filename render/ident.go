package render

import (
	"fmt"
	"regexp"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	wardWord = regexp.MustCompile(`(?i)\bward\b`)
	nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// deaccent strips combining marks after NFD decomposition: Kōhoku -> Kohoku.
// Chained transformers carry state, so each call builds its own.
func deaccent() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// CleanID derives an XML-safe identifier from a display name: diacritics
// dropped, the standalone word "ward" removed, everything outside ASCII
// letters and digits stripped. Names that strip to nothing get a positional
// fallback so the result is never empty. Distinct names can still clean to
// the same string; the document assembler disambiguates those.
func CleanID(name string, idx int) string {
	if s, _, err := transform.String(deaccent(), name); err == nil {
		name = s
	}
	s := wardWord.ReplaceAllString(name, "")
	s = nonAlnum.ReplaceAllString(s, "")
	if s == "" {
		return fmt.Sprintf("ward_%d", idx)
	}
	return s
}

// idSet hands out document-unique identifiers by appending a numeric suffix
// to repeat occurrences.
type idSet map[string]int

func (s idSet) claim(id string) string {
	n := s[id]
	s[id] = n + 1
	if n == 0 {
		return id
	}
	return fmt.Sprintf("%s%d", id, n+1)
}
