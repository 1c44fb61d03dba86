package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold normalizes a name for comparison: lower case, accents removed,
// punctuation dropped and whitespace collapsed. "Ficção científica" and
// "ficcao cientifica" fold to the same string.
func Fold(name string) string {
	s := strings.ToLower(name)
	s = removeAccents(s)
	s = strings.ReplaceAll(s, "&", " e ")
	s = strings.ReplaceAll(s, "-", " ")

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
