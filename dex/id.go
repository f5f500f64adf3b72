package dex

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ToID converts a display name into the lowercase alphanumeric id Showdown uses as a key,
// e.g. "Farfetch’d" -> "farfetchd", "Flabébé" -> "flabebe".
func ToID(name string) string {
	// chains keep internal buffers, so one per call
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(stripAccents, name)
	if err != nil {
		plain = name
	}

	var b strings.Builder
	b.Grow(len(plain))
	for _, r := range strings.ToLower(plain) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	return b.String()
}
