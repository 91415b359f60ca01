// Package normalize folds Vietnamese text for diacritic-insensitive
// substring search. Both the query and the candidate field must pass
// through Fold before comparison, otherwise matches are missed.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// vietnameseFold maps every precomposed Vietnamese vowel/consonant
// variant to its base Latin letter. Input is lower-cased first, so only
// lower-case variants appear here. đ is the one letter NFD decomposition
// does not handle, the rest are listed explicitly to avoid depending on
// decomposition order.
var vietnameseFold = map[rune]rune{
	'à': 'a', 'á': 'a', 'ạ': 'a', 'ả': 'a', 'ã': 'a',
	'â': 'a', 'ầ': 'a', 'ấ': 'a', 'ậ': 'a', 'ẩ': 'a', 'ẫ': 'a',
	'ă': 'a', 'ằ': 'a', 'ắ': 'a', 'ặ': 'a', 'ẳ': 'a', 'ẵ': 'a',
	'è': 'e', 'é': 'e', 'ẹ': 'e', 'ẻ': 'e', 'ẽ': 'e',
	'ê': 'e', 'ề': 'e', 'ế': 'e', 'ệ': 'e', 'ể': 'e', 'ễ': 'e',
	'ì': 'i', 'í': 'i', 'ị': 'i', 'ỉ': 'i', 'ĩ': 'i',
	'ò': 'o', 'ó': 'o', 'ọ': 'o', 'ỏ': 'o', 'õ': 'o',
	'ô': 'o', 'ồ': 'o', 'ố': 'o', 'ộ': 'o', 'ổ': 'o', 'ỗ': 'o',
	'ơ': 'o', 'ờ': 'o', 'ớ': 'o', 'ợ': 'o', 'ở': 'o', 'ỡ': 'o',
	'ù': 'u', 'ú': 'u', 'ụ': 'u', 'ủ': 'u', 'ũ': 'u',
	'ư': 'u', 'ừ': 'u', 'ứ': 'u', 'ự': 'u', 'ử': 'u', 'ữ': 'u',
	'ỳ': 'y', 'ý': 'y', 'ỵ': 'y', 'ỷ': 'y', 'ỹ': 'y',
	'đ': 'd',
}

// stripMarks removes any combining diacritical marks left after the
// explicit fold (e.g. from decomposed input).
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lower-cases s and strips Vietnamese diacritics, returning an
// ASCII-lowercase approximation suitable for containment checks.
func Fold(s string) string {
	lowered := strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if base, ok := vietnameseFold[r]; ok {
			b.WriteRune(base)
			continue
		}
		b.WriteRune(r)
	}

	out, _, err := transform.String(stripMarks, b.String())
	if err != nil {
		// The transform chain cannot fail on valid UTF-8; fall back to
		// the folded string rather than losing the query.
		return b.String()
	}
	return out
}

// Contains reports whether the folded needle occurs in the folded
// haystack.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
