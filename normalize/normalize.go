// Package normalize folds locale-specific diacritics and derives the fuzzy
// variation set used to broaden substring matching against the content
// store.
package normalize

import "strings"

// Digraphs fold to their first letter before single characters are folded;
// folding rune by rune would leave the second letter of a digraph behind.
var digraphFolds = map[string]string{
	"dž": "d",
	"lj": "l",
	"nj": "n",
}

var charFolds = map[rune]rune{
	'č': 'c', 'ć': 'c', 'đ': 'd', 'š': 's', 'ž': 'z',
	'á': 'a', 'à': 'a', 'â': 'a', 'ä': 'a', 'ã': 'a', 'å': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i',
	'ó': 'o', 'ò': 'o', 'ô': 'o', 'ö': 'o', 'õ': 'o',
	'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u',
	'ý': 'y', 'ñ': 'n', 'ç': 'c',
}

// Fold lowercases s, trims surrounding whitespace, and maps accented and
// special characters to their unaccented base form. Fold is idempotent.
func Fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for from, to := range digraphFolds {
		s = strings.ReplaceAll(s, from, to)
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if folded, ok := charFolds[r]; ok {
			b.WriteRune(folded)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
