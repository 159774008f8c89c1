package normalize

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// minTermLength is the shortest variation worth sending to the store.
const minTermLength = 3

// Dictionary maps a canonical domain term to its known spelling variants.
// When a query matches a key or any of its variants, every variant for
// that entry joins the variation set.
type Dictionary map[string][]string

// DefaultDictionary covers product and content terms users commonly type
// without diacritics or under their English name. Entries are deduplicated
// when the variation set is built, so listing both folded and unfolded
// spellings is harmless.
func DefaultDictionary() Dictionary {
	return Dictionary{
		"peršun":  {"persun", "peršun", "parsley"},
		"višnja":  {"visnja", "višnja", "sour cherry"},
		"džem":    {"dzem", "džem", "jam", "marmelada"},
		"čaj":     {"caj", "čaj", "tea"},
		"šljiva":  {"sljiva", "šljiva", "plum"},
		"ljuto":   {"ljuto", "luto", "spicy"},
		"pečenje": {"pecenje", "pečenje", "roast"},
	}
}

// Variations derives the fuzzy variation set for query using the default
// dictionary.
func Variations(query string) []string {
	return DefaultDictionary().Variations(query)
}

// Variations returns the deduplicated variation set for query: the
// lowercased trimmed original, its folded form, matching dictionary
// variants, and suffix substrings for longer queries. The slice is sorted
// so equal input always yields the same set; callers must not read meaning
// into the ordering. An empty query yields an empty set.
func (d Dictionary) Variations(query string) []string {
	lowered := strings.ToLower(strings.TrimSpace(query))
	if lowered == "" {
		return nil
	}

	set := map[string]struct{}{lowered: {}}
	folded := Fold(lowered)
	set[folded] = struct{}{}

	for key, variants := range d {
		if matchesEntry(key, variants, lowered, folded) {
			set[key] = struct{}{}
			for _, v := range variants {
				if v != "" {
					set[v] = struct{}{}
				}
			}
		}
	}

	if utf8.RuneCountInString(lowered) > minTermLength {
		addSuffixes(set, lowered)
		addSuffixes(set, folded)
	}

	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func matchesEntry(key string, variants []string, lowered, folded string) bool {
	if key == lowered || key == folded {
		return true
	}
	for _, v := range variants {
		if v == lowered || v == folded {
			return true
		}
	}
	return false
}

// addSuffixes adds every suffix of rune length >= minTermLength, matching
// partially typed or misspelled query heads.
func addSuffixes(set map[string]struct{}, s string) {
	runes := []rune(s)
	for i := 1; i <= len(runes)-minTermLength; i++ {
		set[string(runes[i:])] = struct{}{}
	}
}
