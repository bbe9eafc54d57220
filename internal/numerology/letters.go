package numerology

import "strings"

// System selects a letter-value table.
type System string

const (
	Pythagorean System = "pythagorean"
	Chaldean    System = "chaldean"
)

// ParseSystem parses a system name. Unknown values fall back to
// Pythagorean.
func ParseSystem(s string) System {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "chaldean":
		return Chaldean
	default:
		return Pythagorean
	}
}

// chaldeanValues is indexed by letter (a=0). No letter maps to 9.
var chaldeanValues = [26]int{
	1, 2, 3, 4, 5, 8, 3, 5, 1, // a-i
	1, 2, 3, 4, 5, 7, 8, 1, 2, // j-r
	3, 4, 6, 6, 6, 5, 1, 7, // s-z
}

// LetterValue returns the value of a lowercase a-z letter under the given
// system, or 0 for anything else.
func LetterValue(r rune, sys System) int {
	if r < 'a' || r > 'z' {
		return 0
	}
	idx := int(r - 'a')
	if sys == Chaldean {
		return chaldeanValues[idx]
	}
	return idx%9 + 1
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// HasLetters reports whether name contains any a-z letter that name
// numbers can be computed from.
func HasLetters(name string) bool {
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' {
			return true
		}
	}
	return false
}

// letterFilter selects which letters of a name contribute.
type letterFilter func(rune) bool

func allLetters(rune) bool   { return true }
func consonants(r rune) bool { return !isVowel(r) }

// sumLetters case-folds name and sums the a-z letters accepted by keep.
// Digits, punctuation, whitespace and non-Latin script contribute nothing.
func sumLetters(name string, sys System, keep letterFilter) int {
	sum := 0
	for _, r := range strings.ToLower(name) {
		if r < 'a' || r > 'z' || !keep(r) {
			continue
		}
		sum += LetterValue(r, sys)
	}
	return sum
}
