package numerology

import "strings"

// CalculateName returns the destiny (expression) number of a full name.
func CalculateName(name string, sys System) Result {
	return newResult(sumLetters(name, sys, allLetters), name)
}

// CalculateSoulUrge reduces the vowels of a name.
func CalculateSoulUrge(name string, sys System) Result {
	return newResult(sumLetters(name, sys, isVowel), name)
}

// CalculatePersonality reduces the consonants of a name.
func CalculatePersonality(name string, sys System) Result {
	return newResult(sumLetters(name, sys, consonants), name)
}

// CalculateActive reduces the first given name only.
func CalculateActive(name string, sys System) Result {
	first := ""
	if fields := strings.Fields(name); len(fields) > 0 {
		first = fields[0]
	}
	return newResult(sumLetters(first, sys, allLetters), first)
}
