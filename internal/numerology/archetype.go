package numerology

var archetypes = map[int]string{
	1:  "The Pioneering Leader",
	2:  "The Gentle Diplomat",
	3:  "The Radiant Creator",
	4:  "The Steadfast Builder",
	5:  "The Free Spirit",
	6:  "The Devoted Nurturer",
	7:  "The Mystic Seeker",
	8:  "The Sovereign Achiever",
	9:  "The Compassionate Sage",
	11: "The Illumined Messenger",
	22: "The Master Builder",
	33: "The Master Teacher",
}

// Archetype returns the label for a core number, or "The Unwritten" for
// anything outside 1-9 and the master numbers.
func Archetype(core int) string {
	if a, ok := archetypes[core]; ok {
		return a
	}
	return "The Unwritten"
}
