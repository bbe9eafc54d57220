package ui

import "github.com/litescript/ls-zodiac/internal/astro"

var signGlyphs = map[astro.Sign]string{
	astro.Aries:       "♈",
	astro.Taurus:      "♉",
	astro.Gemini:      "♊",
	astro.Cancer:      "♋",
	astro.Leo:         "♌",
	astro.Virgo:       "♍",
	astro.Libra:       "♎",
	astro.Scorpio:     "♏",
	astro.Sagittarius: "♐",
	astro.Capricorn:   "♑",
	astro.Aquarius:    "♒",
	astro.Pisces:      "♓",
}

var bodyGlyphs = map[string]string{
	"Sun":        "☉",
	"Moon":       "☽",
	"Mercury":    "☿",
	"Venus":      "♀",
	"Mars":       "♂",
	"Jupiter":    "♃",
	"Saturn":     "♄",
	"Uranus":     "♅",
	"Neptune":    "♆",
	"Pluto":      "♇",
	"North Node": "☊",
	"Ascendant":  "AC",
	"Midheaven":  "MC",
}

// signGlyph returns the glyph for a sign, or "?" when out of range.
func signGlyph(s astro.Sign) string {
	if g, ok := signGlyphs[s]; ok {
		return g
	}
	return "?"
}

// bodyGlyph returns a body's glyph, falling back to its first letter.
func bodyGlyph(name string) string {
	if g, ok := bodyGlyphs[name]; ok {
		return g
	}
	if name == "" {
		return "?"
	}
	return string([]rune(name)[0])
}
