package astro

import (
	"math"
	"strings"
)

// Sign is one of the twelve 30° zodiac segments, ordered from Aries.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// SignWidth is the arc covered by each sign, in degrees.
const SignWidth = 30.0

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Signs lists every sign in zodiac order.
var Signs = []Sign{
	Aries, Taurus, Gemini, Cancer, Leo, Virgo,
	Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces,
}

// String returns the sign name.
func (s Sign) String() string {
	if s < Aries || s > Pisces {
		return "Unknown"
	}
	return signNames[s]
}

// StartDegree returns the absolute degree where the sign begins.
func (s Sign) StartDegree() float64 {
	return float64(s) * SignWidth
}

// ParseSign looks up a sign by name, ignoring case.
func ParseSign(name string) (Sign, bool) {
	for i, n := range signNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Sign(i), true
		}
	}
	return Aries, false
}

// Decompose splits an absolute degree into its sign and the degree within
// that sign. Any real input is accepted; 360 wraps to Aries 0°, and an exact
// boundary such as 30 belongs to the following sign.
func Decompose(absoluteDeg float64) (Sign, float64) {
	n := NormalizeDegrees(absoluteDeg)
	idx := int(math.Floor(n / SignWidth))
	if idx > int(Pisces) {
		idx = int(Pisces)
	}
	return Sign(idx), math.Mod(n, SignWidth)
}
