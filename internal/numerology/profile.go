package numerology

import "time"

// Profile holds the core numbers of one person. SoulUrge and Personality
// are optional; zero means not supplied. A name without a-z letters (see
// HasLetters) leaves every name-derived number zero, and
// CalculateCompatibility then scores on LifePath alone.
type Profile struct {
	Name        string `json:"name,omitempty"`
	LifePath    int    `json:"life_path"`
	Destiny     int    `json:"destiny"`
	Active      int    `json:"active"`
	SoulUrge    int    `json:"soul_urge,omitempty"`
	Personality int    `json:"personality,omitempty"`
}

// NewProfile derives every core number from a full name and birth date.
func NewProfile(fullName string, birth time.Time, sys System) Profile {
	return Profile{
		Name:        fullName,
		LifePath:    CalculateLifePath(birth).Core,
		Destiny:     CalculateName(fullName, sys).Core,
		Active:      CalculateActive(fullName, sys).Core,
		SoulUrge:    CalculateSoulUrge(fullName, sys).Core,
		Personality: CalculatePersonality(fullName, sys).Core,
	}
}
