package numerology

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Category is the kind of relationship being scored.
type Category string

const (
	Romantic Category = "romantic"
	Platonic Category = "platonic"
	Business Category = "business"
	Family   Category = "family"
)

// ParseCategory parses a relationship category. Unknown values fall back
// to Platonic.
func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case Romantic:
		return Romantic
	case Business:
		return Business
	case Family:
		return Family
	default:
		return Platonic
	}
}

// Tag is the narrative reading of an overall score.
type Tag string

const (
	TagResonant Tag = "resonant"
	TagNeutral  Tag = "neutral"
	TagFriction Tag = "friction"
)

// Match scores one facet of two profiles against each other.
type Match struct {
	Facet string `json:"facet"`
	A     int    `json:"a"`
	B     int    `json:"b"`
	Score int    `json:"score"`
}

// Compatibility is the scored comparison of two profiles.
type Compatibility struct {
	Category     Category `json:"category"`
	OverallScore float64  `json:"overall_score"` // 0-100, one decimal
	Tag          Tag      `json:"tag"`
	Matches      []Match  `json:"matches"`
}

// Per-pair match scores.
const (
	scoreIdentical = 100
	scoreSameRoot  = 90
	scoreFriendly  = 80
	scoreNeutral   = 60
	scoreFriction  = 35
)

type pair struct{ lo, hi int }

func newPair(a, b int) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

var friendlyPairs = map[pair]bool{
	{1, 3}: true, {1, 5}: true, {1, 9}: true,
	{2, 4}: true, {2, 6}: true, {2, 8}: true,
	{3, 5}: true, {3, 6}: true, {3, 9}: true,
	{4, 6}: true, {4, 8}: true,
	{5, 7}: true,
	{6, 9}: true,
	{7, 9}: true,
}

var frictionPairs = map[pair]bool{
	{1, 7}: true, {1, 8}: true,
	{2, 5}: true,
	{3, 4}: true,
	{4, 5}: true,
	{5, 6}: true,
	{6, 7}: true,
	{8, 9}: true,
}

// root collapses a master number onto its single-digit base.
func root(n int) int {
	if IsMaster(n) {
		return DigitSum(n)
	}
	return n
}

// MatchScore rates how well two core numbers sit together, 0-100.
func MatchScore(a, b int) int {
	switch {
	case a == b:
		return scoreIdentical
	case root(a) == root(b):
		return scoreSameRoot
	}
	p := newPair(root(a), root(b))
	switch {
	case friendlyPairs[p]:
		return scoreFriendly
	case frictionPairs[p]:
		return scoreFriction
	default:
		return scoreNeutral
	}
}

// weighting holds per-facet weights and tag thresholds for a category.
type weighting struct {
	lifePath, destiny, active, soulUrge, personality int64
	// friction-pair scores are multiplied by this in the category
	frictionFactor decimal.Decimal
	resonantAt     float64
	frictionBelow  float64
}

var weightings = map[Category]weighting{
	Romantic: {30, 20, 10, 25, 15, decimal.RequireFromString("0.7"), 80, 60},
	Platonic: {35, 25, 15, 15, 10, decimal.NewFromInt(1), 75, 55},
	Business: {30, 35, 20, 5, 10, decimal.NewFromInt(1), 75, 55},
	Family:   {40, 20, 10, 20, 10, decimal.RequireFromString("0.85"), 75, 50},
}

// CalculateCompatibility scores two profiles for a relationship category.
// The overall score is the weighted mean of per-facet match scores over the
// facets both profiles supply.
func CalculateCompatibility(a, b Profile, category Category) Compatibility {
	w, ok := weightings[category]
	if !ok {
		category = Platonic
		w = weightings[Platonic]
	}

	facets := []struct {
		name   string
		a, b   int
		weight int64
	}{
		{"life_path", a.LifePath, b.LifePath, w.lifePath},
		{"destiny", a.Destiny, b.Destiny, w.destiny},
		{"active", a.Active, b.Active, w.active},
		{"soul_urge", a.SoulUrge, b.SoulUrge, w.soulUrge},
		{"personality", a.Personality, b.Personality, w.personality},
	}

	total := decimal.Zero
	weights := decimal.Zero
	var matches []Match
	for _, f := range facets {
		if f.a == 0 || f.b == 0 {
			continue
		}
		s := MatchScore(f.a, f.b)
		matches = append(matches, Match{Facet: f.name, A: f.a, B: f.b, Score: s})

		score := decimal.NewFromInt(int64(s))
		if s == scoreFriction {
			score = score.Mul(w.frictionFactor)
		}
		weight := decimal.NewFromInt(f.weight)
		total = total.Add(score.Mul(weight))
		weights = weights.Add(weight)
	}

	result := Compatibility{Category: category, Matches: matches, Tag: TagNeutral}
	if weights.IsZero() {
		return result
	}

	result.OverallScore = total.Div(weights).Round(1).InexactFloat64()
	switch {
	case result.OverallScore >= w.resonantAt:
		result.Tag = TagResonant
	case result.OverallScore < w.frictionBelow:
		result.Tag = TagFriction
	}
	return result
}
