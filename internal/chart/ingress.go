package chart

import (
	"fmt"

	"github.com/litescript/ls-zodiac/internal/astro"
)

// Ingress records a body crossing into a new sign between two snapshots.
type Ingress struct {
	Body string
	From astro.Sign
	To   astro.Sign
}

// Message renders the ingress as "{name} Entered {sign}".
func (i Ingress) Message() string {
	return fmt.Sprintf("%s Entered %s", i.Body, i.To)
}

// FindIngresses compares two snapshots of the same body set. Output follows
// the order of current; bodies missing from previous are skipped.
func FindIngresses(previous, current []Position) []Ingress {
	prevByName := make(map[string]Position, len(previous))
	for i := len(previous) - 1; i >= 0; i-- {
		// first occurrence wins, matching Find
		prevByName[previous[i].Name] = previous[i]
	}

	var out []Ingress
	for _, cur := range current {
		prev, ok := prevByName[cur.Name]
		if !ok {
			continue
		}
		if prev.Sign() != cur.Sign() {
			out = append(out, Ingress{Body: cur.Name, From: prev.Sign(), To: cur.Sign()})
		}
	}
	return out
}

// DetectIngresses returns the formatted ingress messages between snapshots.
func DetectIngresses(previous, current []Position) []string {
	ingresses := FindIngresses(previous, current)
	if len(ingresses) == 0 {
		return nil
	}
	msgs := make([]string, len(ingresses))
	for i, ing := range ingresses {
		msgs[i] = ing.Message()
	}
	return msgs
}
