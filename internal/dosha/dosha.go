// Package dosha implements the Ayurvedic constitutional scoring model:
// prakriti calculation from quiz answers and vikriti blending of the stored
// constitution with the current emotional state.
//
// The model is deliberately small and deterministic:
//   - Prakriti is computed once per quiz submission and never mutated.
//   - Vikriti is recomputed on every chat turn as a fixed 70/30 blend of
//     trait and momentary mood; it is never persisted as raw input.
//
// All scores are kept as a three-way distribution summing to 1.0.
package dosha

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Dosha identifies one of the three constitutional energies.
type Dosha string

// The three doshas. Values are lowercase; use Title for display labels.
const (
	Vata  Dosha = "vata"
	Pitta Dosha = "pitta"
	Kapha Dosha = "kapha"
)

// All lists the doshas in canonical order.
var All = []Dosha{Vata, Pitta, Kapha}

var titleCaser = cases.Title(language.English)

// Title returns the display label for a dosha ("vata" -> "Vata").
func (d Dosha) Title() string { return titleCaser.String(string(d)) }

// Valid reports whether d is one of the three known doshas.
func (d Dosha) Valid() bool {
	switch d {
	case Vata, Pitta, Kapha:
		return true
	}
	return false
}

// Scores is a per-dosha score triple. For prakriti and vikriti the three
// values form a distribution summing to 1.0 (within floating-point tolerance).
type Scores struct {
	Vata  float64 `json:"vata"`
	Pitta float64 `json:"pitta"`
	Kapha float64 `json:"kapha"`
}

// Get returns the score for a single dosha.
func (s Scores) Get(d Dosha) float64 {
	switch d {
	case Vata:
		return s.Vata
	case Pitta:
		return s.Pitta
	case Kapha:
		return s.Kapha
	}
	return 0
}

// Sum returns the total of the three scores.
func (s Scores) Sum() float64 { return s.Vata + s.Pitta + s.Kapha }

// Normalized scales the triple so it sums to 1.0. A zero triple is returned
// unchanged rather than dividing by zero.
func (s Scores) Normalized() Scores {
	total := s.Sum()
	if total == 0 {
		return s
	}
	return Scores{
		Vata:  s.Vata / total,
		Pitta: s.Pitta / total,
		Kapha: s.Kapha / total,
	}
}

// Dominant returns the highest-scoring dosha. Ties resolve in canonical
// order (vata, pitta, kapha) so the result is deterministic.
func (s Scores) Dominant() Dosha {
	best := Vata
	for _, d := range All[1:] {
		if s.Get(d) > s.Get(best) {
			best = d
		}
	}
	return best
}

// ranked returns the doshas ordered by descending score, ties in canonical
// order.
func (s Scores) ranked() [3]Dosha {
	out := [3]Dosha{Vata, Pitta, Kapha}
	// three elements; a couple of comparisons beat importing sort
	if s.Get(out[1]) > s.Get(out[0]) {
		out[0], out[1] = out[1], out[0]
	}
	if s.Get(out[2]) > s.Get(out[1]) {
		out[1], out[2] = out[2], out[1]
		if s.Get(out[1]) > s.Get(out[0]) {
			out[0], out[1] = out[1], out[0]
		}
	}
	return out
}
