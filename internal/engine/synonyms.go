package engine

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// synonymSet maps normalized spellings to one category value.
// Lookups are case-insensitive and do not depend on the input language.
type synonymSet[T comparable] struct {
	index    map[string]T
	fallback T
}

func newSynonymSet[T comparable](fallback T, groups map[T][]string) synonymSet[T] {
	s := synonymSet[T]{index: make(map[string]T), fallback: fallback}
	for value, words := range groups {
		for _, w := range words {
			s.index[normalizeToken(w)] = value
		}
	}
	return s
}

// lookup returns the value registered for text, or the fallback.
func (s synonymSet[T]) lookup(text string) T {
	if v, ok := s.index[normalizeToken(text)]; ok {
		return v
	}
	return s.fallback
}

// normalizeToken applies NFKC composition, Unicode case folding and
// whitespace trimming. cases.Caser is stateful, so one is built per call.
func normalizeToken(text string) string {
	folded := cases.Fold().String(norm.NFKC.String(text))
	return strings.TrimSpace(folded)
}

var (
	smokingSynonyms = newSynonymSet(SmokingUnknown, map[SmokingStatus][]string{
		SmokingNone:       {"none", "no", "never", "هیچ"},
		SmokingOccasional: {"occasional", "sometimes", "گاهی"},
		SmokingDaily:      {"daily", "روزانه"},
	})

	dietSynonyms = newSynonymSet(DietUnknown, map[DietQuality][]string{
		DietHealthy:   {"healthy", "سالم"},
		DietModerate:  {"moderate", "متوسط"},
		DietUnhealthy: {"unhealthy", "ناسالم"},
	})

	alcoholSynonyms = newSynonymSet(AlcoholUnknown, map[AlcoholConsumption][]string{
		AlcoholNone:  {"none", "no", "هیچ"},
		AlcoholLight: {"light", "low", "کم"},
		AlcoholHeavy: {"heavy", "high", "زیاد"},
	})

	healthSynonyms = newSynonymSet(HealthUnknown, map[HealthStatus][]string{
		HealthNormal: {"no", "false", "none", "خیر"},
		HealthIssues: {"yes", "true", "multiple", "بله"},
	})
)
