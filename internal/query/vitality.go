package query

import (
	"strings"

	"github.com/heartmarshall/langnav/internal/domain"
)

// Vitality scores run from 0 (no speakers) to 9 (institutional use).
var (
	isoVitality = map[string]float64{
		"living":     9,
		"historical": 1,
		"ancient":    0,
		"extinct":    0,
	}
	eth2013Vitality = map[string]float64{
		"international":       9,
		"national":            9,
		"provincial":          8,
		"wider communication": 7,
		"educational":         6,
		"developing":          5,
		"vigorous":            4,
		"threatened":          3,
		"shifting":            2,
		"moribund":            1,
		"nearly extinct":      1,
		"dormant":             0,
		"extinct":             0,
	}
	eth2025Vitality = map[string]float64{
		"1 institutional": 9,
		"institutional":   9,
		"2 stable":        6,
		"stable":          6,
		"3 endangered":    3,
		"endangered":      3,
		"4 extinct":       0,
		"extinct":         0,
	}
)

func lookupVitality(table map[string]float64, s string) (float64, bool) {
	score, ok := table[strings.ToLower(strings.TrimSpace(s))]
	return score, ok
}

// ISOVitality scores an ISO 639-3 language type. Constructed and special
// codes have no score.
func ISOVitality(s string) (float64, bool) { return lookupVitality(isoVitality, s) }

// Eth2013Vitality scores an Ethnologue 2013 EGIDS label.
func Eth2013Vitality(s string) (float64, bool) { return lookupVitality(eth2013Vitality, s) }

// Eth2025Vitality scores an Ethnologue 2025 status.
func Eth2025Vitality(s string) (float64, bool) { return lookupVitality(eth2025Vitality, s) }

// VitalityMetascore combines the vitality sources of lang: the mean of both
// Ethnologue scores, else whichever one is known, else the ISO score.
func VitalityMetascore(lang *domain.Language) (float64, bool) {
	if lang == nil {
		return 0, false
	}
	e13, ok13 := Eth2013Vitality(lang.VitalityEth2013)
	e25, ok25 := Eth2025Vitality(lang.VitalityEth2025)
	switch {
	case ok13 && ok25:
		return (e13 + e25) / 2, true
	case ok13:
		return e13, true
	case ok25:
		return e25, true
	}
	return ISOVitality(lang.VitalityISO)
}
