package cvss

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
)

// v4Engine scores CVSS 4.0 vectors by interpolating between the published
// macrovector scores.
// https://www.first.org/cvss/v4.0/specification-document#CVSS-v4-0-Scoring
type v4Engine struct{}

func (v4Engine) Decode(vector string) (*Record4, error) {
	return decode4(vector)
}

// Temporal is the 4.0 score: threat metrics are already part of the
// macrovector.
func (e v4Engine) Temporal(r *Record4) (float64, error) {
	return e.Base(r)
}

// Environmental is the 4.0 score: environmental metrics are already part
// of the macrovector.
func (e v4Engine) Environmental(r *Record4) (float64, error) {
	return e.Base(r)
}

func (v4Engine) Base(r *Record4) (float64, error) {
	if r == nil {
		return 0, errors.Wrap(ErrWrongRecord, "CVSS 4.0 engine received no record")
	}
	if r.zeroImpact {
		return 0, nil
	}

	mv := r.Macro
	initial, ok := lookup(mv)
	if !ok {
		return 0, errors.Wrapf(ErrInvalidMacroVector, "macrovector %s", mv)
	}

	top := maxVector(r)
	lv := r.Levels
	dimensions := []struct {
		lower       []MacroVector
		distance    float64
		maxSeverity float64
	}{
		{
			lower:       []MacroVector{{mv.EQ1 + 1, mv.EQ2, mv.EQ3, mv.EQ4, mv.EQ5, mv.EQ6}},
			distance:    (lv.AV - top.AV) + (lv.PR - top.PR) + (lv.UI - top.UI),
			maxSeverity: maxSeverityEQ1[mv.EQ1],
		},
		{
			lower:       []MacroVector{{mv.EQ1, mv.EQ2 + 1, mv.EQ3, mv.EQ4, mv.EQ5, mv.EQ6}},
			distance:    (lv.AC - top.AC) + (lv.AT - top.AT),
			maxSeverity: maxSeverityEQ2[mv.EQ2],
		},
		{
			lower: lowerEQ36(mv),
			distance: (lv.VC - top.VC) + (lv.VI - top.VI) + (lv.VA - top.VA) +
				(lv.CR - top.CR) + (lv.IR - top.IR) + (lv.AR - top.AR),
			maxSeverity: maxSeverityEQ36[eq36{mv.EQ3, mv.EQ6}],
		},
		{
			lower:       []MacroVector{{mv.EQ1, mv.EQ2, mv.EQ3, mv.EQ4 + 1, mv.EQ5, mv.EQ6}},
			distance:    (lv.SC - top.SC) + (lv.SI - top.SI) + (lv.SA - top.SA),
			maxSeverity: maxSeverityEQ4[mv.EQ4],
		},
		{
			// exploit maturity has a single level per class
			lower:       []MacroVector{{mv.EQ1, mv.EQ2, mv.EQ3, mv.EQ4, mv.EQ5 + 1, mv.EQ6}},
			distance:    0,
			maxSeverity: maxSeverityEQ5[mv.EQ5],
		},
	}

	var sum float64
	var existing int
	for _, d := range dimensions {
		lower, ok := highestLower(d.lower)
		if !ok {
			continue
		}
		existing++
		available := initial - lower
		sum += available * (d.distance / d.maxSeverity)
	}

	var mean float64
	if existing > 0 {
		mean = sum / float64(existing)
	}
	return round1(clampScore(initial - mean)), nil
}

// lowerEQ36 returns the next lower joint EQ3/EQ6 classes. 00 has two
// neighbours and 21 has none.
func lowerEQ36(mv MacroVector) []MacroVector {
	eq3 := func(d uint8) MacroVector { return MacroVector{mv.EQ1, mv.EQ2, mv.EQ3 + d, mv.EQ4, mv.EQ5, mv.EQ6} }
	eq6 := func(d uint8) MacroVector { return MacroVector{mv.EQ1, mv.EQ2, mv.EQ3, mv.EQ4, mv.EQ5, mv.EQ6 + d} }

	switch (eq36{mv.EQ3, mv.EQ6}) {
	case eq36{0, 0}:
		return []MacroVector{eq6(1), eq3(1)}
	case eq36{0, 1}, eq36{1, 1}:
		return []MacroVector{eq3(1)}
	case eq36{1, 0}:
		return []MacroVector{eq6(1)}
	default:
		return nil
	}
}

// highestLower returns the highest published score among candidates.
func highestLower(candidates []MacroVector) (float64, bool) {
	best, found := math.Inf(-1), false
	for _, c := range candidates {
		if score, ok := lookup(c); ok {
			best, found = math.Max(best, score), true
		}
	}
	return best, found
}

// maxVector picks the first most-severe vector of r's class that r does not
// exceed on any metric.
func maxVector(r *Record4) Levels {
	for _, candidate := range maxLevels(r.Macro) {
		if r.Levels.dominatedBy(candidate) {
			return candidate
		}
	}
	log.Warn().Stringer("macrovector", r.Macro).Msg("no maximal vector dominates the scored vector, measuring from zero")
	return Levels{}
}
