package cvss

import "strings"

// macroVectorScores maps every reachable 4.0 macrovector to the score of
// its most severe vector, as published by FIRST.
// https://github.com/FIRSTdotorg/cvss-v4-calculator/blob/main/cvss_lookup.js
var macroVectorScores = map[MacroVector]float64{
	{0, 0, 0, 0, 0, 0}: 10.0,
	{0, 0, 0, 0, 0, 1}: 9.9,
	{0, 0, 0, 0, 1, 0}: 9.8,
	{0, 0, 0, 0, 1, 1}: 9.5,
	{0, 0, 0, 0, 2, 0}: 9.5,
	{0, 0, 0, 0, 2, 1}: 9.2,
	{0, 0, 0, 1, 0, 0}: 10.0,
	{0, 0, 0, 1, 0, 1}: 9.6,
	{0, 0, 0, 1, 1, 0}: 9.3,
	{0, 0, 0, 1, 1, 1}: 8.7,
	{0, 0, 0, 1, 2, 0}: 9.1,
	{0, 0, 0, 1, 2, 1}: 8.1,
	{0, 0, 0, 2, 0, 0}: 9.3,
	{0, 0, 0, 2, 0, 1}: 9.0,
	{0, 0, 0, 2, 1, 0}: 8.9,
	{0, 0, 0, 2, 1, 1}: 8.0,
	{0, 0, 0, 2, 2, 0}: 8.1,
	{0, 0, 0, 2, 2, 1}: 6.8,
	{0, 0, 1, 0, 0, 0}: 9.8,
	{0, 0, 1, 0, 0, 1}: 9.5,
	{0, 0, 1, 0, 1, 0}: 9.5,
	{0, 0, 1, 0, 1, 1}: 9.2,
	{0, 0, 1, 0, 2, 0}: 9.0,
	{0, 0, 1, 0, 2, 1}: 8.4,
	{0, 0, 1, 1, 0, 0}: 9.3,
	{0, 0, 1, 1, 0, 1}: 9.2,
	{0, 0, 1, 1, 1, 0}: 8.9,
	{0, 0, 1, 1, 1, 1}: 8.1,
	{0, 0, 1, 1, 2, 0}: 8.1,
	{0, 0, 1, 1, 2, 1}: 6.5,
	{0, 0, 1, 2, 0, 0}: 8.8,
	{0, 0, 1, 2, 0, 1}: 8.0,
	{0, 0, 1, 2, 1, 0}: 7.8,
	{0, 0, 1, 2, 1, 1}: 7.0,
	{0, 0, 1, 2, 2, 0}: 6.9,
	{0, 0, 1, 2, 2, 1}: 4.8,
	{0, 0, 2, 0, 0, 1}: 9.2,
	{0, 0, 2, 0, 1, 1}: 8.2,
	{0, 0, 2, 0, 2, 1}: 7.2,
	{0, 0, 2, 1, 0, 1}: 7.9,
	{0, 0, 2, 1, 1, 1}: 6.9,
	{0, 0, 2, 1, 2, 1}: 5.0,
	{0, 0, 2, 2, 0, 1}: 6.9,
	{0, 0, 2, 2, 1, 1}: 5.5,
	{0, 0, 2, 2, 2, 1}: 2.7,
	{0, 1, 0, 0, 0, 0}: 9.9,
	{0, 1, 0, 0, 0, 1}: 9.7,
	{0, 1, 0, 0, 1, 0}: 9.5,
	{0, 1, 0, 0, 1, 1}: 9.2,
	{0, 1, 0, 0, 2, 0}: 9.2,
	{0, 1, 0, 0, 2, 1}: 8.5,
	{0, 1, 0, 1, 0, 0}: 9.5,
	{0, 1, 0, 1, 0, 1}: 9.1,
	{0, 1, 0, 1, 1, 0}: 9.0,
	{0, 1, 0, 1, 1, 1}: 8.3,
	{0, 1, 0, 1, 2, 0}: 8.4,
	{0, 1, 0, 1, 2, 1}: 7.1,
	{0, 1, 0, 2, 0, 0}: 9.2,
	{0, 1, 0, 2, 0, 1}: 8.1,
	{0, 1, 0, 2, 1, 0}: 8.2,
	{0, 1, 0, 2, 1, 1}: 7.1,
	{0, 1, 0, 2, 2, 0}: 7.2,
	{0, 1, 0, 2, 2, 1}: 5.3,
	{0, 1, 1, 0, 0, 0}: 9.5,
	{0, 1, 1, 0, 0, 1}: 9.3,
	{0, 1, 1, 0, 1, 0}: 9.2,
	{0, 1, 1, 0, 1, 1}: 8.5,
	{0, 1, 1, 0, 2, 0}: 8.5,
	{0, 1, 1, 0, 2, 1}: 7.3,
	{0, 1, 1, 1, 0, 0}: 9.2,
	{0, 1, 1, 1, 0, 1}: 8.2,
	{0, 1, 1, 1, 1, 0}: 8.0,
	{0, 1, 1, 1, 1, 1}: 7.2,
	{0, 1, 1, 1, 2, 0}: 7.0,
	{0, 1, 1, 1, 2, 1}: 5.9,
	{0, 1, 1, 2, 0, 0}: 8.4,
	{0, 1, 1, 2, 0, 1}: 7.0,
	{0, 1, 1, 2, 1, 0}: 7.1,
	{0, 1, 1, 2, 1, 1}: 5.2,
	{0, 1, 1, 2, 2, 0}: 5.0,
	{0, 1, 1, 2, 2, 1}: 3.0,
	{0, 1, 2, 0, 0, 1}: 8.6,
	{0, 1, 2, 0, 1, 1}: 7.5,
	{0, 1, 2, 0, 2, 1}: 5.2,
	{0, 1, 2, 1, 0, 1}: 7.1,
	{0, 1, 2, 1, 1, 1}: 5.2,
	{0, 1, 2, 1, 2, 1}: 2.9,
	{0, 1, 2, 2, 0, 1}: 6.3,
	{0, 1, 2, 2, 1, 1}: 2.9,
	{0, 1, 2, 2, 2, 1}: 1.7,
	{1, 0, 0, 0, 0, 0}: 9.8,
	{1, 0, 0, 0, 0, 1}: 9.5,
	{1, 0, 0, 0, 1, 0}: 9.4,
	{1, 0, 0, 0, 1, 1}: 8.7,
	{1, 0, 0, 0, 2, 0}: 9.1,
	{1, 0, 0, 0, 2, 1}: 8.1,
	{1, 0, 0, 1, 0, 0}: 9.4,
	{1, 0, 0, 1, 0, 1}: 8.9,
	{1, 0, 0, 1, 1, 0}: 8.6,
	{1, 0, 0, 1, 1, 1}: 7.4,
	{1, 0, 0, 1, 2, 0}: 7.7,
	{1, 0, 0, 1, 2, 1}: 6.4,
	{1, 0, 0, 2, 0, 0}: 8.7,
	{1, 0, 0, 2, 0, 1}: 7.5,
	{1, 0, 0, 2, 1, 0}: 7.4,
	{1, 0, 0, 2, 1, 1}: 6.3,
	{1, 0, 0, 2, 2, 0}: 6.3,
	{1, 0, 0, 2, 2, 1}: 4.9,
	{1, 0, 1, 0, 0, 0}: 9.4,
	{1, 0, 1, 0, 0, 1}: 8.9,
	{1, 0, 1, 0, 1, 0}: 8.8,
	{1, 0, 1, 0, 1, 1}: 7.7,
	{1, 0, 1, 0, 2, 0}: 7.6,
	{1, 0, 1, 0, 2, 1}: 6.7,
	{1, 0, 1, 1, 0, 0}: 8.6,
	{1, 0, 1, 1, 0, 1}: 7.6,
	{1, 0, 1, 1, 1, 0}: 7.4,
	{1, 0, 1, 1, 1, 1}: 5.8,
	{1, 0, 1, 1, 2, 0}: 5.9,
	{1, 0, 1, 1, 2, 1}: 5.0,
	{1, 0, 1, 2, 0, 0}: 7.2,
	{1, 0, 1, 2, 0, 1}: 5.7,
	{1, 0, 1, 2, 1, 0}: 5.7,
	{1, 0, 1, 2, 1, 1}: 5.2,
	{1, 0, 1, 2, 2, 0}: 5.2,
	{1, 0, 1, 2, 2, 1}: 2.5,
	{1, 0, 2, 0, 0, 1}: 8.3,
	{1, 0, 2, 0, 1, 1}: 7.0,
	{1, 0, 2, 0, 2, 1}: 5.4,
	{1, 0, 2, 1, 0, 1}: 6.5,
	{1, 0, 2, 1, 1, 1}: 5.8,
	{1, 0, 2, 1, 2, 1}: 2.6,
	{1, 0, 2, 2, 0, 1}: 5.3,
	{1, 0, 2, 2, 1, 1}: 2.1,
	{1, 0, 2, 2, 2, 1}: 1.3,
	{1, 1, 0, 0, 0, 0}: 9.5,
	{1, 1, 0, 0, 0, 1}: 9.0,
	{1, 1, 0, 0, 1, 0}: 8.8,
	{1, 1, 0, 0, 1, 1}: 7.6,
	{1, 1, 0, 0, 2, 0}: 7.6,
	{1, 1, 0, 0, 2, 1}: 7.0,
	{1, 1, 0, 1, 0, 0}: 9.0,
	{1, 1, 0, 1, 0, 1}: 7.7,
	{1, 1, 0, 1, 1, 0}: 7.5,
	{1, 1, 0, 1, 1, 1}: 6.2,
	{1, 1, 0, 1, 2, 0}: 6.1,
	{1, 1, 0, 1, 2, 1}: 5.3,
	{1, 1, 0, 2, 0, 0}: 7.7,
	{1, 1, 0, 2, 0, 1}: 6.6,
	{1, 1, 0, 2, 1, 0}: 6.8,
	{1, 1, 0, 2, 1, 1}: 5.9,
	{1, 1, 0, 2, 2, 0}: 5.2,
	{1, 1, 0, 2, 2, 1}: 3.0,
	{1, 1, 1, 0, 0, 0}: 8.9,
	{1, 1, 1, 0, 0, 1}: 7.8,
	{1, 1, 1, 0, 1, 0}: 7.6,
	{1, 1, 1, 0, 1, 1}: 6.7,
	{1, 1, 1, 0, 2, 0}: 6.2,
	{1, 1, 1, 0, 2, 1}: 5.8,
	{1, 1, 1, 1, 0, 0}: 7.4,
	{1, 1, 1, 1, 0, 1}: 5.9,
	{1, 1, 1, 1, 1, 0}: 5.7,
	{1, 1, 1, 1, 1, 1}: 5.7,
	{1, 1, 1, 1, 2, 0}: 4.7,
	{1, 1, 1, 1, 2, 1}: 2.3,
	{1, 1, 1, 2, 0, 0}: 6.1,
	{1, 1, 1, 2, 0, 1}: 5.2,
	{1, 1, 1, 2, 1, 0}: 5.7,
	{1, 1, 1, 2, 1, 1}: 2.9,
	{1, 1, 1, 2, 2, 0}: 2.4,
	{1, 1, 1, 2, 2, 1}: 1.6,
	{1, 1, 2, 0, 0, 1}: 7.1,
	{1, 1, 2, 0, 1, 1}: 5.9,
	{1, 1, 2, 0, 2, 1}: 3.0,
	{1, 1, 2, 1, 0, 1}: 5.8,
	{1, 1, 2, 1, 1, 1}: 2.6,
	{1, 1, 2, 1, 2, 1}: 1.5,
	{1, 1, 2, 2, 0, 1}: 2.3,
	{1, 1, 2, 2, 1, 1}: 1.3,
	{1, 1, 2, 2, 2, 1}: 0.6,
	{2, 0, 0, 0, 0, 0}: 9.3,
	{2, 0, 0, 0, 0, 1}: 8.7,
	{2, 0, 0, 0, 1, 0}: 8.6,
	{2, 0, 0, 0, 1, 1}: 7.2,
	{2, 0, 0, 0, 2, 0}: 7.5,
	{2, 0, 0, 0, 2, 1}: 5.8,
	{2, 0, 0, 1, 0, 0}: 8.6,
	{2, 0, 0, 1, 0, 1}: 7.4,
	{2, 0, 0, 1, 1, 0}: 7.4,
	{2, 0, 0, 1, 1, 1}: 6.1,
	{2, 0, 0, 1, 2, 0}: 5.6,
	{2, 0, 0, 1, 2, 1}: 3.4,
	{2, 0, 0, 2, 0, 0}: 7.0,
	{2, 0, 0, 2, 0, 1}: 5.4,
	{2, 0, 0, 2, 1, 0}: 5.2,
	{2, 0, 0, 2, 1, 1}: 4.0,
	{2, 0, 0, 2, 2, 0}: 4.0,
	{2, 0, 0, 2, 2, 1}: 2.2,
	{2, 0, 1, 0, 0, 0}: 8.5,
	{2, 0, 1, 0, 0, 1}: 7.5,
	{2, 0, 1, 0, 1, 0}: 7.4,
	{2, 0, 1, 0, 1, 1}: 5.5,
	{2, 0, 1, 0, 2, 0}: 6.2,
	{2, 0, 1, 0, 2, 1}: 5.1,
	{2, 0, 1, 1, 0, 0}: 7.2,
	{2, 0, 1, 1, 0, 1}: 5.7,
	{2, 0, 1, 1, 1, 0}: 5.5,
	{2, 0, 1, 1, 1, 1}: 4.1,
	{2, 0, 1, 1, 2, 0}: 4.6,
	{2, 0, 1, 1, 2, 1}: 1.9,
	{2, 0, 1, 2, 0, 0}: 5.3,
	{2, 0, 1, 2, 0, 1}: 3.6,
	{2, 0, 1, 2, 1, 0}: 3.4,
	{2, 0, 1, 2, 1, 1}: 1.9,
	{2, 0, 1, 2, 2, 0}: 1.9,
	{2, 0, 1, 2, 2, 1}: 0.8,
	{2, 0, 2, 0, 0, 1}: 6.4,
	{2, 0, 2, 0, 1, 1}: 5.1,
	{2, 0, 2, 0, 2, 1}: 2.0,
	{2, 0, 2, 1, 0, 1}: 4.7,
	{2, 0, 2, 1, 1, 1}: 2.1,
	{2, 0, 2, 1, 2, 1}: 1.1,
	{2, 0, 2, 2, 0, 1}: 2.4,
	{2, 0, 2, 2, 1, 1}: 0.9,
	{2, 0, 2, 2, 2, 1}: 0.4,
	{2, 1, 0, 0, 0, 0}: 8.8,
	{2, 1, 0, 0, 0, 1}: 7.5,
	{2, 1, 0, 0, 1, 0}: 7.3,
	{2, 1, 0, 0, 1, 1}: 5.3,
	{2, 1, 0, 0, 2, 0}: 6.0,
	{2, 1, 0, 0, 2, 1}: 5.0,
	{2, 1, 0, 1, 0, 0}: 7.3,
	{2, 1, 0, 1, 0, 1}: 5.5,
	{2, 1, 0, 1, 1, 0}: 5.9,
	{2, 1, 0, 1, 1, 1}: 4.0,
	{2, 1, 0, 1, 2, 0}: 4.1,
	{2, 1, 0, 1, 2, 1}: 2.0,
	{2, 1, 0, 2, 0, 0}: 5.4,
	{2, 1, 0, 2, 0, 1}: 4.3,
	{2, 1, 0, 2, 1, 0}: 4.5,
	{2, 1, 0, 2, 1, 1}: 2.2,
	{2, 1, 0, 2, 2, 0}: 2.0,
	{2, 1, 0, 2, 2, 1}: 1.1,
	{2, 1, 1, 0, 0, 0}: 7.5,
	{2, 1, 1, 0, 0, 1}: 5.5,
	{2, 1, 1, 0, 1, 0}: 5.8,
	{2, 1, 1, 0, 1, 1}: 4.5,
	{2, 1, 1, 0, 2, 0}: 4.0,
	{2, 1, 1, 0, 2, 1}: 2.1,
	{2, 1, 1, 1, 0, 0}: 6.1,
	{2, 1, 1, 1, 0, 1}: 5.1,
	{2, 1, 1, 1, 1, 0}: 4.8,
	{2, 1, 1, 1, 1, 1}: 1.8,
	{2, 1, 1, 1, 2, 0}: 2.0,
	{2, 1, 1, 1, 2, 1}: 0.9,
	{2, 1, 1, 2, 0, 0}: 4.6,
	{2, 1, 1, 2, 0, 1}: 1.8,
	{2, 1, 1, 2, 1, 0}: 1.7,
	{2, 1, 1, 2, 1, 1}: 0.7,
	{2, 1, 1, 2, 2, 0}: 0.8,
	{2, 1, 1, 2, 2, 1}: 0.2,
	{2, 1, 2, 0, 0, 1}: 5.3,
	{2, 1, 2, 0, 1, 1}: 2.4,
	{2, 1, 2, 0, 2, 1}: 1.4,
	{2, 1, 2, 1, 0, 1}: 2.4,
	{2, 1, 2, 1, 1, 1}: 1.2,
	{2, 1, 2, 1, 2, 1}: 0.5,
	{2, 1, 2, 2, 0, 1}: 1.0,
	{2, 1, 2, 2, 1, 1}: 0.3,
	{2, 1, 2, 2, 2, 1}: 0.1,
}

// eq36 keys the joint EQ3/EQ6 class, which is scored as one dimension.
type eq36 struct{ eq3, eq6 uint8 }

// Most severe vectors of each equivalence class. A class may have several
// incomparable maxima; the first one dominated by the scored vector wins.
var (
	maxEQ1 = map[uint8][]string{
		0: {"AV:N/PR:N/UI:N"},
		1: {"AV:A/PR:N/UI:N", "AV:N/PR:L/UI:N", "AV:N/PR:N/UI:P"},
		2: {"AV:P/PR:N/UI:N", "AV:A/PR:L/UI:P"},
	}
	maxEQ2 = map[uint8][]string{
		0: {"AC:L/AT:N"},
		1: {"AC:H/AT:N", "AC:L/AT:P"},
	}
	maxEQ36 = map[eq36][]string{
		{0, 0}: {"VC:H/VI:H/VA:H/CR:H/IR:H/AR:H"},
		{0, 1}: {"VC:H/VI:H/VA:L/CR:M/IR:M/AR:H", "VC:H/VI:H/VA:H/CR:M/IR:M/AR:M"},
		{1, 0}: {"VC:L/VI:H/VA:H/CR:H/IR:H/AR:H", "VC:H/VI:L/VA:H/CR:H/IR:H/AR:H"},
		{1, 1}: {
			"VC:L/VI:H/VA:L/CR:H/IR:M/AR:H",
			"VC:L/VI:H/VA:H/CR:H/IR:M/AR:M",
			"VC:H/VI:L/VA:H/CR:M/IR:H/AR:M",
			"VC:H/VI:L/VA:L/CR:M/IR:H/AR:H",
			"VC:L/VI:L/VA:H/CR:H/IR:H/AR:M",
		},
		{2, 1}: {"VC:L/VI:L/VA:L/CR:H/IR:H/AR:H"},
	}
	maxEQ4 = map[uint8][]string{
		0: {"SC:H/SI:S/SA:S"},
		1: {"SC:H/SI:H/SA:H"},
		2: {"SC:L/SI:L/SA:L"},
	}
	maxEQ5 = map[uint8][]string{
		0: {"E:A"},
		1: {"E:P"},
		2: {"E:U"},
	}
)

// Largest severity distance reachable inside each class, in level steps.
var (
	maxSeverityEQ1  = map[uint8]float64{0: 1, 1: 4, 2: 5}
	maxSeverityEQ2  = map[uint8]float64{0: 1, 1: 2}
	maxSeverityEQ36 = map[eq36]float64{{0, 0}: 7, {0, 1}: 6, {1, 0}: 8, {1, 1}: 8, {2, 1}: 10}
	maxSeverityEQ4  = map[uint8]float64{0: 6, 1: 5, 2: 4}
	maxSeverityEQ5  = map[uint8]float64{0: 1, 1: 1, 2: 1}
)

// maxLevels lists the candidate most-severe vectors for mv, in the order
// the classes are enumerated, resolved to severity levels.
func maxLevels(mv MacroVector) []Levels {
	var out []Levels
	for _, e1 := range maxEQ1[mv.EQ1] {
		for _, e2 := range maxEQ2[mv.EQ2] {
			for _, e36 := range maxEQ36[eq36{mv.EQ3, mv.EQ6}] {
				for _, e4 := range maxEQ4[mv.EQ4] {
					for _, e5 := range maxEQ5[mv.EQ5] {
						eff := map[string]string{}
						for _, p := range splitVector(strings.Join([]string{e1, e2, e36, e4, e5}, "/")) {
							eff[p.Key] = p.Value
						}
						out = append(out, levelsOf(eff))
					}
				}
			}
		}
	}
	return out
}

// lookup returns the published score of mv.
func lookup(mv MacroVector) (float64, bool) {
	score, ok := macroVectorScores[mv]
	return score, ok
}
