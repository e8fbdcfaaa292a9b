package cvss

import "github.com/rs/zerolog/log"

// decode4 reads a CVSS 4.0 vector and derives its macrovector. Every
// equivalence class is computed from effective values: a modified metric
// other than X overrides its base metric.
func decode4(vector string) (*Record4, error) {
	eff := map[string]string{}
	for _, m := range []v4Metric{
		metricAV, metricAC, metricAT, metricPR, metricUI,
		metricVC, metricVI, metricVA, metricSC, metricSI, metricSA,
		metricCR, metricIR, metricAR, metricE,
	} {
		v, err := effectiveValue(vector, m)
		if err != nil {
			return nil, err
		}
		eff[m.key] = v
	}

	r := &Record4{
		Macro:  macroVectorOf(eff),
		Levels: levelsOf(eff),
		zeroImpact: eff["VC"] == "N" && eff["VI"] == "N" && eff["VA"] == "N" &&
			eff["SC"] == "N" && eff["SI"] == "N" && eff["SA"] == "N",
	}

	for _, key := range v4Supplemental {
		if v, ok := optionalValue(vector, key, notDefined); ok {
			if r.Supplemental == nil {
				r.Supplemental = map[string]string{}
			}
			r.Supplemental[key] = v
		}
	}

	log.Debug().Str("vector", vector).Stringer("macrovector", r.Macro).Msg("decoded cvss 4.0 vector")
	return r, nil
}

// levelsOf maps effective metric values onto their severity levels.
// Metrics missing from eff resolve to level 0.
func levelsOf(eff map[string]string) Levels {
	var lv Levels
	for _, f := range []struct {
		m   v4Metric
		dst *float64
	}{
		{metricAV, &lv.AV}, {metricPR, &lv.PR}, {metricUI, &lv.UI},
		{metricAC, &lv.AC}, {metricAT, &lv.AT},
		{metricVC, &lv.VC}, {metricVI, &lv.VI}, {metricVA, &lv.VA},
		{metricSC, &lv.SC}, {metricSI, &lv.SI}, {metricSA, &lv.SA},
		{metricCR, &lv.CR}, {metricIR, &lv.IR}, {metricAR, &lv.AR},
		{metricE, &lv.E},
	} {
		*f.dst = f.m.levels[eff[f.m.key]]
	}
	return lv
}

// effectiveValue resolves a metric to the value the 4.0 equations see:
// the modified metric when set, else the base metric, else the metric's
// default for environmental and threat metrics.
func effectiveValue(vector string, m v4Metric) (string, error) {
	if m.modified != "" {
		if v, ok := optionalValue(vector, m.modified, notDefined); ok {
			if _, ok := m.levels[v]; !ok {
				return "", invalidValue(m.modified, v)
			}
			return v, nil
		}
	}

	var v string
	if m.fallback != "" {
		var ok bool
		if v, ok = optionalValue(vector, m.key, notDefined); !ok {
			return m.fallback, nil
		}
	} else {
		var err error
		if v, err = requireValue(vector, m.key); err != nil {
			return "", err
		}
	}
	if _, ok := m.levels[v]; !ok {
		return "", invalidValue(m.key, v)
	}
	// only the modified metrics may raise SI and SA to Safety
	if v == "S" && (m.key == "SI" || m.key == "SA") {
		return "", invalidValue(m.key, v)
	}
	return v, nil
}

// macroVectorOf derives EQ1..EQ6 from effective metric values.
func macroVectorOf(eff map[string]string) MacroVector {
	var mv MacroVector

	av, pr, ui := eff["AV"], eff["PR"], eff["UI"]
	switch {
	case av == "N" && pr == "N" && ui == "N":
		mv.EQ1 = 0
	case av == "P" || !(av == "N" || pr == "N" || ui == "N"):
		mv.EQ1 = 2
	default:
		mv.EQ1 = 1
	}

	if eff["AC"] == "L" && eff["AT"] == "N" {
		mv.EQ2 = 0
	} else {
		mv.EQ2 = 1
	}

	vc, vi, va := eff["VC"], eff["VI"], eff["VA"]
	switch {
	case vc == "H" && vi == "H":
		mv.EQ3 = 0
	case vc != "H" && vi != "H" && va != "H":
		mv.EQ3 = 2
	default:
		mv.EQ3 = 1
	}

	sc, si, sa := eff["SC"], eff["SI"], eff["SA"]
	switch {
	case si == "S" || sa == "S":
		mv.EQ4 = 0
	case sc == "H" || si == "H" || sa == "H":
		mv.EQ4 = 1
	default:
		mv.EQ4 = 2
	}

	switch eff["E"] {
	case "A":
		mv.EQ5 = 0
	case "P":
		mv.EQ5 = 1
	default:
		mv.EQ5 = 2
	}

	if (eff["CR"] == "H" && vc == "H") || (eff["IR"] == "H" && vi == "H") || (eff["AR"] == "H" && va == "H") {
		mv.EQ6 = 0
	} else {
		mv.EQ6 = 1
	}

	return mv
}
