package cvss

// decode2 reads a CVSS 2.0 vector. Temporal and environmental metrics are
// optional and default to the value that leaves the equations unchanged.
func decode2(vector string) (*Record, error) {
	r := &Record{Version: V2}

	base := []struct {
		metric string
		table  map[string]float64
		dst    *float64
	}{
		{"AV", v2AccessVector, &r.AttackVector},
		{"AC", v2AccessComplexity, &r.AttackComplexity},
		{"Au", v2Authentication, &r.Authentication},
		{"C", v2Impact, &r.Confidentiality},
		{"I", v2Impact, &r.Integrity},
		{"A", v2Impact, &r.Availability},
	}
	for _, m := range base {
		v, err := requireValue(vector, m.metric)
		if err != nil {
			return nil, err
		}
		w, ok := m.table[v]
		if !ok {
			return nil, invalidValue(m.metric, v)
		}
		*m.dst = w
	}

	optional := []struct {
		metric   string
		table    map[string]float64
		fallback float64
		dst      *float64
	}{
		{"E", v2Exploitability, 1, &r.ExploitCodeMaturity},
		{"RL", v2RemediationLevel, 1, &r.RemediationLevel},
		{"RC", v2ReportConfidence, 1, &r.ReportConfidence},
		{"CDP", v2CollateralDamage, 0, &r.CollateralDamagePotential},
		{"TD", v2TargetDistribution, 1, &r.TargetDistribution},
		{"CR", v2Requirement, 1, &r.ConfidentialityRequirement},
		{"IR", v2Requirement, 1, &r.IntegrityRequirement},
		{"AR", v2Requirement, 1, &r.AvailabilityRequirement},
	}
	for _, m := range optional {
		v, ok := optionalValue(vector, m.metric, v2NotDefined)
		if !ok {
			*m.dst = m.fallback
			continue
		}
		w, ok := m.table[v]
		if !ok {
			return nil, invalidValue(m.metric, v)
		}
		*m.dst = w
	}

	return r, nil
}
