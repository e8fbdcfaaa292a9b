package cvss

// decode3 reads a CVSS 3.0 or 3.1 vector. Modified base metrics start out
// equal to their base metric and are only replaced by an explicit value
// other than X.
func decode3(vector string, version Version) (*Record, error) {
	r := &Record{Version: version}

	scope, err := requireValue(vector, "S")
	if err != nil {
		return nil, err
	}
	if !v3Scope[scope] {
		return nil, invalidValue("S", scope)
	}
	r.Scope, r.ModifiedScope = scope, scope

	if ms, ok := optionalValue(vector, "MS", notDefined); ok {
		if !v3Scope[ms] {
			return nil, invalidValue("MS", ms)
		}
		r.ModifiedScope = ms
	}

	metrics := []struct {
		metric, modified string
		table            map[string]float64
		modTable         map[string]float64
		dst, modDst      *float64
	}{
		{"AV", "MAV", v3AttackVector, v3AttackVector, &r.AttackVector, &r.ModifiedAttackVector},
		{"AC", "MAC", v3AttackComplexity, v3AttackComplexity, &r.AttackComplexity, &r.ModifiedAttackComplexity},
		// PR weights follow the scope they are evaluated under
		{"PR", "MPR", v3Privileges(r.Scope), v3Privileges(r.ModifiedScope), &r.PrivilegesRequired, &r.ModifiedPrivilegesRequired},
		{"UI", "MUI", v3UserInteraction, v3UserInteraction, &r.UserInteraction, &r.ModifiedUserInteraction},
		{"C", "MC", v3Impact, v3Impact, &r.Confidentiality, &r.ModifiedConfidentiality},
		{"I", "MI", v3Impact, v3Impact, &r.Integrity, &r.ModifiedIntegrity},
		{"A", "MA", v3Impact, v3Impact, &r.Availability, &r.ModifiedAvailability},
	}
	for _, m := range metrics {
		v, err := requireValue(vector, m.metric)
		if err != nil {
			return nil, err
		}
		w, ok := m.table[v]
		if !ok {
			return nil, invalidValue(m.metric, v)
		}
		*m.dst = w
		*m.modDst = m.modTable[v]

		mv, ok := optionalValue(vector, m.modified, notDefined)
		if !ok {
			continue
		}
		mw, ok := m.modTable[mv]
		if !ok {
			return nil, invalidValue(m.modified, mv)
		}
		*m.modDst = mw
	}

	optional := []struct {
		metric string
		table  map[string]float64
		dst    *float64
	}{
		{"E", v3ExploitCodeMaturity, &r.ExploitCodeMaturity},
		{"RL", v3RemediationLevel, &r.RemediationLevel},
		{"RC", v3ReportConfidence, &r.ReportConfidence},
		{"CR", v3Requirement, &r.ConfidentialityRequirement},
		{"IR", v3Requirement, &r.IntegrityRequirement},
		{"AR", v3Requirement, &r.AvailabilityRequirement},
	}
	for _, m := range optional {
		v, ok := optionalValue(vector, m.metric, notDefined)
		if !ok {
			*m.dst = 1
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
