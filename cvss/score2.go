package cvss

import "math"

// v2Engine implements the CVSS 2.0 equations.
// https://www.first.org/cvss/v2/guide#3-2-Equations
type v2Engine struct{}

func (v2Engine) Decode(vector string) (*Record, error) {
	return decode2(vector)
}

func (e v2Engine) Base(r *Record) (float64, error) {
	if err := checkRecord(r, V2); err != nil {
		return 0, err
	}
	return v2BaseEquation(v2Impact3(r.Confidentiality, r.Integrity, r.Availability), r), nil
}

func (e v2Engine) Temporal(r *Record) (float64, error) {
	base, err := e.Base(r)
	if err != nil {
		return 0, err
	}
	return round1(base * r.ExploitCodeMaturity * r.RemediationLevel * r.ReportConfidence), nil
}

func (e v2Engine) Environmental(r *Record) (float64, error) {
	if err := checkRecord(r, V2); err != nil {
		return 0, err
	}
	adjustedImpact := math.Min(10, v2Impact3(
		r.Confidentiality*r.ConfidentialityRequirement,
		r.Integrity*r.IntegrityRequirement,
		r.Availability*r.AvailabilityRequirement,
	))
	adjustedBase := v2BaseEquation(adjustedImpact, r)

	// the adjusted temporal value is carried unrounded into the blend
	adjustedTemporal := adjustedBase * r.ExploitCodeMaturity * r.RemediationLevel * r.ReportConfidence

	return clampScore(round1((adjustedTemporal + (10-adjustedTemporal)*r.CollateralDamagePotential) * r.TargetDistribution)), nil
}

func v2Impact3(c, i, a float64) float64 {
	return 10.41 * (1 - (1-c)*(1-i)*(1-a))
}

func v2BaseEquation(impact float64, r *Record) float64 {
	exploitability := 20 * r.AttackVector * r.AttackComplexity * r.Authentication
	if impact == 0 {
		return 0
	}
	return clampScore(round1((0.6*impact + 0.4*exploitability - 1.5) * 1.176))
}
