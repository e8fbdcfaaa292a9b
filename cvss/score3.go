package cvss

import "math"

// v3Engine implements the CVSS 3.0 and 3.1 equations. The two standards
// differ only in rounding and in the changed-scope modified impact.
// https://www.first.org/cvss/v3.1/specification-document#7-Appendix-A---Equations
type v3Engine struct {
	version        Version
	roundUp        func(float64) float64
	modifiedImpact func(miss float64) float64
}

func (e v3Engine) Decode(vector string) (*Record, error) {
	return decode3(vector, e.version)
}

func (e v3Engine) Base(r *Record) (float64, error) {
	if err := checkRecord(r, e.version); err != nil {
		return 0, err
	}
	iss := 1 - (1-r.Confidentiality)*(1-r.Integrity)*(1-r.Availability)

	var impact float64
	if r.Scope == scopeUnchanged {
		impact = 6.42 * iss
	} else {
		impact = 7.52*(iss-0.029) - 3.25*math.Pow(iss-0.02, 15)
	}
	exploitability := 8.22 * r.AttackVector * r.AttackComplexity * r.PrivilegesRequired * r.UserInteraction

	if impact <= 0 {
		return 0, nil
	}
	return e.roundUp(e.blend(r.Scope, impact, exploitability)), nil
}

func (e v3Engine) Temporal(r *Record) (float64, error) {
	base, err := e.Base(r)
	if err != nil {
		return 0, err
	}
	return e.roundUp(base * r.ExploitCodeMaturity * r.RemediationLevel * r.ReportConfidence), nil
}

func (e v3Engine) Environmental(r *Record) (float64, error) {
	if err := checkRecord(r, e.version); err != nil {
		return 0, err
	}
	miss := math.Min(1-
		(1-r.ConfidentialityRequirement*r.ModifiedConfidentiality)*
			(1-r.IntegrityRequirement*r.ModifiedIntegrity)*
			(1-r.AvailabilityRequirement*r.ModifiedAvailability), 0.915)

	var impact float64
	if r.ModifiedScope == scopeUnchanged {
		impact = 6.42 * miss
	} else {
		impact = e.modifiedImpact(miss)
	}
	exploitability := 8.22 * r.ModifiedAttackVector * r.ModifiedAttackComplexity *
		r.ModifiedPrivilegesRequired * r.ModifiedUserInteraction

	if impact <= 0 {
		return 0, nil
	}
	adjusted := e.roundUp(e.blend(r.ModifiedScope, impact, exploitability))
	return e.roundUp(adjusted * r.ExploitCodeMaturity * r.RemediationLevel * r.ReportConfidence), nil
}

// blend combines impact and exploitability, scaling by 1.08 when the scope
// changed, capped at 10.
func (e v3Engine) blend(scope string, impact, exploitability float64) float64 {
	if scope == scopeUnchanged {
		return math.Min(impact+exploitability, 10)
	}
	return math.Min(1.08*(impact+exploitability), 10)
}

func modifiedImpact30(miss float64) float64 {
	return 7.52*(miss-0.029) - 3.25*math.Pow(miss-0.02, 15)
}

func modifiedImpact31(miss float64) float64 {
	return 7.52*(miss-0.029) - 3.25*math.Pow(miss*0.9731-0.02, 13)
}
