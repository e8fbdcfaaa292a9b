package cvss

import "fmt"

// Record holds the decoded coefficients of a CVSS 2.0, 3.0 or 3.1 vector.
// The closed-form versions share this shape; Version says which standard
// decoded it and every engine refuses records of another version.
//
// For 2.0 vectors AttackVector and AttackComplexity carry Access Vector and
// Access Complexity, Authentication is set and the 3.x-only fields stay zero.
type Record struct {
	Version Version

	Scope         string
	ModifiedScope string

	AttackVector       float64
	AttackComplexity   float64
	Authentication     float64
	PrivilegesRequired float64
	UserInteraction    float64
	Confidentiality    float64
	Integrity          float64
	Availability       float64

	ExploitCodeMaturity float64
	RemediationLevel    float64
	ReportConfidence    float64

	ConfidentialityRequirement float64
	IntegrityRequirement       float64
	AvailabilityRequirement    float64

	ModifiedAttackVector       float64
	ModifiedAttackComplexity   float64
	ModifiedPrivilegesRequired float64
	ModifiedUserInteraction    float64
	ModifiedConfidentiality    float64
	ModifiedIntegrity          float64
	ModifiedAvailability       float64

	CollateralDamagePotential float64
	TargetDistribution        float64
}

// MacroVector is the six equivalence-class codes of a 4.0 vector.
type MacroVector struct {
	EQ1, EQ2, EQ3, EQ4, EQ5, EQ6 uint8
}

func (m MacroVector) String() string {
	return fmt.Sprintf("%d%d%d%d%d%d", m.EQ1, m.EQ2, m.EQ3, m.EQ4, m.EQ5, m.EQ6)
}

// Levels are the per-metric severity levels of a 4.0 vector after modified
// metrics and defaults have been applied.
type Levels struct {
	AV, PR, UI float64
	AC, AT     float64
	VC, VI, VA float64
	SC, SI, SA float64
	CR, IR, AR float64
	E          float64
}

// dominatedBy reports whether every level of l is at least the matching
// level of top, i.e. top is at least as severe on every metric.
func (l Levels) dominatedBy(top Levels) bool {
	return l.AV-top.AV >= 0 &&
		l.PR-top.PR >= 0 &&
		l.UI-top.UI >= 0 &&
		l.AC-top.AC >= 0 &&
		l.AT-top.AT >= 0 &&
		l.VC-top.VC >= 0 &&
		l.VI-top.VI >= 0 &&
		l.VA-top.VA >= 0 &&
		l.SC-top.SC >= 0 &&
		l.SI-top.SI >= 0 &&
		l.SA-top.SA >= 0 &&
		l.CR-top.CR >= 0 &&
		l.IR-top.IR >= 0 &&
		l.AR-top.AR >= 0 &&
		l.E-top.E >= 0
}

// Record4 is the decoded form of a CVSS 4.0 vector.
type Record4 struct {
	Macro  MacroVector
	Levels Levels

	// zeroImpact is set when every vulnerable and subsequent system impact
	// is None.
	zeroImpact bool

	// Supplemental metrics as found in the vector, keyed by metric name.
	Supplemental map[string]string
}

// MacroVector returns the equivalence-class codes of the record.
func (r *Record4) MacroVector() MacroVector {
	return r.Macro
}

// HasZeroImpact reports whether no impact metric is above None.
func (r *Record4) HasZeroImpact() bool {
	return r.zeroImpact
}
