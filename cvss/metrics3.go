package cvss

// Metric weights for CVSS 3.0 and 3.1, which share every coefficient.
// https://www.first.org/cvss/v3.1/specification-document#7-4-Metric-Values

const (
	scopeUnchanged = "U"
	scopeChanged   = "C"
)

var (
	v3AttackVector = map[string]float64{
		"N": 0.85,
		"A": 0.62,
		"L": 0.55,
		"P": 0.2,
	}

	v3AttackComplexity = map[string]float64{
		"L": 0.77,
		"H": 0.44,
	}

	// privileges required depends on scope
	v3PrivilegesUnchanged = map[string]float64{
		"N": 0.85,
		"L": 0.62,
		"H": 0.27,
	}
	v3PrivilegesChanged = map[string]float64{
		"N": 0.85,
		"L": 0.68,
		"H": 0.5,
	}

	v3UserInteraction = map[string]float64{
		"N": 0.85,
		"R": 0.62,
	}

	v3Impact = map[string]float64{
		"H": 0.56,
		"L": 0.22,
		"N": 0,
	}

	v3ExploitCodeMaturity = map[string]float64{
		"H": 1,
		"F": 0.97,
		"P": 0.94,
		"U": 0.91,
	}

	v3RemediationLevel = map[string]float64{
		"U": 1,
		"W": 0.97,
		"T": 0.96,
		"O": 0.95,
	}

	v3ReportConfidence = map[string]float64{
		"C": 1,
		"R": 0.96,
		"U": 0.92,
	}

	v3Requirement = map[string]float64{
		"H": 1.5,
		"M": 1,
		"L": 0.5,
	}

	v3Scope = map[string]bool{
		scopeUnchanged: true,
		scopeChanged:   true,
	}
)

func v3Privileges(scope string) map[string]float64 {
	if scope == scopeUnchanged {
		return v3PrivilegesUnchanged
	}
	return v3PrivilegesChanged
}
