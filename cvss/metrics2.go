package cvss

// Metric weights for CVSS 2.0.
// https://www.first.org/cvss/v2/guide#3-2-1-Base-Equation

var (
	v2AccessVector = map[string]float64{
		"N": 1,
		"A": 0.646,
		"L": 0.395,
	}

	v2AccessComplexity = map[string]float64{
		"L": 0.71,
		"M": 0.61,
		"H": 0.35,
	}

	v2Authentication = map[string]float64{
		"N": 0.704,
		"S": 0.56,
		"M": 0.45,
	}

	v2Impact = map[string]float64{
		"C": 0.660,
		"P": 0.275,
		"N": 0,
	}

	v2Exploitability = map[string]float64{
		"H":   1,
		"F":   0.95,
		"POC": 0.9,
		"U":   0.85,
	}

	v2RemediationLevel = map[string]float64{
		"U":  1,
		"W":  0.95,
		"TF": 0.90,
		"OF": 0.87,
	}

	v2ReportConfidence = map[string]float64{
		"C":  1,
		"UR": 0.95,
		"UC": 0.90,
	}

	v2CollateralDamage = map[string]float64{
		"N":  0,
		"L":  0.1,
		"LM": 0.3,
		"MH": 0.4,
		"H":  0.5,
	}

	v2TargetDistribution = map[string]float64{
		"N": 0,
		"L": 0.25,
		"M": 0.75,
		"H": 1,
	}

	v2Requirement = map[string]float64{
		"L": 0.5,
		"M": 1,
		"H": 1.51,
	}
)

// v2NotDefined is the "not defined" sentinel of the 2.0 grammar.
const v2NotDefined = "ND"
