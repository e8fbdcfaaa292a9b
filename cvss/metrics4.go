package cvss

// Severity levels for CVSS 4.0. Lower is more severe; the macrovector
// interpolation measures how far a vector sits from the most severe vector
// of its equivalence class in whole level steps.
// https://www.first.org/cvss/v4.0/specification-document#CVSS-v4-0-Scoring

var (
	v4AttackVector = map[string]float64{
		"N": 0,
		"A": 1,
		"L": 2,
		"P": 3,
	}

	v4PrivilegesRequired = map[string]float64{
		"N": 0,
		"L": 1,
		"H": 2,
	}

	v4UserInteraction = map[string]float64{
		"N": 0,
		"P": 1,
		"A": 2,
	}

	v4AttackComplexity = map[string]float64{
		"L": 0,
		"H": 1,
	}

	v4AttackRequirements = map[string]float64{
		"N": 0,
		"P": 1,
	}

	v4VulnerableImpact = map[string]float64{
		"H": 0,
		"L": 1,
		"N": 2,
	}

	v4SubsequentConfidentiality = map[string]float64{
		"H": 1,
		"L": 2,
		"N": 3,
	}

	// integrity and availability of the subsequent system may reach Safety
	// through their modified metrics
	v4SubsequentIntegrityAvailability = map[string]float64{
		"S": 0,
		"H": 1,
		"L": 2,
		"N": 3,
	}

	v4Requirement = map[string]float64{
		"H": 0,
		"M": 1,
		"L": 2,
	}

	v4ExploitMaturity = map[string]float64{
		"A": 0,
		"P": 1,
		"U": 2,
	}
)

// v4Metric describes one scored 4.0 metric: the vector key, the modified
// key that overrides it (if any), the value used when it is absent and the
// level table its values resolve through.
type v4Metric struct {
	key      string
	modified string
	fallback string
	levels   map[string]float64
}

var (
	metricAV = v4Metric{key: "AV", modified: "MAV", levels: v4AttackVector}
	metricAC = v4Metric{key: "AC", modified: "MAC", levels: v4AttackComplexity}
	metricAT = v4Metric{key: "AT", modified: "MAT", levels: v4AttackRequirements}
	metricPR = v4Metric{key: "PR", modified: "MPR", levels: v4PrivilegesRequired}
	metricUI = v4Metric{key: "UI", modified: "MUI", levels: v4UserInteraction}
	metricVC = v4Metric{key: "VC", modified: "MVC", levels: v4VulnerableImpact}
	metricVI = v4Metric{key: "VI", modified: "MVI", levels: v4VulnerableImpact}
	metricVA = v4Metric{key: "VA", modified: "MVA", levels: v4VulnerableImpact}
	metricSC = v4Metric{key: "SC", modified: "MSC", levels: v4SubsequentConfidentiality}
	metricSI = v4Metric{key: "SI", modified: "MSI", levels: v4SubsequentIntegrityAvailability}
	metricSA = v4Metric{key: "SA", modified: "MSA", levels: v4SubsequentIntegrityAvailability}
	metricCR = v4Metric{key: "CR", fallback: "H", levels: v4Requirement}
	metricIR = v4Metric{key: "IR", fallback: "H", levels: v4Requirement}
	metricAR = v4Metric{key: "AR", fallback: "H", levels: v4Requirement}
	metricE  = v4Metric{key: "E", fallback: "A", levels: v4ExploitMaturity}
)

// v4Supplemental lists the supplemental metrics. They are carried on the
// record but never influence the score.
var v4Supplemental = []string{"S", "AU", "R", "V", "RE", "U"}
