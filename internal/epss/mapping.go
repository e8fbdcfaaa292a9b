package epss

import "cvss-scorer/cvss"

// EPSS probability bands used to infer exploit maturity.
const (
	ThresholdUnproven   = 0.05
	ThresholdPoC        = 0.20
	ThresholdFunctional = 0.50
)

// EPSSToExploitMaturity maps an EPSS score (0-1) to CVSS v3 Exploit Code Maturity (U, P, F, H).
func EPSSToExploitMaturity(score float64) string {
	return ExploitMaturityFor(cvss.V31, score)
}

// ExploitMaturityFor maps an EPSS score to the exploit maturity value of
// the given standard:
//
//	2.0:     U, POC, F, H  (ND when unknown)
//	3.0/3.1: U, P, F, H    (X when unknown)
//	4.0:     U, P, A       (X when unknown)
func ExploitMaturityFor(version cvss.Version, score float64) string {
	switch version {
	case cvss.V2:
		switch {
		case score < 0:
			return "ND"
		case score < ThresholdUnproven:
			return "U"
		case score < ThresholdPoC:
			return "POC"
		case score < ThresholdFunctional:
			return "F"
		default:
			return "H"
		}
	case cvss.V40:
		// 4.0 folds Functional and High into Attacked
		switch {
		case score < 0:
			return "X"
		case score < ThresholdUnproven:
			return "U"
		case score < ThresholdFunctional:
			return "P"
		default:
			return "A"
		}
	default:
		switch {
		case score < 0:
			return "X"
		case score < ThresholdUnproven:
			return "U"
		case score < ThresholdPoC:
			return "P"
		case score < ThresholdFunctional:
			return "F"
		default:
			return "H"
		}
	}
}
