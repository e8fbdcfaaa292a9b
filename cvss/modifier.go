// Contextual metrics (threat/temporal and environmental) can be applied to a
// base vector so that the Temporal and Environmental scores reflect the
// deployment the vulnerability lives in.
// https://www.first.org/cvss/v3-1/specification-document#Environmental-Metrics
// https://www.first.org/cvss/v4.0/specification-document#Environmental-Metrics

package cvss

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// MetricsOptions defines the values to apply to the vector. Each standard
// picks the keys it knows; MC, MI and MA also feed MVC, MVI and MVA on 4.0
// vectors unless those are given.
type MetricsOptions struct {
	E, RL, RC                      string
	CR, IR, AR                     string
	MAV, MAC, MPR, MUI, MC, MI, MA string

	// CVSS 4.0 only
	MAT, MVC, MVI, MVA, MSC, MSI, MSA string

	// CVSS 2.0 only
	CDP, TD string

	Smart bool
}

type applied struct {
	key, value string
}

func (o MetricsOptions) forVersion(v Version) []applied {
	pick := func(vals ...string) string {
		for _, v := range vals {
			if v != "" {
				return v
			}
		}
		return ""
	}

	switch v {
	case V2:
		return []applied{
			{"E", o.E}, {"RL", o.RL}, {"RC", o.RC},
			{"CDP", o.CDP}, {"TD", o.TD},
			{"CR", o.CR}, {"IR", o.IR}, {"AR", o.AR},
		}
	case V30, V31:
		return []applied{
			{"E", o.E}, {"RL", o.RL}, {"RC", o.RC},
			{"CR", o.CR}, {"IR", o.IR}, {"AR", o.AR},
			{"MAV", o.MAV}, {"MAC", o.MAC}, {"MPR", o.MPR}, {"MUI", o.MUI},
			{"MC", o.MC}, {"MI", o.MI}, {"MA", o.MA},
		}
	case V40:
		return []applied{
			{"E", o.E},
			{"CR", o.CR}, {"IR", o.IR}, {"AR", o.AR},
			{"MAV", o.MAV}, {"MAC", o.MAC}, {"MAT", o.MAT}, {"MPR", o.MPR}, {"MUI", o.MUI},
			{"MVC", pick(o.MVC, o.MC)}, {"MVI", pick(o.MVI, o.MI)}, {"MVA", pick(o.MVA, o.MA)},
			{"MSC", o.MSC}, {"MSI", o.MSI}, {"MSA", o.MSA},
		}
	}
	return nil
}

// severityWeights defines the hierarchy of severity for Smart Clamping.
// Higher is more severe.
var severityWeights = map[Version]map[string]map[string]int{
	V30: v3SeverityWeights,
	V31: v3SeverityWeights,
	V40: {
		"AV": {"N": 4, "A": 3, "L": 2, "P": 1},
		"AC": {"L": 2, "H": 1},
		"AT": {"N": 2, "P": 1},
		"PR": {"N": 3, "L": 2, "H": 1},
		"UI": {"N": 3, "P": 2, "A": 1},
		"VC": {"H": 3, "L": 2, "N": 1},
		"VI": {"H": 3, "L": 2, "N": 1},
		"VA": {"H": 3, "L": 2, "N": 1},
		"SC": {"H": 3, "L": 2, "N": 1},
		"SI": {"S": 4, "H": 3, "L": 2, "N": 1},
		"SA": {"S": 4, "H": 3, "L": 2, "N": 1},
	},
}

var v3SeverityWeights = map[string]map[string]int{
	"AV": {"N": 4, "A": 3, "L": 2, "P": 1},
	"AC": {"L": 2, "H": 1},
	"PR": {"N": 3, "L": 2, "H": 1},
	"UI": {"N": 2, "R": 1},
	"C":  {"H": 3, "L": 2, "N": 1},
	"I":  {"H": 3, "L": 2, "N": 1},
	"A":  {"H": 3, "L": 2, "N": 1},
}

// ApplyMetrics takes a base vector and applies the given options. A metric
// already present in the vector is replaced in place, others are appended.
// The rewritten vector is scored once to make sure it is still valid.
func ApplyMetrics(baseVectorStr string, opts MetricsOptions) (string, error) {
	baseVectorStr = Normalize(baseVectorStr)
	version, err := Classify(baseVectorStr)
	if err != nil {
		return "", err
	}

	header, pairs := cutHeader(baseVectorStr)
	baseMetrics := make(map[string]string, len(pairs))
	for _, p := range pairs {
		if _, ok := baseMetrics[p.Key]; !ok {
			baseMetrics[p.Key] = p.Value
		}
	}

	for _, m := range opts.forVersion(version) {
		if m.value == "" {
			continue
		}
		upperVal := strings.ToUpper(m.value)
		if !shouldApplyMetric(version, m.key, upperVal, baseMetrics, opts.Smart) {
			continue
		}
		pairs = setPair(pairs, m.key, upperVal)
	}

	var sb strings.Builder
	sb.WriteString(header)
	for i, p := range pairs {
		if i > 0 || header != "" {
			sb.WriteByte('/')
		}
		sb.WriteString(p.Key)
		sb.WriteByte(':')
		sb.WriteString(p.Value)
	}
	out := sb.String()

	if _, err := Score(out); err != nil {
		return "", errors.Wrapf(err, "applying contextual metrics to %q", baseVectorStr)
	}
	return out, nil
}

// cutHeader separates the "CVSS:x.y" prefix, if any, from the metrics.
func cutHeader(vector string) (string, []pair) {
	header := ""
	if strings.HasPrefix(vector, "CVSS:") {
		header, _, _ = strings.Cut(vector, "/")
	}
	return header, splitVector(vector)
}

func setPair(pairs []pair, key, value string) []pair {
	for i := range pairs {
		if pairs[i].Key == key {
			pairs[i].Value = value
			return pairs
		}
	}
	return append(pairs, pair{Key: key, Value: value})
}

// shouldApplyMetric checks if a modified metric may be applied in "Smart"
// mode: a Modified metric must not imply a higher severity than the Base
// metric allows.
func shouldApplyMetric(version Version, metricKey, metricVal string, baseMetrics map[string]string, smart bool) bool {
	if metricVal == notDefined || !smart {
		return true
	}

	// only modified base metrics are clamped, requirements and threat
	// metrics always apply
	if !strings.HasPrefix(metricKey, "M") {
		return true
	}
	baseKey := strings.TrimPrefix(metricKey, "M")

	weightMap, ok := severityWeights[version][baseKey]
	if !ok {
		return true
	}
	baseVal, ok := baseMetrics[baseKey]
	if !ok {
		return true
	}

	baseWeight, baseOk := weightMap[baseVal]
	modWeight, modOk := weightMap[metricVal]
	if baseOk && modOk && modWeight > baseWeight {
		return false
	}
	return true
}
