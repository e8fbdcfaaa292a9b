package report

import (
	"encoding/json"
	"sort"

	"github.com/aquasecurity/trivy-db/pkg/types"
	trivytypes "github.com/aquasecurity/trivy/pkg/types"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"cvss-scorer/cvss"
	"cvss-scorer/internal/crosscheck"
	"cvss-scorer/internal/epss"
	"cvss-scorer/internal/flags"
)

// contextualMetrics holds the contextual CVSS metrics (temporal, environmental) and EPSS data, stored under Custom.ContextualMetrics.
type contextualMetrics struct {
	Vector              string        `json:"Vector,omitempty"`
	Version             *cvss.Version `json:"Version,omitempty"`
	BaseScore           float64       `json:"BaseScore"`
	TemporalScore       float64       `json:"TemporalScore"`
	TemporalRating      string        `json:"TemporalRating,omitempty"`
	EnvironmentalScore  float64       `json:"EnvironmentalScore"`
	EnvironmentalRating string        `json:"EnvironmentalRating,omitempty"`
	EpssScore           *float64      `json:"EpssScore,omitempty"`
	EpssPercentile      *float64      `json:"EpssPercentile,omitempty"`
	EpssDate            *string       `json:"EpssDate,omitempty"`
}

var defaultCVSSSources = []types.SourceID{
	"redhat", "ghsa", "bitnami", "ubuntu", "alpine", "amazon", "oracle", types.NVD,
}

// detected gives a typed view of one report entry. The report itself stays
// an untyped map so that fields this tool does not know survive unchanged.
func detected(vuln map[string]any) (trivytypes.DetectedVulnerability, error) {
	var dv trivytypes.DetectedVulnerability
	raw, err := json.Marshal(vuln)
	if err != nil {
		return dv, errors.Wrap(err, "encode vulnerability")
	}
	if err := json.Unmarshal(raw, &dv); err != nil {
		return dv, errors.Wrap(err, "decode vulnerability")
	}
	return dv, nil
}

// newestVector returns the most recent standard's vector of a source.
func newestVector(c types.CVSS) string {
	switch {
	case c.V40Vector != "":
		return c.V40Vector
	case c.V3Vector != "":
		return c.V3Vector
	default:
		return c.V2Vector
	}
}

// chooseCVSSSource picks the severity source when it has a vector, then the
// preferred vendors, then any other source in name order.
func chooseCVSSSource(dv trivytypes.DetectedVulnerability) types.SourceID {
	if len(dv.CVSS) == 0 {
		return ""
	}
	candidates := append([]types.SourceID{dv.SeveritySource}, defaultCVSSSources...)
	rest := lo.Keys(dv.CVSS)
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	candidates = append(candidates, rest...)

	for _, source := range candidates {
		if c, ok := dv.CVSS[source]; ok && newestVector(c) != "" {
			return source
		}
	}
	return ""
}

func getCVSSVectorFromVuln(dv trivytypes.DetectedVulnerability) string {
	source := chooseCVSSSource(dv)
	if source == "" {
		return ""
	}
	return newestVector(dv.CVSS[source])
}

func setContextualMetrics(vuln map[string]any, metrics contextualMetrics) {
	if vuln["Custom"] == nil {
		vuln["Custom"] = make(map[string]any)
	}
	if custom, ok := vuln["Custom"].(map[string]any); ok {
		custom["ContextualMetrics"] = metrics
	}
}

// Vulnerabilities returns every vulnerability entry of the report results.
func Vulnerabilities(results []any) []map[string]any {
	var out []map[string]any
	for _, r := range results {
		resa, _ := r.(map[string]any)
		if resa == nil {
			continue
		}
		vulns, _ := resa["Vulnerabilities"].([]any)
		for _, v := range vulns {
			if vuln, _ := v.(map[string]any); vuln != nil {
				out = append(out, vuln)
			}
		}
	}
	return out
}

// CollectCVEsWithoutCVSS returns CVE IDs that have no CVSS source in the report.
func CollectCVEsWithoutCVSS(results []any) []string {
	var out []string
	for _, vuln := range Vulnerabilities(results) {
		dv, err := detected(vuln)
		if err != nil || chooseCVSSSource(dv) != "" || dv.VulnerabilityID == "" {
			continue
		}
		out = append(out, dv.VulnerabilityID)
	}
	return lo.Uniq(out)
}

// CollectAllCVEIDs returns deduplicated CVE IDs from all vulnerabilities in results.
func CollectAllCVEIDs(results []any) []string {
	ids := lo.FilterMap(Vulnerabilities(results), func(vuln map[string]any, _ int) (string, bool) {
		id, _ := vuln["VulnerabilityID"].(string)
		return id, id != ""
	})
	return lo.Uniq(ids)
}

// ProcessVuln resolves the CVSS vector, applies contextual metrics, and writes result to vuln.Custom.ContextualMetrics.
func ProcessVuln(vuln map[string]any, nvdVectors map[string]string, epssData map[string]epss.Data, ro flags.RunOptions) error {
	dv, err := detected(vuln)
	if err != nil {
		return err
	}
	vulnID := dv.VulnerabilityID

	vectorStr := cvss.Normalize(getCVSSVectorFromVuln(dv))
	if vectorStr == "" && ro.FetchCVSS {
		vectorStr = cvss.Normalize(nvdVectors[vulnID])
	}
	if vectorStr == "" {
		if ro.ForceCtxRating {
			setContextualMetrics(vuln, contextualMetrics{
				TemporalRating:      dv.Severity,
				EnvironmentalRating: dv.Severity,
			})
		}
		return nil
	}

	version, err := cvss.Classify(vectorStr)
	if err != nil {
		return errors.Wrapf(err, "%s: vector %q", vulnID, vectorStr)
	}

	opts := ro.Opts
	if ro.UseEPSS {
		if data, ok := epssData[vulnID]; ok {
			opts.E = epss.ExploitMaturityFor(version, data.Score)
		}
	}

	newVectorStr, err := cvss.ApplyMetrics(vectorStr, opts)
	if err != nil {
		return errors.Wrapf(err, "%s: applying contextual metrics", vulnID)
	}
	scores, err := cvss.Score(newVectorStr)
	if err != nil {
		return errors.Wrapf(err, "%s: calculating scores", vulnID)
	}
	if ro.Verify {
		verify(vulnID, newVectorStr, scores)
	}

	metrics := contextualMetrics{
		Vector:              newVectorStr,
		Version:             &scores.Version,
		BaseScore:           scores.Base,
		TemporalScore:       scores.Temporal,
		TemporalRating:      string(cvss.Rating(scores.Temporal)),
		EnvironmentalScore:  scores.Environmental,
		EnvironmentalRating: string(cvss.Rating(scores.Environmental)),
	}
	if ro.UseEPSS {
		if data, ok := epssData[vulnID]; ok {
			metrics.EpssScore = &data.Score
			metrics.EpssPercentile = &data.Percentile
			if data.Date != "" {
				metrics.EpssDate = &data.Date
			}
		}
	}
	setContextualMetrics(vuln, metrics)
	return nil
}

func verify(vulnID, vector string, scores cvss.Scores) {
	mismatches, err := crosscheck.Compare(vector, scores)
	if err != nil {
		log.Debug().Err(err).Str("cve", vulnID).Msg("skipping cross-check")
		return
	}
	for _, m := range mismatches {
		log.Warn().Str("cve", vulnID).Str("vector", vector).Stringer("score", m).Msg("score differs from go-cvss")
	}
}
