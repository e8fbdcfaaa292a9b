package cvss

import (
	"context"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// Scores is the outcome of scoring one vector.
type Scores struct {
	Version       Version `json:"version"`
	Base          float64 `json:"baseScore"`
	Temporal      float64 `json:"temporalScore"`
	Environmental float64 `json:"environmentalScore"`
}

const vectorHeader = "CVSS:"

// Normalize trims whitespace and the parentheses some feeds put around
// CVSS 2.0 vectors, and upper-cases a lowercase "cvss:" header. Every
// scoring entry point normalizes; callers that Classify directly should too.
func Normalize(vector string) string {
	vector = strings.TrimSpace(vector)
	if strings.HasPrefix(vector, "(") && strings.HasSuffix(vector, ")") {
		vector = strings.TrimSpace(vector[1 : len(vector)-1])
	}
	if len(vector) >= len(vectorHeader) && strings.EqualFold(vector[:len(vectorHeader)], vectorHeader) {
		vector = vectorHeader + vector[len(vectorHeader):]
	}
	return vector
}

// Score determines the standard of a vector and calculates its Base,
// Temporal and Environmental scores. For CVSS 4.0 the three scores are the
// same value.
func Score(vector string) (Scores, error) {
	vector = Normalize(vector)
	version, err := Classify(vector)
	if err != nil {
		return Scores{}, err
	}

	switch version {
	case V40:
		return run(engine40, version, vector)
	case V31:
		return run(engine31, version, vector)
	case V30:
		return run(engine30, version, vector)
	case V2:
		return run(engine2, version, vector)
	}
	return Scores{}, ErrInvalidVector
}

// CalculateScores returns the Base, Temporal and Environmental scores of a
// vector.
func CalculateScores(vector string) (float64, float64, float64, error) {
	s, err := Score(vector)
	if err != nil {
		return 0, 0, 0, err
	}
	return s.Base, s.Temporal, s.Environmental, nil
}

// Parse decodes a CVSS 2.0, 3.0 or 3.1 vector into its coefficients.
func Parse(vector string) (*Record, error) {
	vector = Normalize(vector)
	version, err := Classify(vector)
	if err != nil {
		return nil, err
	}
	switch version {
	case V31:
		return engine31.Decode(vector)
	case V30:
		return engine30.Decode(vector)
	case V2:
		return engine2.Decode(vector)
	}
	return nil, errors.Wrapf(ErrWrongRecord, "%s vectors decode with Parse4", version)
}

// Parse4 decodes a CVSS 4.0 vector into its macrovector and severity levels.
func Parse4(vector string) (*Record4, error) {
	vector = Normalize(vector)
	version, err := Classify(vector)
	if err != nil {
		return nil, err
	}
	if version != V40 {
		return nil, errors.Wrapf(ErrWrongRecord, "%s vectors decode with Parse", version)
	}
	return engine40.Decode(vector)
}

// ScoreAll scores vectors concurrently, running at most limit at a time
// (no limit when limit <= 0). Results keep the order of vectors; a vector
// that fails leaves a zero Scores in its slot and its error is reported in
// the returned aggregate without stopping the others.
func ScoreAll(ctx context.Context, vectors []string, limit int) ([]Scores, error) {
	results := make([]Scores, len(vectors))

	var (
		mu   sync.Mutex
		errs *multierror.Error
	)

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, vector := range vectors {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := Score(vector)
			if err != nil {
				mu.Lock()
				errs = multierror.Append(errs, errors.Wrapf(err, "vector %d %q", i, vector))
				mu.Unlock()
				return nil
			}
			results[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, errs.ErrorOrNil()
}

// Severity is the qualitative rating of a score.
type Severity string

const (
	SeverityNone     Severity = "NONE"
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
	SeverityUnknown  Severity = "UNKNOWN"
)

// Rating returns the qualitative severity rating of a score.
// https://www.first.org/cvss/v3.1/specification-document#Qualitative-Severity-Rating-Scale
func Rating(score float64) Severity {
	switch {
	case score == 0.0:
		return SeverityNone
	case score >= 0.1 && score <= 3.9:
		return SeverityLow
	case score >= 4.0 && score <= 6.9:
		return SeverityMedium
	case score >= 7.0 && score <= 8.9:
		return SeverityHigh
	case score >= 9.0 && score <= 10.0:
		return SeverityCritical
	}
	return SeverityUnknown
}
