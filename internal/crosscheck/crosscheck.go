// Package crosscheck compares scores against an independent CVSS
// implementation, github.com/pandatix/go-cvss.
package crosscheck

import (
	"fmt"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
	gocvss20 "github.com/pandatix/go-cvss/20"
	gocvss30 "github.com/pandatix/go-cvss/30"
	gocvss31 "github.com/pandatix/go-cvss/31"
	gocvss40 "github.com/pandatix/go-cvss/40"

	"cvss-scorer/cvss"
)

// ErrUnsupported is returned when the reference implementation cannot read
// the vector, e.g. a 2.0 vector with metrics out of canonical order.
var ErrUnsupported = errors.New("vector not supported by reference implementation")

// tolerance absorbs float noise, not rounding differences.
const tolerance = 1e-9

// roundingSlack is how far a score may sit above the reference where the
// two implementations round differently. 3.0 Round up is a plain ceiling
// here. 2.0 and 4.0 round float noise such as 5.6499999999999995 up to the
// half it stands for, as the FIRST calculator does; go-cvss rounds it down.
var roundingSlack = map[cvss.Version]float64{
	cvss.V2:  0.1,
	cvss.V30: 0.1,
	cvss.V40: 0.1,
}

// Mismatch is one score that differs from the reference.
type Mismatch struct {
	Kind      string
	Got, Want float64
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: got %.1f, reference %.1f", m.Kind, m.Got, m.Want)
}

// Reference scores vector with go-cvss.
func Reference(vector string) (cvss.Scores, error) {
	vector = cvss.Normalize(vector)
	version, err := cvss.Classify(vector)
	if err != nil {
		return cvss.Scores{}, err
	}

	s := cvss.Scores{Version: version}
	switch version {
	case cvss.V40:
		v, err := gocvss40.ParseVector(vector)
		if err != nil {
			return cvss.Scores{}, errors.Mark(errors.Wrap(err, "go-cvss 4.0"), ErrUnsupported)
		}
		score := v.Score()
		s.Base, s.Temporal, s.Environmental = score, score, score
	case cvss.V31:
		v, err := gocvss31.ParseVector(vector)
		if err != nil {
			return cvss.Scores{}, errors.Mark(errors.Wrap(err, "go-cvss 3.1"), ErrUnsupported)
		}
		s.Base, s.Temporal, s.Environmental = v.BaseScore(), v.TemporalScore(), v.EnvironmentalScore()
	case cvss.V30:
		v, err := gocvss30.ParseVector(vector)
		if err != nil {
			return cvss.Scores{}, errors.Mark(errors.Wrap(err, "go-cvss 3.0"), ErrUnsupported)
		}
		s.Base, s.Temporal, s.Environmental = v.BaseScore(), v.TemporalScore(), v.EnvironmentalScore()
	case cvss.V2:
		// go-cvss reads bare 2.0 vectors only
		bare := strings.TrimPrefix(strings.TrimPrefix(vector, "CVSS:2.0/"), "CVSS:2/")
		v, err := gocvss20.ParseVector(bare)
		if err != nil {
			return cvss.Scores{}, errors.Mark(errors.Wrap(err, "go-cvss 2.0"), ErrUnsupported)
		}
		s.Base, s.Temporal, s.Environmental = v.BaseScore(), v.TemporalScore(), v.EnvironmentalScore()
	}
	return s, nil
}

// Compare returns the scores of got that differ from the reference scores
// of vector. Known differences between the two implementations are not
// reported:
//   - a 2.0 environmental score, which here carries the adjusted temporal
//     score unrounded
//   - a 2.0, 3.0 or 4.0 score one decimal above the reference, see
//     roundingSlack
//   - a 4.0 vector whose modified metrics alone decide whether it has any
//     impact, since go-cvss only looks at the base impact metrics
func Compare(vector string, got cvss.Scores) ([]Mismatch, error) {
	vector = cvss.Normalize(vector)
	want, err := Reference(vector)
	if err != nil {
		return nil, err
	}
	if want.Version == cvss.V40 {
		split, err := impactDecidedByModified(vector)
		if err != nil {
			return nil, err
		}
		if split {
			return nil, nil
		}
	}

	slack := roundingSlack[want.Version]
	var out []Mismatch
	for _, c := range []struct {
		kind      string
		got, want float64
		skip      bool
	}{
		{"base", got.Base, want.Base, false},
		{"temporal", got.Temporal, want.Temporal, false},
		{"environmental", got.Environmental, want.Environmental, want.Version == cvss.V2},
	} {
		if c.skip || agrees(c.got, c.want, slack) {
			continue
		}
		out = append(out, Mismatch{Kind: c.kind, Got: c.got, Want: c.want})
	}
	return out, nil
}

// agrees reports whether got equals want, or exceeds it by at most slack.
func agrees(got, want, slack float64) bool {
	d := got - want
	return math.Abs(d) <= tolerance || (d > 0 && d <= slack+tolerance)
}

// impactDecidedByModified reports whether the base impact metrics of a 4.0
// vector and the effective ones disagree on the vector having no impact.
func impactDecidedByModified(vector string) (bool, error) {
	r, err := cvss.Parse4(vector)
	if err != nil {
		return false, err
	}
	return baseWithoutImpact(vector) != r.HasZeroImpact(), nil
}

func baseWithoutImpact(vector string) bool {
	none := 0
	for _, part := range strings.Split(vector, "/") {
		k, v, _ := strings.Cut(part, ":")
		switch k {
		case "VC", "VI", "VA", "SC", "SI", "SA":
			if v != "N" {
				return false
			}
			none++
		}
	}
	return none == 6
}
