package cvss

import "github.com/cockroachdb/errors"

// engine is the capability every scoring standard provides. R is the record
// family the standard decodes into, which ties each engine to its records at
// compile time.
type engine[R any] interface {
	Decode(vector string) (R, error)
	Base(r R) (float64, error)
	Temporal(r R) (float64, error)
	Environmental(r R) (float64, error)
}

var (
	engine2  engine[*Record]  = v2Engine{}
	engine30 engine[*Record]  = v3Engine{version: V30, roundUp: roundUp30, modifiedImpact: modifiedImpact30}
	engine31 engine[*Record]  = v3Engine{version: V31, roundUp: roundUp31, modifiedImpact: modifiedImpact31}
	engine40 engine[*Record4] = v4Engine{}
)

// run decodes a vector with e and computes all three scores. On any failure
// no partial result is returned.
func run[R any](e engine[R], version Version, vector string) (Scores, error) {
	r, err := e.Decode(vector)
	if err != nil {
		return Scores{}, err
	}
	base, err := e.Base(r)
	if err != nil {
		return Scores{}, err
	}
	temporal, err := e.Temporal(r)
	if err != nil {
		return Scores{}, err
	}
	environmental, err := e.Environmental(r)
	if err != nil {
		return Scores{}, err
	}
	return Scores{
		Version:       version,
		Base:          base,
		Temporal:      temporal,
		Environmental: environmental,
	}, nil
}

// checkRecord guards the closed-form engines, which share the Record type
// across versions.
func checkRecord(r *Record, want Version) error {
	if r == nil {
		return errors.Wrapf(ErrWrongRecord, "%s engine received no record", want)
	}
	if r.Version != want {
		return errors.Wrapf(ErrWrongRecord, "%s engine received a %s record", want, r.Version)
	}
	return nil
}
