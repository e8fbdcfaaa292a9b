package crosscheck

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvss-scorer/cvss"
)

func TestCompareAgrees(t *testing.T) {
	for _, vector := range []string{
		"CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H",
		"CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:C/C:H/I:H/A:H",
		"CVSS:3.0/AV:L/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H",
		"CVSS:4.0/AV:N/AC:L/AT:N/PR:N/UI:N/VC:H/VI:H/VA:H/SC:N/SI:N/SA:N",
		"  cvss:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H\n",
		"(AV:N/AC:L/Au:N/C:C/I:C/A:C)",
	} {
		t.Run(vector, func(t *testing.T) {
			got, err := cvss.Score(vector)
			require.NoError(t, err)

			mismatches, err := Compare(vector, got)
			require.NoError(t, err)
			assert.Empty(t, mismatches)
		})
	}
}

func TestCompareReportsMismatch(t *testing.T) {
	vector := "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H"
	got := cvss.Scores{Version: cvss.V31, Base: 9.8, Temporal: 9.7, Environmental: 9.8}

	mismatches, err := Compare(vector, got)
	require.NoError(t, err)
	require.Len(t, mismatches, 1)
	assert.Equal(t, Mismatch{Kind: "temporal", Got: 9.7, Want: 9.8}, mismatches[0])
	assert.Equal(t, "temporal: got 9.7, reference 9.8", mismatches[0].String())
}

func TestCompareKnownDifferences(t *testing.T) {
	t.Run("2.0 environmental", func(t *testing.T) {
		vector := "AV:N/AC:L/Au:N/C:C/I:C/A:C/E:U/RL:OF/RC:UC/CDP:L/TD:L/CR:M/IR:M/AR:M"
		got := cvss.Scores{Version: cvss.V2, Base: 10, Temporal: 6.7, Environmental: 4.2}

		mismatches, err := Compare(vector, got)
		require.NoError(t, err)
		assert.Empty(t, mismatches)
	})

	for _, vector := range []string{
		// 2.0 temporal 8.549999999999999
		"AV:N/AC:L/Au:N/C:C/I:C/A:C/E:POC/RL:U/RC:UR",
		// 4.0 raw 5.6499999999999995
		"CVSS:4.0/AV:N/AC:L/AT:P/PR:H/UI:N/VC:H/VI:N/VA:L/SC:H/SI:N/SA:N/CR:X/MAV:L/MAT:P/MVI:X/MSC:N/S:N/V:C",
		// impact only through modified metrics
		"CVSS:4.0/AV:N/AC:L/AT:N/PR:N/UI:N/VC:N/VI:N/VA:N/SC:N/SI:N/SA:N/MVC:H",
		"CVSS:4.0/AV:N/AC:L/AT:N/PR:N/UI:N/VC:H/VI:N/VA:N/SC:N/SI:N/SA:N/MVC:N",
	} {
		t.Run(vector, func(t *testing.T) {
			got, err := cvss.Score(vector)
			require.NoError(t, err)

			mismatches, err := Compare(vector, got)
			require.NoError(t, err)
			assert.Empty(t, mismatches)
		})
	}

	t.Run("slack only above the reference", func(t *testing.T) {
		vector := "AV:N/AC:L/Au:N/C:C/I:C/A:C/E:POC/RL:U/RC:UR"
		got := cvss.Scores{Version: cvss.V2, Base: 10, Temporal: 8.4, Environmental: 8.4}

		mismatches, err := Compare(vector, got)
		require.NoError(t, err)
		assert.Equal(t, []Mismatch{{Kind: "temporal", Got: 8.4, Want: 8.5}}, mismatches)
	})

	t.Run("4.0 with impact still compared", func(t *testing.T) {
		vector := "CVSS:4.0/AV:N/AC:L/AT:N/PR:N/UI:N/VC:H/VI:H/VA:H/SC:N/SI:N/SA:N"
		got := cvss.Scores{Version: cvss.V40, Base: 9.0, Temporal: 9.0, Environmental: 9.0}

		mismatches, err := Compare(vector, got)
		require.NoError(t, err)
		assert.Len(t, mismatches, 3)
	})
}

func TestReferenceErrors(t *testing.T) {
	_, err := Reference("not a vector")
	assert.ErrorIs(t, err, cvss.ErrInvalidVector)

	_, err = Reference("CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H/FOO:BAR")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestReferenceNormalizes(t *testing.T) {
	s, err := Reference(" cvss:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H\t")
	require.NoError(t, err)
	assert.Equal(t, cvss.V31, s.Version)
	assert.Equal(t, 9.8, s.Base)
}

type metricChoice struct {
	key    string
	values []string
}

func split(spec string) []metricChoice {
	var out []metricChoice
	for _, group := range strings.Fields(spec) {
		key, values, _ := strings.Cut(group, "=")
		out = append(out, metricChoice{key: key, values: strings.Split(values, ",")})
	}
	return out
}

var (
	base2        = split("AV=L,A,N AC=H,M,L Au=M,S,N C=N,P,C I=N,P,C A=N,P,C")
	temporal2    = split("E=U,POC,F,H,ND RL=OF,TF,W,U,ND RC=UC,UR,C,ND")
	environment2 = split("CDP=N,L,LM,MH,H,ND TD=N,L,M,H,ND CR=L,M,H,ND IR=L,M,H,ND AR=L,M,H,ND")

	base3     = split("AV=N,A,L,P AC=L,H PR=N,L,H UI=N,R S=U,C C=H,L,N I=H,L,N A=H,L,N")
	optional3 = split("E=X,U,P,F,H RL=X,O,T,W,U RC=X,U,R,C CR=X,L,M,H IR=X,L,M,H AR=X,L,M,H " +
		"MAV=X,N,A,L,P MAC=X,L,H MPR=X,N,L,H MUI=X,N,R MS=X,U,C MC=X,N,L,H MI=X,N,L,H MA=X,N,L,H")

	base4     = split("AV=N,A,L,P AC=L,H AT=N,P PR=N,L,H UI=N,P,A VC=H,L,N VI=H,L,N VA=H,L,N SC=H,L,N SI=H,L,N SA=H,L,N")
	optional4 = split("E=X,A,P,U CR=X,H,M,L IR=X,H,M,L AR=X,H,M,L " +
		"MAV=X,N,A,L,P MAC=X,L,H MAT=X,N,P MPR=X,N,L,H MUI=X,N,P,A " +
		"MVC=X,H,L,N MVI=X,H,L,N MVA=X,H,L,N MSC=X,H,L,N MSI=X,S,H,L,N MSA=X,S,H,L,N " +
		"S=X,N,P AU=X,N,Y R=X,A,U,I V=X,D,C RE=X,L,M,H U=X,Clear,Green,Amber,Red")
)

// randomVector draws a vector in canonical metric order. Optional metrics
// are included with probability one half, 2.0 groups all or nothing.
func randomVector(r *rand.Rand, version cvss.Version) string {
	var parts []string
	pick := func(choices []metricChoice) {
		for _, c := range choices {
			parts = append(parts, c.key+":"+c.values[r.Intn(len(c.values))])
		}
	}
	maybe := func(choices []metricChoice) {
		for _, c := range choices {
			if r.Intn(2) == 0 {
				pick([]metricChoice{c})
			}
		}
	}

	switch version {
	case cvss.V2:
		pick(base2)
		if r.Intn(2) == 0 {
			pick(temporal2)
		}
		if r.Intn(2) == 0 {
			pick(environment2)
		}
	case cvss.V30, cvss.V31:
		parts = append(parts, map[cvss.Version]string{cvss.V30: "CVSS:3.0", cvss.V31: "CVSS:3.1"}[version])
		pick(base3)
		maybe(optional3)
	case cvss.V40:
		parts = append(parts, "CVSS:4.0")
		pick(base4)
		maybe(optional4)
	}
	return strings.Join(parts, "/")
}

func TestCompareRandomVectors(t *testing.T) {
	r := rand.New(rand.NewSource(20240501))

	for _, version := range []cvss.Version{cvss.V2, cvss.V30, cvss.V31, cvss.V40} {
		t.Run(version.String(), func(t *testing.T) {
			for i := 0; i < 2000; i++ {
				vector := randomVector(r, version)

				got, err := cvss.Score(vector)
				require.NoError(t, err, vector)
				require.Equal(t, version, got.Version, vector)

				mismatches, err := Compare(vector, got)
				require.NoError(t, err, vector)
				assert.Empty(t, mismatches, vector)
			}
		})
	}
}
