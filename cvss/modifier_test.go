package cvss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMetrics(t *testing.T) {
	const (
		v31 = "CVSS:3.1/AV:L/AC:L/PR:N/UI:N/S:U/C:L/I:H/A:H"
		v40 = "CVSS:4.0/AV:N/AC:L/AT:N/PR:N/UI:N/VC:L/VI:H/VA:H/SC:N/SI:N/SA:N"
		v2  = "AV:N/AC:L/Au:N/C:C/I:C/A:C"
	)

	tests := []struct {
		name   string
		vector string
		opts   MetricsOptions
		want   string
	}{
		{
			name:   "append threat metric",
			vector: v31,
			opts:   MetricsOptions{E: "u"},
			want:   v31 + "/E:U",
		},
		{
			name:   "replace existing metric in place",
			vector: v31 + "/E:P/CR:L",
			opts:   MetricsOptions{E: "H"},
			want:   v31 + "/E:H/CR:L",
		},
		{
			name:   "modified metric raises severity without smart",
			vector: v31,
			opts:   MetricsOptions{MAV: "N"},
			want:   v31 + "/MAV:N",
		},
		{
			name:   "smart skips a modified metric above base",
			vector: v31,
			opts:   MetricsOptions{MAV: "N", Smart: true},
			want:   v31,
		},
		{
			name:   "smart keeps a modified metric below base",
			vector: v31,
			opts:   MetricsOptions{MAV: "P", MC: "H", CR: "H", Smart: true},
			want:   v31 + "/CR:H/MAV:P",
		},
		{
			name:   "smart always applies not defined",
			vector: v31,
			opts:   MetricsOptions{MAV: "X", Smart: true},
			want:   v31 + "/MAV:X",
		},
		{
			name:   "4.0 maps modified impact onto vulnerable system",
			vector: v40,
			opts:   MetricsOptions{E: "U", MC: "N"},
			want:   v40 + "/E:U/MVC:N",
		},
		{
			name:   "4.0 explicit MVC wins over MC",
			vector: v40,
			opts:   MetricsOptions{MC: "N", MVC: "L"},
			want:   v40 + "/MVC:L",
		},
		{
			name:   "4.0 smart clamps vulnerable confidentiality",
			vector: v40,
			opts:   MetricsOptions{MVC: "H", MSI: "L", Smart: true},
			want:   v40,
		},
		{
			name:   "4.0 smart clamps safety impact",
			vector: v40,
			opts:   MetricsOptions{MSI: "S", MSA: "S", Smart: true},
			want:   v40,
		},
		{
			name:   "4.0 safety impact applies without smart",
			vector: v40,
			opts:   MetricsOptions{MSI: "S", MSA: "S"},
			want:   v40 + "/MSI:S/MSA:S",
		},
		{
			name:   "4.0 ignores 3.x only metrics",
			vector: v40,
			opts:   MetricsOptions{RL: "O", RC: "C"},
			want:   v40,
		},
		{
			name:   "2.0 environmental metrics without header",
			vector: v2,
			opts:   MetricsOptions{CDP: "h", TD: "m", MAV: "L"},
			want:   v2 + "/CDP:H/TD:M",
		},
		{
			name:   "2.0 keeps its header",
			vector: "CVSS:2/" + v2,
			opts:   MetricsOptions{E: "POC"},
			want:   "CVSS:2/" + v2 + "/E:POC",
		},
		{
			name:   "2.0 parentheses are dropped",
			vector: "(" + v2 + ")",
			opts:   MetricsOptions{RL: "OF"},
			want:   v2 + "/RL:OF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyMetrics(tt.vector, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			_, err = Score(got)
			assert.NoError(t, err)
		})
	}
}

func TestApplyMetricsLowersScore(t *testing.T) {
	vector := "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H"
	before, err := Score(vector)
	require.NoError(t, err)

	out, err := ApplyMetrics(vector, MetricsOptions{E: "U", MAV: "L", Smart: true})
	require.NoError(t, err)
	after, err := Score(out)
	require.NoError(t, err)

	assert.Equal(t, before.Base, after.Base)
	assert.Less(t, after.Temporal, before.Temporal)
	assert.Less(t, after.Environmental, before.Environmental)
}

func TestApplyMetricsErrors(t *testing.T) {
	t.Run("invalid base vector", func(t *testing.T) {
		_, err := ApplyMetrics("not a vector", MetricsOptions{E: "U"})
		require.ErrorIs(t, err, ErrInvalidVector)
	})

	t.Run("3.x value rejected by the equations", func(t *testing.T) {
		_, err := ApplyMetrics("CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H", MetricsOptions{E: "Z"})
		require.ErrorIs(t, err, ErrInvalidValue)
		assert.Equal(t, CodeInvalidValue, CodeOf(err))
	})

	t.Run("4.0 value rejected by the grammar", func(t *testing.T) {
		_, err := ApplyMetrics("CVSS:4.0/AV:N/AC:L/AT:N/PR:N/UI:N/VC:H/VI:H/VA:H/SC:N/SI:N/SA:N", MetricsOptions{E: "F"})
		require.ErrorIs(t, err, ErrInvalidVector)
	})
}

func TestShouldApplyMetric(t *testing.T) {
	base := map[string]string{"AV": "A", "PR": "L", "UI": "R", "C": "L"}

	assert.True(t, shouldApplyMetric(V31, "MAV", "N", base, false))
	assert.False(t, shouldApplyMetric(V31, "MAV", "N", base, true))
	assert.True(t, shouldApplyMetric(V31, "MAV", "A", base, true))
	assert.True(t, shouldApplyMetric(V31, "MAV", "L", base, true))
	assert.False(t, shouldApplyMetric(V31, "MPR", "N", base, true))
	assert.False(t, shouldApplyMetric(V30, "MUI", "N", base, true))
	assert.False(t, shouldApplyMetric(V31, "MC", "H", base, true))

	// no base value to compare against
	assert.True(t, shouldApplyMetric(V31, "MAC", "L", base, true))
	// requirements are never clamped
	assert.True(t, shouldApplyMetric(V31, "CR", "H", base, true))
	// 2.0 has no clamping table
	assert.True(t, shouldApplyMetric(V2, "MAV", "N", base, true))
	// unknown values are left for validation
	assert.True(t, shouldApplyMetric(V31, "MAV", "Q", base, true))

	base4 := map[string]string{"SI": "H", "SA": "N"}
	assert.False(t, shouldApplyMetric(V40, "MSI", "S", base4, true))
	assert.False(t, shouldApplyMetric(V40, "MSA", "S", base4, true))
	assert.True(t, shouldApplyMetric(V40, "MSI", "L", base4, true))
	assert.True(t, shouldApplyMetric(V40, "MSI", "H", base4, true))
}
