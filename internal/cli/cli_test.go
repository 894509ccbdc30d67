package cli

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-mms/fault"
	"github.com/cwbudde/algo-mms/internal/analysis"
	"github.com/cwbudde/algo-mms/internal/media"
	"github.com/cwbudde/algo-mms/internal/testutil"
)

func TestFormatMetric(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"plain", formatMetric(-3.14159, 1, "dB"), "-3.1 dB"},
		{"nan", formatMetric(math.NaN(), 1, "dB"), MissingValue},
		{"inf", formatMetric(math.Inf(-1), 1, "dB"), MissingValue},
		{"signed positive", formatSigned(2.5, 1, "dB"), "+2.5 dB"},
		{"signed zero", formatSigned(0, 0, "Hz"), "+0 Hz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestFiltersTableListsCatalog(t *testing.T) {
	out := FiltersTable(media.Describe(nil))

	for _, id := range []string{"grayscale", "upscale", "gainCompressor", "denoiseDelay", "car"} {
		assert.Contains(t, out, id)
	}

	assert.Contains(t, out, "alpha=0.3 float [0,1)")
	assert.Contains(t, out, "delay_ms=100 int [0,10000] ms")
}

func TestComparisonTable(t *testing.T) {
	x := testutil.Sine(440, 16000, 0.5, 16000)
	in := testutil.Buffer(t, 16000, x)
	out := testutil.Buffer(t, 16000, testutil.DC(0, len(x)))

	c, err := analysis.Compare(in, out)
	require.NoError(t, err)

	table := ComparisonTable(c)
	assert.Contains(t, table, "Peak")
	assert.Contains(t, table, "-6.0 dBFS")
	assert.Contains(t, table, "-240.0 dBFS")
	assert.Equal(t, 4, strings.Count(table, "Centroid")+strings.Count(table, "Crest")+strings.Count(table, "RMS")+strings.Count(table, "Peak"))
}

func TestFormatError(t *testing.T) {
	err := fault.StateConflict("session.apply", "no asset uploaded")
	assert.Contains(t, FormatError(err), "[StateConflict] session.apply: no asset uploaded")
	assert.Equal(t, "boom", FormatError(errors.New("boom")))
}
