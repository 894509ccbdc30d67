package media

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-mms/dsp/buffer"
	"github.com/cwbudde/algo-mms/internal/testutil"
)

func TestWAVRoundTrip(t *testing.T) {
	for _, depth := range []int{16, 24} {
		in := testutil.Buffer(t, 22050, testutil.Sine(440, 22050, 0.8, 512), testutil.Noise(4, 0.5, 512))
		path := filepath.Join(t.TempDir(), "tone.wav")

		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, WriteWAV(f, in, depth))
		require.NoError(t, f.Close())

		out, err := ReadWAVFile(path)
		require.NoError(t, err, "depth %d", depth)

		assert.Equal(t, 22050, out.SampleRate())
		assert.Equal(t, 2, out.NumChannels())

		step := 1.0 / float64(int(1)<<(depth-1))
		testutil.RequireBufferNearlyEqual(t, out, in, step)
	}
}

func TestWAVFileClipsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loud.wav")
	in, err := buffer.Mono(8000, []float64{2, -2, 0.5})
	require.NoError(t, err)

	require.NoError(t, WriteWAVFile(path, in))

	out, err := ReadWAVFile(path)
	require.NoError(t, err)

	got := out.Channel(0)
	assert.InDelta(t, 32767.0/32768, got[0], 1e-12)
	assert.InDelta(t, -1, got[1], 1e-12)
	assert.InDelta(t, 0.5, got[2], 1e-12)
}

func TestReadWAVRejectsGarbage(t *testing.T) {
	_, err := ReadWAV(bytes.NewReader([]byte("definitely not a riff header")))
	assert.ErrorIs(t, err, ErrNotWAV)
}

func TestWriteWAVRejectsDepth(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "x.wav"))
	require.NoError(t, err)
	defer f.Close()

	in, err := buffer.Mono(8000, []float64{0})
	require.NoError(t, err)

	assert.ErrorIs(t, WriteWAV(f, in, 12), ErrUnsupportedWAV)
}
