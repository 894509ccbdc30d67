package analysis

import (
	"errors"
	"time"

	"github.com/cwbudde/algo-mms/dsp/buffer"
)

// Channel combines level and shape of one channel.
type Channel struct {
	Level Level `json:"level"`
	Shape Shape `json:"shape"`
}

// Report describes a whole buffer.
type Report struct {
	SampleRate int           `json:"sample_rate"`
	Frames     int           `json:"frames"`
	Duration   time.Duration `json:"duration"`
	Channels   []Channel     `json:"channels"`
}

// Analyze measures every channel of b.
func Analyze(b *buffer.Buffer) (Report, error) {
	if b == nil {
		return Report{}, errors.New("analysis: nil buffer")
	}

	if err := b.Validate(); err != nil {
		return Report{}, err
	}

	r := Report{
		SampleRate: b.SampleRate(),
		Frames:     b.Len(),
		Duration:   b.Duration(),
		Channels:   make([]Channel, b.NumChannels()),
	}

	size := min(DefaultFFTSize, nextPow2(b.Len()))

	for i := range r.Channels {
		x := b.Channel(i)
		r.Channels[i].Level = MeasureLevel(x)

		if len(x) < 2 {
			continue
		}

		mag, err := Spectrum(x, size)
		if err != nil {
			return Report{}, err
		}

		r.Channels[i].Shape = MeasureShape(mag, float64(b.SampleRate()))
	}

	return r, nil
}

// Delta is the change from input to output on one channel.
type Delta struct {
	PeakDB        float64 `json:"peak_db"`
	RMSDB         float64 `json:"rms_db"`
	CrestDB       float64 `json:"crest_db"`
	CentroidShift float64 `json:"centroid_shift_hz"`
}

// Comparison pairs the reports of a filter's input and output.
type Comparison struct {
	Input  Report  `json:"input"`
	Output Report  `json:"output"`
	Deltas []Delta `json:"deltas"`
}

// Compare analyzes in and out. Deltas cover the channels both share, so a
// stereo input folded to mono compares channel 0 only.
func Compare(in, out *buffer.Buffer) (Comparison, error) {
	ri, err := Analyze(in)
	if err != nil {
		return Comparison{}, err
	}

	ro, err := Analyze(out)
	if err != nil {
		return Comparison{}, err
	}

	n := min(len(ri.Channels), len(ro.Channels))
	c := Comparison{Input: ri, Output: ro, Deltas: make([]Delta, n)}

	for i := range n {
		a, b := ri.Channels[i], ro.Channels[i]
		c.Deltas[i] = Delta{
			PeakDB:        b.Level.PeakDB - a.Level.PeakDB,
			RMSDB:         b.Level.RMSDB - a.Level.RMSDB,
			CrestDB:       b.Level.CrestDB - a.Level.CrestDB,
			CentroidShift: b.Shape.Centroid - a.Shape.Centroid,
		}
	}

	return c, nil
}

func nextPow2(n int) int {
	p := 2
	for p < n {
		p <<= 1
	}

	return p
}
