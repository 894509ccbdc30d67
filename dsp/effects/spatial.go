package effects

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-mms/dsp/buffer"
	"github.com/cwbudde/algo-mms/dsp/filter/design"
)

// Band and cutoff frequencies of the spatial simulations, in Hz.
const (
	PhoneLowHz  = 800.0
	PhoneHighHz = 12000.0
	CarCutoffHz = 10000.0
)

const (
	opPhone = "effects.phone"
	opCar   = "effects.car"
)

// PhoneFilter folds the input to mono by averaging all channels, scales it
// by (1 - sideGain) and band-limits it to PhoneLowHz..PhoneHighHz with a
// Butterworth bandpass of the given order. The result is always mono.
func PhoneFilter(in *buffer.Buffer, sideGain float64, order int) (*buffer.Buffer, error) {
	if err := requireFinite(opPhone, "side_gain", sideGain); err != nil {
		return nil, err
	}

	bp, err := design.Butterworth(float64(in.SampleRate()), PhoneLowHz, PhoneHighHz, order, design.Bandpass)
	if err != nil {
		return nil, err
	}

	mono := in.Downmix()
	samples := mono.Channel(0)
	vecmath.ScaleBlockInPlace(samples, 1-sideGain)

	return filterChannels(mono, bp), nil
}

// CarFilter widens the stereo image by sideGainDB and lowpasses both
// channels at CarCutoffHz. Mono input is duplicated first; only the first
// two channels of wider input are used. The result is always stereo.
func CarFilter(in *buffer.Buffer, sideGainDB float64, order int) (*buffer.Buffer, error) {
	if err := requireFinite(opCar, "side_gain_db", sideGainDB); err != nil {
		return nil, err
	}

	lp, err := design.Butterworth(float64(in.SampleRate()), 0, CarCutoffHz, order, design.Lowpass)
	if err != nil {
		return nil, err
	}

	return filterChannels(MidSideWiden(in, DBToLinear(sideGainDB)), lp), nil
}

// MidSideWiden returns the stereo pair (mid + g*side, mid - g*side) with
// mid = (L+R)/2 and side = (L-R)/2. With g = 1 it reproduces L and R.
func MidSideWiden(in *buffer.Buffer, g float64) *buffer.Buffer {
	st := in.Stereo()
	l, r := st.Channel(0), st.Channel(1)
	n := len(l)

	mid := make([]float64, n)
	side := make([]float64, n)
	vecmath.AddMulBlock(mid, l, r, 0.5)

	for i := range side {
		side[i] = (l[i] - r[i]) * 0.5 * g
	}

	left := make([]float64, n)
	right := make([]float64, n)
	vecmath.AddBlock(left, mid, side)

	for i := range right {
		right[i] = mid[i] - side[i]
	}

	out, _ := buffer.Wrap(in.SampleRate(), left, right)

	return out
}
