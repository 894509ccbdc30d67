// Package analysis measures level and spectral shape of audio buffers so
// processed output can be compared against its input.
package analysis

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Level holds time-domain statistics of one channel.
type Level struct {
	Peak          float64 `json:"peak"`
	PeakDB        float64 `json:"peak_db"`
	RMS           float64 `json:"rms"`
	RMSDB         float64 `json:"rms_db"`
	Crest         float64 `json:"crest"`
	CrestDB       float64 `json:"crest_db"`
	DC            float64 `json:"dc"`
	ZeroCrossings int     `json:"zero_crossings"`
}

// floorDB stands in for -Inf so reports stay JSON encodable.
const floorDB = -240.0

// AmpToDB converts a linear amplitude to dBFS, clamped at -240 dB.
func AmpToDB(v float64) float64 {
	if v <= 0 {
		return floorDB
	}

	return math.Max(20*math.Log10(v), floorDB)
}

// MeasureLevel computes the time-domain statistics of x.
func MeasureLevel(x []float64) Level {
	if len(x) == 0 {
		return Level{PeakDB: floorDB, RMSDB: floorDB}
	}

	l := Level{
		Peak:          vecmath.MaxAbs(x),
		RMS:           RMS(x),
		DC:            vecmath.Sum(x) / float64(len(x)),
		ZeroCrossings: ZeroCrossings(x),
	}

	l.PeakDB = AmpToDB(l.Peak)
	l.RMSDB = AmpToDB(l.RMS)

	if l.RMS > 0 {
		l.Crest = l.Peak / l.RMS
		l.CrestDB = l.PeakDB - l.RMSDB
	}

	return l
}

// RMS returns the root mean square of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	return math.Sqrt(vecmath.DotProduct(x, x) / float64(len(x)))
}

// ZeroCrossings counts sign changes in x. Zeros do not count as a sign.
func ZeroCrossings(x []float64) int {
	n := 0
	prev := 0.0

	for _, v := range x {
		if v == 0 {
			continue
		}

		if prev != 0 && (v > 0) != (prev > 0) {
			n++
		}

		prev = v
	}

	return n
}
