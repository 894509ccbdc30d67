// Package design derives Butterworth IIR coefficients for the filter
// pipeline.
//
// [Butterworth] returns a [biquad.Cascade] of second-order sections for
// lowpass, highpass and bandpass responses. Cutoffs are normalised by the
// Nyquist frequency and prewarped for the bilinear transform, so the designs
// agree with the classic analog-prototype method: a lowpass or highpass of
// order N has N poles, a bandpass of order N has 2N poles and unity gain at
// the geometric centre of its band.
//
// Invalid cutoffs are reported as fault.KindFilterDesign before any sample is
// processed.
package design
