// Package biquad provides the second-order-section runtime used to apply
// IIR filter designs.
//
// Each set of [Coefficients] is run in Direct Form II Transposed. A
// [Cascade] runs them in series for higher orders and is what
// dsp/filter/design returns. [Cascade.Filter] always starts from zero
// state, so applying the same cascade to two buffers never leaks memory from
// one into the other.
package biquad
