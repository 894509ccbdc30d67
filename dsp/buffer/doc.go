// Package buffer provides the multichannel audio buffer threaded through the
// filter pipeline.
//
// A [Buffer] is a set of equal-length channels sharing one sample rate. Mono
// is simply a one-channel buffer, so effects never branch on channel count.
// Operations that transform a buffer return a freshly allocated one; the
// receiver is never mutated, which keeps pipeline stages free of aliasing.
package buffer
