// Package effects implements the offline signal operations of the filter
// pipeline.
//
// Every operation takes a *buffer.Buffer and returns a new one; inputs are
// never modified and no state survives between calls. Channels are processed
// independently except in [PhoneFilter] and [CarFilter], which combine them.
//
//   - PreEmphasis: first-order difference y[n] = x[n] - a*x[n-1].
//   - GainCompress: soft-knee compression towards a limiter ceiling.
//   - VoiceEnhancement: pre-emphasis followed by an 800-6000 Hz bandpass.
//   - AdaptiveDenoise: local Wiener filter over a 3-sample window.
//   - Delay, DenoiseDelay: single-tap echo with wrap-around for long delays.
//   - PhoneFilter, CarFilter: mid/side spatial simulations.
//
// Parameter errors are fault.KindInvalidParameter; cutoff problems raised by
// the Butterworth designer are fault.KindFilterDesign.
package effects
