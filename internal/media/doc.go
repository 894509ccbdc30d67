// Package media connects the filter chain to media files.
//
// Decoding, encoding and muxing of container formats is delegated to an
// external ffmpeg process through [Runner]. PCM WAV files are read and
// written in-process, so WAV-to-WAV processing works without ffmpeg.
// [Processor] runs a full job: video filter stages, audio extraction, the
// audio chain and the final mux, removing every intermediate file whether
// the job succeeds or not.
package media
