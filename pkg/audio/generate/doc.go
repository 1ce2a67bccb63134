// ABOUTME: Waveform generation package
// ABOUTME: Synthesizes normalized sample buffers for playback
// Package generate synthesizes audio waveforms.
//
// Generators return normalized float64 samples in [-1, 1]; use the encode
// package to turn them into PCM bytes, or Tone to do both at once.
//
// Example:
//
//	samples, err := generate.SineWave(130, 3, 44100)
//	pcm := encode.EncodePCM16LE(samples)
package generate
