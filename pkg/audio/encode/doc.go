// ABOUTME: Audio encoder package for encoding samples to PCM and WAV
// ABOUTME: Provides Encoder interface, PCM quantization and a WAV writer
// Package encode provides encoders from normalized samples to wire formats.
//
// Supports: PCM (16-bit and 24-bit signed, little- or big-endian, mono) and
// 16-bit WAV files.
//
// All encoders accept float64 samples in [-1, 1]. Out-of-range samples are
// clamped before quantization, never wrapped.
//
// Example:
//
//	pcm := encode.EncodePCM16LE(samples)
//
//	encoder, err := encode.NewPCM(format)
//	data, err := encoder.Encode(samples)
package encode
