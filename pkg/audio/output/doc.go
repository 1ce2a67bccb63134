// ABOUTME: Audio output package for playing PCM streams
// ABOUTME: Provides Output/Line interfaces, oto, malgo and in-memory backends
// Package output provides audio playback.
//
// An Output acquires a Line for one PCM stream. The Line exposes
// start/stop/close, an IsRunning query, and a Done channel that is closed
// once the stream has drained. Play wraps the whole lifecycle in a single
// blocking call that honours context cancellation and always closes the line.
//
// Backends:
//   - oto (default): 8-bit unsigned, 16-bit signed LE, 32-bit float LE
//   - malgo: 8-bit unsigned, 16/24/32-bit signed LE, 32-bit float LE
//   - memory: no device, collects the PCM bytes (tests and dry runs)
//
// Example:
//
//	out, err := output.New("oto", 1.0)
//	defer out.Close()
//	err = output.Play(ctx, out, audio.DefaultFormat(), bytes.NewReader(pcm))
package output
