// Package resample provides band-limited windowed-sinc resampling of a
// finite sample sequence to an arbitrary new length.
//
// The kernel is Lanczos with radius 3 by default. When shrinking a
// sequence, the kernel is widened by the inverse of the length ratio so it
// doubles as the anti-aliasing low-pass; when stretching, it interpolates.
// Each output sample is normalised by the sum of the kernel weights that
// contributed to it, so a constant input stays constant at the edges.
//
// Common workflows:
//   - NewLanczos(opts...) then Process(dst, src) for allocation-free use
//   - Resample(src, destLen, opts...) as a one-shot helper
package resample
