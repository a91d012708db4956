// Package granular implements a granular reverb and pitch shifter.
//
// The [Engine] captures Hann-windowed grains of a mono input into a ring of
// grain slots, optionally resamples each completed grain to shift its
// pitch, and scatters many delayed, attenuated copies of every grain sample
// into a stereo circular canvas. The canvas is read back as the wet signal
// and mixed with the dry input.
//
// Scatter positions and weights come from [RandomTables], generated once
// from an explicit seed, so two engines built with the same options and fed
// the same input and parameter streams produce bit-identical output.
//
// All buffers are allocated by [New]. ProcessSample and ProcessBlock do not
// allocate. An Engine is not safe for concurrent use.
package granular
