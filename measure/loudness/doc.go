// Package loudness measures programme loudness after ITU-R BS.1770 and
// EBU R128: K-weighted momentary (400 ms) and short-term (3 s) loudness,
// and gated integrated loudness, all in LUFS.
package loudness
