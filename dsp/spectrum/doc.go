// Package spectrum provides frequency-domain measurements used to inspect
// rendered audio and grains: a Hann-windowed FFT magnitude analyzer and a
// single-bin Goertzel detector.
package spectrum
