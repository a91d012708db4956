// Package dither quantizes float samples to integer PCM codes with optional
// dither noise and first-order error-feedback noise shaping.
package dither

import "fmt"

// DitherType selects the probability distribution of the dither noise.
type DitherType int

const (
	// DitherNone rounds without noise.
	DitherNone DitherType = iota
	// DitherRectangular adds uniform noise in (-a, a).
	DitherRectangular
	// DitherTriangular adds triangular (TPDF) noise in (-a, a).
	DitherTriangular

	ditherTypeCount
)

var ditherTypeNames = [ditherTypeCount]string{"None", "Rectangular", "Triangular"}

// String returns the name of the dither type.
func (dt DitherType) String() string {
	if dt.Valid() {
		return ditherTypeNames[dt]
	}

	return fmt.Sprintf("DitherType(%d)", int(dt))
}

// Valid reports whether dt is a known dither type.
func (dt DitherType) Valid() bool {
	return dt >= 0 && dt < ditherTypeCount
}
