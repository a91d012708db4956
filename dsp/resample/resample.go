package resample

import (
	"errors"
	"math"
)

var (
	// ErrEmptySource indicates a zero-length source sequence.
	ErrEmptySource = errors.New("resample: empty source")
	// ErrEmptyDest indicates a zero-length destination sequence.
	ErrEmptyDest = errors.New("resample: empty destination")
	// ErrInvalidRadius indicates a non-positive kernel radius.
	ErrInvalidRadius = errors.New("resample: kernel radius must be > 0")
	// ErrInvalidBlur indicates a non-positive or non-finite blur factor.
	ErrInvalidBlur = errors.New("resample: blur must be finite and > 0")
	// ErrShortWeights indicates a weight buffer smaller than the kernel window.
	ErrShortWeights = errors.New("resample: weight buffer too short")
)

// DefaultRadius is the Lanczos lobe count used unless WithRadius is given.
const DefaultRadius = 3

// minSupport keeps the window at least one sample wide for extreme ratios.
const minSupport = 0.5 + 1e-12

type config struct {
	radius int
	blur   float64
}

// Option configures a Lanczos resampler.
type Option func(*config)

// WithRadius sets the number of kernel lobes on each side of the center.
func WithRadius(radius int) Option {
	return func(cfg *config) {
		cfg.radius = radius
	}
}

// WithBlur scales the kernel width. Values above 1 soften the output.
func WithBlur(blur float64) Option {
	return func(cfg *config) {
		cfg.blur = blur
	}
}

func defaultConfig() config {
	return config{
		radius: DefaultRadius,
		blur:   1,
	}
}

// Lanczos resamples finite sequences with a Lanczos windowed-sinc kernel.
//
// Process does not allocate; a single Lanczos may be reused for any pair of
// lengths. It holds no per-call state but is not meant for concurrent use
// with different options.
type Lanczos struct {
	radius int
	blur   float64
}

// NewLanczos creates a resampler with the given options.
func NewLanczos(opts ...Option) (*Lanczos, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.radius <= 0 {
		return nil, ErrInvalidRadius
	}

	if cfg.blur <= 0 || math.IsNaN(cfg.blur) || math.IsInf(cfg.blur, 0) {
		return nil, ErrInvalidBlur
	}

	return &Lanczos{radius: cfg.radius, blur: cfg.blur}, nil
}

// Radius returns the kernel radius.
func (l *Lanczos) Radius() int { return l.radius }

// Kernel evaluates the Lanczos kernel of the given radius at t.
func Kernel(t float64, radius int) float64 {
	if t == 0 {
		return 1
	}

	r := float64(radius)
	if t <= -r || t >= r {
		return 0
	}

	px := math.Pi * t

	return r * math.Sin(px) * math.Sin(px/r) / (px * px)
}

// geometry holds the per-call constants shared by every output sample.
type geometry struct {
	factor  float64
	scale   float64
	support float64
	srcLen  int
}

func (l *Lanczos) geometry(srcLen, destLen int) geometry {
	factor := float64(destLen) / float64(srcLen)
	scale := math.Min(factor, 1) / l.blur
	support := float64(l.radius) / scale

	if support <= 0.5 {
		support = minSupport
		scale = 1
	}

	return geometry{factor: factor, scale: scale, support: support, srcLen: srcLen}
}

// window returns the source range [start, stop) feeding output x, and the
// kernel argument offset of the first tap.
func (g geometry) window(x int) (start, stop int, offset float64) {
	center := (float64(x) + 0.5) / g.factor
	start = int(math.Max(center-g.support+0.5, 0))
	stop = int(math.Min(center+g.support+0.5, float64(g.srcLen)))

	return start, stop, float64(start) - center + 0.5
}

// Process resamples src into dst, producing len(dst) samples.
func (l *Lanczos) Process(dst, src []float64) error {
	if len(src) == 0 {
		return ErrEmptySource
	}

	if len(dst) == 0 {
		return ErrEmptyDest
	}

	g := l.geometry(len(src), len(dst))

	for x := range dst {
		start, stop, s := g.window(x)

		var sum, density float64

		for n := start; n < stop; n++ {
			w := Kernel(s*g.scale, l.radius)
			density += w
			sum += src[n] * w
			s++
		}

		if density != 0 && density != 1 {
			sum /= density
		}

		dst[x] = sum
	}

	return nil
}

// MaxTaps returns an upper bound on the number of source samples that feed
// one output sample when resampling srcLen samples to destLen samples.
func (l *Lanczos) MaxTaps(srcLen, destLen int) int {
	if srcLen <= 0 || destLen <= 0 {
		return 0
	}

	g := l.geometry(srcLen, destLen)

	n := 5 + int(2*g.support)
	if n > srcLen {
		n = srcLen
	}

	return n
}

// Contributions writes the normalised kernel weights used for output
// sample x into weights and returns the first source index they apply to,
// the tap count, and the raw weight sum before normalisation. When the raw
// sum is 0 or exactly 1 the weights are left as evaluated, mirroring Process.
func (l *Lanczos) Contributions(weights []float64, srcLen, destLen, x int) (start, n int, density float64, err error) {
	if srcLen <= 0 {
		return 0, 0, 0, ErrEmptySource
	}

	if destLen <= 0 {
		return 0, 0, 0, ErrEmptyDest
	}

	g := l.geometry(srcLen, destLen)
	start, stop, s := g.window(x)

	n = stop - start
	if n < 0 {
		n = 0
	}

	if len(weights) < n {
		return 0, 0, 0, ErrShortWeights
	}

	for i := range n {
		weights[i] = Kernel(s*g.scale, l.radius)
		density += weights[i]
		s++
	}

	if density != 0 && density != 1 {
		for i := range n {
			weights[i] /= density
		}
	}

	return start, n, density, nil
}

// Resample converts src to a new slice of destLen samples as a one-shot
// helper. It allocates the output.
func Resample(src []float64, destLen int, opts ...Option) ([]float64, error) {
	l, err := NewLanczos(opts...)
	if err != nil {
		return nil, err
	}

	if destLen <= 0 {
		return nil, ErrEmptyDest
	}

	out := make([]float64, destLen)
	if err := l.Process(out, src); err != nil {
		return nil, err
	}

	return out, nil
}
