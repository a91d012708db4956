package granular

const (
	// DefaultMaxGrainSize is the capacity of one grain slot in samples.
	DefaultMaxGrainSize = 44100
	// DefaultMaxReps is the maximum number of scattered copies per sample.
	DefaultMaxReps = 120
	// DefaultNumGrains is the number of slots in the grain ring.
	DefaultNumGrains = 300
	// DefaultCanvasSize is the canvas length in samples.
	DefaultCanvasSize = 88200
	// DefaultGrainSize is the power-on grain length.
	DefaultGrainSize = 4410
	// DefaultGainReps is the power-on repetition count.
	DefaultGainReps = 100
	// DefaultSeed seeds the scatter tables unless WithSeed is given.
	DefaultSeed = 1
	// DefaultSampleRate is used for tone filter design.
	DefaultSampleRate = 44100.0

	// FreezeFeedback replaces the feedback parameter while freeze is requested.
	FreezeFeedback = 0.95
	// FreezeThreshold is the dial value above which freeze is requested.
	FreezeThreshold = 50.0
	// ClipCeiling is the largest allowed |left output|.
	ClipCeiling = 0.8
)

type config struct {
	sampleRate   float64
	maxGrainSize int
	numGrains    int
	maxReps      int
	canvasSize   int
	seed         int64
	toneCutoff   float64
	tables       *RandomTables
}

// Option configures an Engine.
type Option func(*config)

func defaultConfig() config {
	return config{
		sampleRate:   DefaultSampleRate,
		maxGrainSize: DefaultMaxGrainSize,
		numGrains:    DefaultNumGrains,
		maxReps:      DefaultMaxReps,
		canvasSize:   DefaultCanvasSize,
		seed:         DefaultSeed,
	}
}

// WithSampleRate sets the sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *config) {
		cfg.sampleRate = sampleRate
	}
}

// WithMaxGrainSize sets the capacity of each grain slot.
func WithMaxGrainSize(n int) Option {
	return func(cfg *config) {
		cfg.maxGrainSize = n
	}
}

// WithNumGrains sets the number of grain slots.
func WithNumGrains(n int) Option {
	return func(cfg *config) {
		cfg.numGrains = n
	}
}

// WithMaxReps sets the maximum repetition count.
func WithMaxReps(n int) Option {
	return func(cfg *config) {
		cfg.maxReps = n
	}
}

// WithCanvasSize sets the canvas length.
func WithCanvasSize(n int) Option {
	return func(cfg *config) {
		cfg.canvasSize = n
	}
}

// WithSeed sets the scatter table seed.
func WithSeed(seed int64) Option {
	return func(cfg *config) {
		cfg.seed = seed
	}
}

// WithToneFilter enables a second-order Butterworth low-pass on the wet
// signal with the given cutoff in Hz. Zero disables it.
func WithToneFilter(cutoffHz float64) Option {
	return func(cfg *config) {
		cfg.toneCutoff = cutoffHz
	}
}

// WithTables supplies prebuilt scatter tables. Their dimensions must match
// the grain count, repetition count and canvas size. The engine keeps
// a reference; later Set calls take effect immediately.
func WithTables(t *RandomTables) Option {
	return func(cfg *config) {
		cfg.tables = t
	}
}
