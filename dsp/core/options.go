package core

// ProcessorConfig defines the host-side processing settings: audio rate,
// block size and the control-rate stride.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
	// ControlStride is the number of audio frames per control reading.
	ControlStride int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the settings of a 44.1 kHz host reading
// its controls once every 16 frames.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate:    44100,
		BlockSize:     128,
		ControlStride: 16,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithControlStride sets how many audio frames pass between control reads.
func WithControlStride(stride int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if stride > 0 {
			cfg.ControlStride = stride
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
