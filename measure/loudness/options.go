package loudness

import "github.com/cwbudde/algo-grainverb/dsp/core"

// MeterConfig holds the sample rate, the channel count and the per-channel
// weights applied when channel powers are summed.
type MeterConfig struct {
	core.ProcessorConfig
	Channels int
	// Weights defaults to 1 for every channel. Surround channels are
	// usually weighted 1.41.
	Weights []float64
}

// MeterOption mutates a MeterConfig.
type MeterOption func(*MeterConfig)

// DefaultMeterConfig returns a stereo meter at the default sample rate.
func DefaultMeterConfig() MeterConfig {
	return MeterConfig{
		ProcessorConfig: core.DefaultProcessorConfig(),
		Channels:        2,
	}
}

// WithSampleRate sets the sample rate.
func WithSampleRate(sampleRate float64) MeterOption {
	return func(cfg *MeterConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithChannels sets the channel count.
func WithChannels(channels int) MeterOption {
	return func(cfg *MeterConfig) {
		if channels > 0 {
			cfg.Channels = channels
		}
	}
}

// WithChannelWeights sets the power weight of each channel. Missing
// entries default to 1.
func WithChannelWeights(weights ...float64) MeterOption {
	return func(cfg *MeterConfig) {
		cfg.Weights = append([]float64(nil), weights...)
	}
}

// ApplyMeterOptions applies zero or more options to the default config.
func ApplyMeterOptions(opts ...MeterOption) MeterConfig {
	cfg := DefaultMeterConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

func (cfg MeterConfig) weight(ch int) float64 {
	if ch < len(cfg.Weights) && cfg.Weights[ch] > 0 {
		return cfg.Weights[ch]
	}

	return 1
}
