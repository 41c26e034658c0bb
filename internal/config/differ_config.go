package config

// DifferConfig defines configuration for the text/DOM/API differs
type DifferConfig struct {
	// MaxSequenceLength caps the Myers diff input; longer sequences degrade
	// to a length-only change report.
	MaxSequenceLength int `json:"max_sequence_length,omitempty" yaml:"max_sequence_length,omitempty" validate:"gte=0"`
	// MaxDOMWalkDepth bounds the parallel CSS tree walk.
	MaxDOMWalkDepth int `json:"max_dom_walk_depth,omitempty" yaml:"max_dom_walk_depth,omitempty" validate:"gte=1"`
	// MaxBodyDiffDepth bounds the recursive JSON body diff.
	MaxBodyDiffDepth int `json:"max_body_diff_depth,omitempty" yaml:"max_body_diff_depth,omitempty" validate:"gte=1"`
	// PositionTolerancePx is the pixel delta below which layout moves are ignored.
	PositionTolerancePx float64 `json:"position_tolerance_px,omitempty" yaml:"position_tolerance_px,omitempty" validate:"gte=0"`
	// ColorChannelThreshold is the per-channel delta (0-255) below which two
	// colours are considered perceptually equal.
	ColorChannelThreshold int `json:"color_channel_threshold,omitempty" yaml:"color_channel_threshold,omitempty" validate:"gte=0,lte=255"`
}

// NewDefaultDifferConfig creates default differ configuration
func NewDefaultDifferConfig() DifferConfig {
	return DifferConfig{
		MaxSequenceLength:     DefaultMaxDiffSequenceLength,
		MaxDOMWalkDepth:       DefaultMaxDOMWalkDepth,
		MaxBodyDiffDepth:      DefaultMaxBodyDiffDepth,
		PositionTolerancePx:   DefaultPositionTolerancePx,
		ColorChannelThreshold: DefaultColorChannelThreshold,
	}
}

// CompareConfig defines configuration for the compare engine
type CompareConfig struct {
	// ScreenConcurrency caps simultaneous screen comparisons within a request.
	ScreenConcurrency int `json:"screen_concurrency,omitempty" yaml:"screen_concurrency,omitempty" validate:"gte=1"`
}

// NewDefaultCompareConfig creates default compare engine configuration
func NewDefaultCompareConfig() CompareConfig {
	return CompareConfig{
		ScreenConcurrency: DefaultScreenCompareConcurrency,
	}
}
