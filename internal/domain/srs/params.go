package srs

import (
	"github.com/phrazzld/neurodeck/internal/domain"
)

// Params defines all configurable parameters for the SRS algorithm
type Params struct {
	// Core limits
	MinEaseFactor float64
	MaxEaseFactor float64

	// Adjustments applied to the ease factor per response
	SuccessBonus   float64
	FailurePenalty float64

	// Interval assigned after an unknown response
	ResetInterval int

	// Cards at or above this interval count as mastered
	MasteredInterval int

	// Streak scanning stops this many days before today
	StreakScanDays int

	// Study session size used when the caller does not give one
	DefaultQueueSize int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance.
// Zero values keep the default.
type ParamsConfig struct {
	MinEaseFactor    float64
	MaxEaseFactor    float64
	SuccessBonus     float64
	FailurePenalty   float64
	ResetInterval    int
	MasteredInterval int
	StreakScanDays   int
	DefaultQueueSize int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor: domain.MinEaseFactor,
		MaxEaseFactor: domain.MaxEaseFactor,

		SuccessBonus:   0.1,
		FailurePenalty: 0.2,

		ResetInterval:    1,
		MasteredInterval: 30,
		StreakScanDays:   365,
		DefaultQueueSize: 20,
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	// Override core limits if provided
	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.MaxEaseFactor > 0 {
		params.MaxEaseFactor = config.MaxEaseFactor
	}

	// Override ease factor adjustments if provided
	if config.SuccessBonus > 0 {
		params.SuccessBonus = config.SuccessBonus
	}
	if config.FailurePenalty > 0 {
		params.FailurePenalty = config.FailurePenalty
	}

	// Override interval handling if provided
	if config.ResetInterval > 0 {
		params.ResetInterval = config.ResetInterval
	}
	if config.MasteredInterval > 0 {
		params.MasteredInterval = config.MasteredInterval
	}

	// Override aggregation and queue sizing if provided
	if config.StreakScanDays > 0 {
		params.StreakScanDays = config.StreakScanDays
	}
	if config.DefaultQueueSize > 0 {
		params.DefaultQueueSize = config.DefaultQueueSize
	}

	return params
}
