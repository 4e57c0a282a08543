package srs

import (
	"testing"
)

func TestNewDefaultParams(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	if params.MinEaseFactor != 1.3 {
		t.Errorf("Expected MinEaseFactor 1.3, got %f", params.MinEaseFactor)
	}
	if params.MaxEaseFactor != 2.5 {
		t.Errorf("Expected MaxEaseFactor 2.5, got %f", params.MaxEaseFactor)
	}
	if params.SuccessBonus != 0.1 {
		t.Errorf("Expected SuccessBonus 0.1, got %f", params.SuccessBonus)
	}
	if params.FailurePenalty != 0.2 {
		t.Errorf("Expected FailurePenalty 0.2, got %f", params.FailurePenalty)
	}
	if params.ResetInterval != 1 {
		t.Errorf("Expected ResetInterval 1, got %d", params.ResetInterval)
	}
	if params.MasteredInterval != 30 {
		t.Errorf("Expected MasteredInterval 30, got %d", params.MasteredInterval)
	}
	if params.StreakScanDays != 365 {
		t.Errorf("Expected StreakScanDays 365, got %d", params.StreakScanDays)
	}
	if params.DefaultQueueSize != 20 {
		t.Errorf("Expected DefaultQueueSize 20, got %d", params.DefaultQueueSize)
	}
}

func TestNewParams(t *testing.T) {
	t.Parallel()

	params := NewParams(ParamsConfig{
		MasteredInterval: 21,
		DefaultQueueSize: 50,
	})

	if params.MasteredInterval != 21 {
		t.Errorf("Expected MasteredInterval override 21, got %d", params.MasteredInterval)
	}
	if params.DefaultQueueSize != 50 {
		t.Errorf("Expected DefaultQueueSize override 50, got %d", params.DefaultQueueSize)
	}

	// Zero values keep defaults
	if params.MinEaseFactor != 1.3 || params.SuccessBonus != 0.1 || params.StreakScanDays != 365 {
		t.Errorf("Expected unset fields to keep defaults, got %+v", params)
	}
}
