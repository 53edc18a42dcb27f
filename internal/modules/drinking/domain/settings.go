package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidSettings = errors.New("invalid settings")

// Settings are the tuning constants of one session. They never change while
// a session runs.
type Settings struct {
	BaseTimeLimit     float64 `yaml:"base_time_limit"`
	CutoffMultiplier  float64 `yaml:"cutoff_multiplier"`
	DrinkTimingLimit  float64 `yaml:"drink_timing_limit"`
	ChugsPerMug       int     `yaml:"chugs_per_mug"`
	MugTarget         int     `yaml:"mug_target"`
	StartupDelay      float64 `yaml:"startup_delay"`
	NewMugDelay       float64 `yaml:"new_mug_delay"`
	FailedChugDelay   float64 `yaml:"failed_chug_delay"`
	StaggerDelay      float64 `yaml:"stagger_delay"`
	WobbleDuration    float64 `yaml:"wobble_duration"`
	WobbleDelayMin    float64 `yaml:"wobble_delay_min"`
	WobbleDelayMax    float64 `yaml:"wobble_delay_max"`
	ChugsBeforeWobble int     `yaml:"chugs_before_wobble"`
	ChainLimit        int     `yaml:"chain_limit"`
}

func DefaultSettings() Settings {
	return Settings{
		BaseTimeLimit:     1.0,
		CutoffMultiplier:  0.12,
		DrinkTimingLimit:  0.6,
		ChugsPerMug:       10,
		MugTarget:         3,
		StartupDelay:      0.2,
		NewMugDelay:       1.0,
		FailedChugDelay:   0.3,
		StaggerDelay:      1.5,
		WobbleDuration:    0.5,
		WobbleDelayMin:    1.0,
		WobbleDelayMax:    4.0,
		ChugsBeforeWobble: 14,
		ChainLimit:        20,
	}
}

func (s Settings) Validate() error {
	switch {
	case s.BaseTimeLimit <= 0:
		return invalid("base_time_limit must be positive")
	case s.CutoffMultiplier < 0 || s.CutoffMultiplier > 0.3:
		return invalid("cutoff_multiplier must be within [0, 0.3]")
	case s.DrinkTimingLimit < 0 || s.DrinkTimingLimit > 1:
		return invalid("drink_timing_limit must be within [0, 1]")
	case s.ChugsPerMug < 1:
		return invalid("chugs_per_mug must be at least 1")
	case s.MugTarget < 1:
		return invalid("mug_target must be at least 1")
	case s.StartupDelay < 0, s.NewMugDelay < 0, s.FailedChugDelay < 0, s.StaggerDelay < 0:
		return invalid("delays must be non-negative")
	case s.WobbleDuration <= 0:
		return invalid("wobble_duration must be positive")
	case s.WobbleDelayMin < 0.5:
		return invalid("wobble_delay_min must be at least 0.5")
	case s.WobbleDelayMax < s.WobbleDelayMin:
		return invalid("wobble_delay_max must not be below wobble_delay_min")
	case s.ChugsBeforeWobble < 0:
		return invalid("chugs_before_wobble must be non-negative")
	case s.ChainLimit < 1:
		return invalid("chain_limit must be at least 1")
	}
	return nil
}

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidSettings, reason)
}
