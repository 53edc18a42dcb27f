package usecase

import (
	"fmt"

	"mugrush/internal/modules/drinking/domain"
	"mugrush/internal/modules/drinking/dto"
	apperrors "mugrush/internal/platform/errors"
)

func toRunOutput(run domain.Run) dto.RunOutput {
	return dto.RunOutput{
		ID:            run.ID,
		Seed:          run.Seed,
		Outcome:       string(run.Outcome),
		StartedAt:     run.StartedAt,
		EndedAt:       run.EndedAt,
		Mugs:          run.Mugs,
		Chugs:         run.Chugs,
		Attempts:      run.Attempts,
		Misses:        run.Misses,
		Staggers:      run.Staggers,
		WobblesPassed: run.WobblesPassed,
		WobblesFailed: run.WobblesFailed,
		BestStreak:    run.BestStreak,
		MinTimeLimit:  run.MinTimeLimit,
		GameSeconds:   run.GameSeconds,
		Error:         run.Error,
		JournalPath:   run.JournalPath,
	}
}

func toSettingsOutput(path string, s domain.Settings) dto.SettingsOutput {
	return dto.SettingsOutput{
		Path:              path,
		BaseTimeLimit:     s.BaseTimeLimit,
		CutoffMultiplier:  s.CutoffMultiplier,
		DrinkTimingLimit:  s.DrinkTimingLimit,
		ChugsPerMug:       s.ChugsPerMug,
		MugTarget:         s.MugTarget,
		StartupDelay:      s.StartupDelay,
		NewMugDelay:       s.NewMugDelay,
		FailedChugDelay:   s.FailedChugDelay,
		StaggerDelay:      s.StaggerDelay,
		WobbleDuration:    s.WobbleDuration,
		WobbleDelayMin:    s.WobbleDelayMin,
		WobbleDelayMax:    s.WobbleDelayMax,
		ChugsBeforeWobble: s.ChugsBeforeWobble,
		ChainLimit:        s.ChainLimit,
	}
}

func toInput(keys []string) (domain.Input, error) {
	in := make(domain.Input, len(keys))
	for _, k := range keys {
		switch k {
		case dto.KeyAction:
			in[domain.KeyAction] = true
		case dto.KeyLeft:
			in[domain.KeyLeft] = true
		case dto.KeyRight:
			in[domain.KeyRight] = true
		default:
			return nil, fmt.Errorf("%w: unknown key %q", apperrors.ErrInvalidInput, k)
		}
	}
	return in, nil
}
