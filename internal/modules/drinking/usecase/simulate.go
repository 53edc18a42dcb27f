package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mugrush/internal/modules/drinking/domain"
	"mugrush/internal/modules/drinking/dto"
	apperrors "mugrush/internal/platform/errors"
)

// cancelCheckTicks is how often the simulation loop polls the context.
const cancelCheckTicks = 60

// bot plays from the same snapshot a renderer sees.
type bot struct {
	rng        domain.Random
	reaction   float64
	missRate   float64
	wobbleSeen bool
	wobbleMiss bool
}

func (b *bot) keys(snap domain.Snapshot, dt float64) domain.Input {
	in := domain.Input{}
	if snap.Phase == domain.PhaseRacing {
		next := snap.TimeCounter + dt
		if next > snap.WindowOpensAt+b.reaction || next+dt >= snap.TimeLimit {
			in[domain.KeyAction] = true
		}
	}
	if snap.WobblePhase != domain.WobbleAwaitingResponse {
		b.wobbleSeen = false
		return in
	}
	if !b.wobbleSeen {
		b.wobbleSeen = true
		b.wobbleMiss = b.rng.Float64Range(0, 1) < b.missRate
	}
	if snap.WobbleCounter >= b.reaction {
		correct, incorrect := snap.WobbleSide.Keys()
		if b.wobbleMiss {
			in[incorrect] = true
		} else {
			in[correct] = true
		}
	}
	return in
}

func (i *Interactor) Simulate(ctx context.Context, input dto.SimulateInput) (dto.RunOutput, error) {
	defaults := dto.DefaultSimulateInput()
	if input.TicksPerSecond == 0 {
		input.TicksPerSecond = defaults.TicksPerSecond
	}
	if input.MaxSeconds == 0 {
		input.MaxSeconds = defaults.MaxSeconds
	}
	if input.TicksPerSecond < 0 || input.ReactionSeconds < 0 || input.MaxSeconds < 0 {
		return dto.RunOutput{}, fmt.Errorf("%w: simulation parameters must not be negative", apperrors.ErrInvalidInput)
	}
	if input.MissRate < 0 || input.MissRate > 1 {
		return dto.RunOutput{}, fmt.Errorf("%w: miss rate must be within [0, 1]", apperrors.ErrInvalidInput)
	}

	settings, err := i.settings.Load(ctx)
	if err != nil {
		return dto.RunOutput{}, err
	}
	run, session, err := i.svc.Start(settings, input.Seed, nil)
	if err != nil {
		return dto.RunOutput{}, err
	}
	player := &bot{rng: i.svc.Bot(run.Seed), reaction: input.ReactionSeconds, missRate: input.MissRate}
	dt := 1 / float64(input.TicksPerSecond)
	maxTicks := int(input.MaxSeconds * float64(input.TicksPerSecond))

	i.logger.Debug("simulation started", zap.String("run_id", run.ID), zap.Int64("seed", run.Seed))
	for tick := 0; tick < maxTicks && !session.Over(); tick++ {
		if tick%cancelCheckTicks == 0 {
			if err := ctx.Err(); err != nil {
				return dto.RunOutput{}, err
			}
		}
		if err := session.Tick(dt, player.keys(session.Snapshot(), dt)); err != nil {
			break
		}
	}

	outcome := domain.OutcomeAbandoned
	switch {
	case session.Err() != nil:
		outcome = domain.OutcomeAborted
	case session.Over():
		outcome = domain.OutcomeCompleted
	}
	run, err = i.svc.Finish(ctx, run, session, outcome)
	if err != nil {
		return dto.RunOutput{}, err
	}
	i.logger.Info("simulation finished",
		zap.String("run_id", run.ID),
		zap.String("outcome", string(run.Outcome)),
		zap.Int("staggers", run.Staggers),
		zap.Float64("game_seconds", run.GameSeconds),
	)
	return toRunOutput(run), nil
}
