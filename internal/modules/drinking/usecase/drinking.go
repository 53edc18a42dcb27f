package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"mugrush/internal/modules/drinking/domain"
	"mugrush/internal/modules/drinking/dto"
	drinkingin "mugrush/internal/modules/drinking/port/in"
	drinkingout "mugrush/internal/modules/drinking/port/out"
	"mugrush/internal/modules/drinking/service"
	apperrors "mugrush/internal/platform/errors"
)

type activeRun struct {
	run     domain.Run
	session *domain.Session
	frame   *frameRecorder
}

type Interactor struct {
	mu       sync.Mutex
	svc      *service.RunService
	settings drinkingout.SettingsStore
	logger   *zap.Logger
	active   *activeRun
}

func NewInteractor(svc *service.RunService, settings drinkingout.SettingsStore, logger *zap.Logger) drinkingin.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{svc: svc, settings: settings, logger: logger.Named("drinking")}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.active != nil {
		return dto.StartOutput{}, apperrors.ErrRunInProgress
	}
	settings, err := i.settings.Load(ctx)
	if err != nil {
		return dto.StartOutput{}, err
	}
	frame := &frameRecorder{}
	run, session, err := i.svc.Start(settings, input.Seed, frame)
	if err != nil {
		return dto.StartOutput{}, err
	}
	i.active = &activeRun{run: run, session: session, frame: frame}
	i.logger.Info("run started", zap.String("run_id", run.ID), zap.Int64("seed", run.Seed))
	return dto.StartOutput{
		RunID:     run.ID,
		Seed:      run.Seed,
		StartedAt: run.StartedAt,
		Settings:  toSettingsOutput(i.settings.Path(), settings),
	}, nil
}

func (i *Interactor) Tick(ctx context.Context, input dto.TickInput) (dto.FrameOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.active == nil {
		return dto.FrameOutput{}, apperrors.ErrNoActiveRun
	}
	if input.DeltaSeconds < 0 {
		return dto.FrameOutput{}, fmt.Errorf("%w: negative delta", apperrors.ErrInvalidInput)
	}
	keys, err := toInput(input.Keys)
	if err != nil {
		return dto.FrameOutput{}, err
	}

	active := i.active
	tickErr := active.session.Tick(input.DeltaSeconds, keys)
	frame := active.frame.render(active.run.ID, active.session)

	switch {
	case errors.Is(tickErr, domain.ErrChainLimit):
		i.logger.Error("run aborted", zap.String("run_id", active.run.ID), zap.Error(tickErr))
		frame.Events = append(frame.Events, dto.EventAborted)
		out, err := i.finish(ctx, domain.OutcomeAborted)
		if err != nil {
			return frame, errors.Join(tickErr, err)
		}
		frame.Run = &out
		return frame, tickErr
	case tickErr != nil:
		return frame, tickErr
	case active.session.Over():
		out, err := i.finish(ctx, domain.OutcomeCompleted)
		if err != nil {
			return frame, err
		}
		frame.Run = &out
	}
	return frame, nil
}

func (i *Interactor) Abandon(ctx context.Context) (dto.RunOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.active == nil {
		return dto.RunOutput{}, apperrors.ErrNoActiveRun
	}
	return i.finish(ctx, domain.OutcomeAbandoned)
}

// finish records the active run and releases it even when storage fails.
func (i *Interactor) finish(ctx context.Context, outcome domain.Outcome) (dto.RunOutput, error) {
	active := i.active
	i.active = nil
	run, err := i.svc.Finish(ctx, active.run, active.session, outcome)
	if err != nil {
		i.logger.Error("record run", zap.String("run_id", active.run.ID), zap.Error(err))
		return dto.RunOutput{}, err
	}
	i.logger.Info("run finished",
		zap.String("run_id", run.ID),
		zap.String("outcome", string(run.Outcome)),
		zap.Int("mugs", run.Mugs),
		zap.Int("chugs", run.Chugs),
		zap.Int("staggers", run.Staggers),
		zap.Float64("game_seconds", run.GameSeconds),
	)
	return toRunOutput(run), nil
}

func (i *Interactor) History(ctx context.Context, limit int) ([]dto.RunOutput, error) {
	runs, err := i.svc.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RunOutput, 0, len(runs))
	for _, run := range runs {
		out = append(out, toRunOutput(run))
	}
	return out, nil
}

func (i *Interactor) Run(ctx context.Context, id string) (dto.RunDetailOutput, error) {
	if id == "" {
		return dto.RunDetailOutput{}, fmt.Errorf("%w: run id is required", apperrors.ErrInvalidInput)
	}
	run, note, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.RunDetailOutput{}, err
	}
	return dto.RunDetailOutput{Run: toRunOutput(run), Note: note}, nil
}

func (i *Interactor) Settings(ctx context.Context) (dto.SettingsOutput, error) {
	settings, err := i.settings.Load(ctx)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toSettingsOutput(i.settings.Path(), settings), nil
}

func (i *Interactor) InitSettings(ctx context.Context, force bool) (dto.SettingsOutput, error) {
	exists, err := i.settings.Exists(ctx)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	if exists && !force {
		return dto.SettingsOutput{}, fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, i.settings.Path())
	}
	settings := domain.DefaultSettings()
	if err := i.settings.Save(ctx, settings); err != nil {
		return dto.SettingsOutput{}, err
	}
	i.logger.Info("settings written", zap.String("path", i.settings.Path()))
	return toSettingsOutput(i.settings.Path(), settings), nil
}
