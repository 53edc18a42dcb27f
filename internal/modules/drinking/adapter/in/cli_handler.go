package in

import (
	"context"

	"mugrush/internal/modules/drinking/dto"
	drinkingin "mugrush/internal/modules/drinking/port/in"
)

type CLIHandler struct {
	usecase drinkingin.Usecase
}

func NewCLIHandler(usecase drinkingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Simulate(ctx context.Context, seed int64, ticksPerSecond int, reaction, missRate, maxSeconds float64) (dto.RunOutput, error) {
	return h.usecase.Simulate(ctx, dto.SimulateInput{
		Seed:            seed,
		TicksPerSecond:  ticksPerSecond,
		ReactionSeconds: reaction,
		MissRate:        missRate,
		MaxSeconds:      maxSeconds,
	})
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]dto.RunOutput, error) {
	return h.usecase.History(ctx, limit)
}

func (h CLIHandler) Run(ctx context.Context, id string) (dto.RunDetailOutput, error) {
	return h.usecase.Run(ctx, id)
}

func (h CLIHandler) Settings(ctx context.Context) (dto.SettingsOutput, error) {
	return h.usecase.Settings(ctx)
}

func (h CLIHandler) InitSettings(ctx context.Context, force bool) (dto.SettingsOutput, error) {
	return h.usecase.InitSettings(ctx, force)
}
