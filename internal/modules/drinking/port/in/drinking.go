package in

import (
	"context"

	"mugrush/internal/modules/drinking/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	Tick(ctx context.Context, input dto.TickInput) (dto.FrameOutput, error)
	Abandon(ctx context.Context) (dto.RunOutput, error)
	Simulate(ctx context.Context, input dto.SimulateInput) (dto.RunOutput, error)
	History(ctx context.Context, limit int) ([]dto.RunOutput, error)
	Run(ctx context.Context, id string) (dto.RunDetailOutput, error)
	Settings(ctx context.Context) (dto.SettingsOutput, error)
	InitSettings(ctx context.Context, force bool) (dto.SettingsOutput, error)
}
