package in

import (
	"context"

	"mugrush/internal/modules/drinking/dto"
	drinkingin "mugrush/internal/modules/drinking/port/in"
)

type TUIHandler struct {
	usecase drinkingin.Usecase
}

func NewTUIHandler(usecase drinkingin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Start(ctx context.Context, seed int64) (dto.StartOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{Seed: seed})
}

func (h TUIHandler) Tick(ctx context.Context, deltaSeconds float64, keys []string) (dto.FrameOutput, error) {
	return h.usecase.Tick(ctx, dto.TickInput{DeltaSeconds: deltaSeconds, Keys: keys})
}

func (h TUIHandler) Abandon(ctx context.Context) (dto.RunOutput, error) {
	return h.usecase.Abandon(ctx)
}

func (h TUIHandler) History(ctx context.Context, limit int) ([]dto.RunOutput, error) {
	return h.usecase.History(ctx, limit)
}

func (h TUIHandler) Run(ctx context.Context, id string) (dto.RunDetailOutput, error) {
	return h.usecase.Run(ctx, id)
}
