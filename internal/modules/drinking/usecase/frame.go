package usecase

import (
	"mugrush/internal/modules/drinking/domain"
	"mugrush/internal/modules/drinking/dto"
)

// frameRecorder collects feedback signals between two ticks so the UI can
// render from a plain frame.
type frameRecorder struct {
	chugVisible   bool
	chugScale     float64
	chugInWindow  bool
	wobbleVisible bool
	wobbleSide    domain.Side
	wobbleScale   float64
	events        []string
}

func (f *frameRecorder) ChugIndicator(visible bool) {
	f.chugVisible = visible
	if visible {
		f.chugScale = 1
		f.chugInWindow = false
	}
}

func (f *frameRecorder) ChugProgress(scale float64, inWindow bool) {
	f.chugScale = scale
	f.chugInWindow = inWindow
}

func (f *frameRecorder) WobbleIndicator(side domain.Side, visible bool) {
	if visible {
		f.wobbleVisible = true
		f.wobbleSide = side
		f.wobbleScale = 1
		return
	}
	if side == f.wobbleSide {
		f.wobbleVisible = false
	}
}

func (f *frameRecorder) WobbleScale(side domain.Side, scale float64) {
	if side == f.wobbleSide {
		f.wobbleScale = scale
	}
}

func (f *frameRecorder) MugComplete(int) {
	f.events = append(f.events, dto.EventMugComplete)
}

func (f *frameRecorder) GameOver() {
	f.events = append(f.events, dto.EventGameOver)
}

func (f *frameRecorder) render(runID string, s *domain.Session) dto.FrameOutput {
	snap := s.Snapshot()
	settings := s.Settings()
	out := dto.FrameOutput{
		RunID:          runID,
		Phase:          snap.Phase.String(),
		Chugs:          snap.State.Chugs,
		ChugsPerMug:    settings.ChugsPerMug,
		Mugs:           snap.State.MugsFinished,
		MugTarget:      settings.MugTarget,
		TimeLimit:      snap.TimeLimit,
		TimeCounter:    snap.TimeCounter,
		WindowOpensAt:  snap.WindowOpensAt,
		DelayRemaining: snap.DelayRemaining,
		Drinking:       snap.State.Drinking,
		Staggered:      snap.State.Staggered,
		ChugVisible:    f.chugVisible,
		ChugScale:      f.chugScale,
		ChugInWindow:   f.chugInWindow,
		WobbleVisible:  f.wobbleVisible,
		WobbleSide:     f.wobbleSide.String(),
		WobbleScale:    f.wobbleScale,
		Events:         f.events,
		Over:           s.Over(),
	}
	f.events = nil
	return out
}
