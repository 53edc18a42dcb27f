package domain

type WobblePhase int

const (
	WobbleInactive WobblePhase = iota
	WobbleWaitingForDrinking
	WobbleRandomDelay
	WobbleAwaitingResponse
	WobbleDone
)

func (p WobblePhase) String() string {
	switch p {
	case WobbleWaitingForDrinking:
		return "waiting_for_drinking"
	case WobbleRandomDelay:
		return "random_delay"
	case WobbleAwaitingResponse:
		return "awaiting_response"
	case WobbleDone:
		return "done"
	default:
		return "inactive"
	}
}

const (
	wobbleGrowRate   = 1.05
	wobbleShrinkRate = 0.95
)

// WobbleEngine runs the recurring side challenge once activated. It only
// ever writes State.Staggered.
type WobbleEngine struct {
	settings Settings
	state    *State
	stats    *Stats
	rng      Random
	feedback Feedback

	phase          WobblePhase
	delayRemaining float64
	side           Side
	counter        float64
	scale          float64
}

func newWobbleEngine(settings Settings, state *State, stats *Stats, rng Random, feedback Feedback) *WobbleEngine {
	return &WobbleEngine{settings: settings, state: state, stats: stats, rng: rng, feedback: feedback}
}

// Activate arms the loop. Only the first call has an effect.
func (w *WobbleEngine) Activate() {
	if w.phase != WobbleInactive {
		return
	}
	w.feedback.WobbleIndicator(SideLeft, false)
	w.feedback.WobbleIndicator(SideRight, false)
	w.phase = WobbleWaitingForDrinking
}

func (w *WobbleEngine) Step(dt float64, in Input) {
	switch w.phase {
	case WobbleWaitingForDrinking:
		if !w.state.GameOngoing {
			w.phase = WobbleDone
			return
		}
		if !w.state.Drinking {
			return
		}
		w.delayRemaining = w.rng.Float64Range(w.settings.WobbleDelayMin, w.settings.WobbleDelayMax)
		w.phase = WobbleRandomDelay
	case WobbleRandomDelay:
		if !w.state.GameOngoing {
			w.phase = WobbleDone
			return
		}
		w.delayRemaining -= dt
		if w.delayRemaining > 0 {
			return
		}
		// never open a window between races
		if !w.state.Drinking {
			w.phase = WobbleWaitingForDrinking
			return
		}
		w.open()
	case WobbleAwaitingResponse:
		w.respond(dt, in)
	}
}

func (w *WobbleEngine) open() {
	w.side = w.rng.Side()
	w.counter = 0
	w.scale = 1
	w.feedback.WobbleIndicator(w.side, true)
	w.phase = WobbleAwaitingResponse
}

func (w *WobbleEngine) respond(dt float64, in Input) {
	if !w.state.GameOngoing {
		w.close()
		w.phase = WobbleDone
		return
	}
	correct, incorrect := w.side.Keys()
	switch {
	case !w.state.Drinking:
		w.resolve(true)
	case in.Pressed(correct):
		w.stats.WobblesPassed++
		w.resolve(true)
	case in.Pressed(incorrect):
		w.resolve(false)
	default:
		if w.counter < w.settings.WobbleDuration/2 {
			w.scale *= 1 + wobbleGrowRate*dt
		} else {
			w.scale *= 1 - wobbleShrinkRate*dt
		}
		if w.scale < 0 {
			w.scale = 0
		}
		w.feedback.WobbleScale(w.side, w.scale)
		w.counter += dt
		if w.counter > w.settings.WobbleDuration {
			w.resolve(false)
		}
	}
}

func (w *WobbleEngine) resolve(pass bool) {
	if !pass {
		w.state.Staggered = true
		w.stats.WobblesFailed++
	}
	w.close()
	w.phase = WobbleWaitingForDrinking
}

func (w *WobbleEngine) close() {
	w.counter = 0
	w.scale = 1
	w.feedback.WobbleIndicator(w.side, false)
}

func (w *WobbleEngine) Phase() WobblePhase { return w.phase }
func (w *WobbleEngine) Side() Side         { return w.side }
func (w *WobbleEngine) Counter() float64   { return w.counter }
func (w *WobbleEngine) Scale() float64     { return w.scale }
