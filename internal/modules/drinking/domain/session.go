package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrChainLimit means attempts kept chaining without a delay boundary,
	// which only happens with inconsistent settings. It is fatal.
	ErrChainLimit = errors.New("chained attempt limit exceeded")
	ErrGameOver   = errors.New("game is over")
)

type Phase int

const (
	PhaseStartup Phase = iota
	PhaseRacing
	PhaseMugDelay
	PhaseRecovery
	PhaseOver
	PhaseAborted
)

func (p Phase) String() string {
	switch p {
	case PhaseStartup:
		return "startup"
	case PhaseRacing:
		return "racing"
	case PhaseMugDelay:
		return "mug_delay"
	case PhaseRecovery:
		return "recovery"
	case PhaseOver:
		return "over"
	case PhaseAborted:
		return "aborted"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Session is the controller: it owns the shared state, sequences delays
// between attempts and decides when the game ends. It is driven entirely by
// Tick and is not safe for concurrent use.
type Session struct {
	settings Settings
	state    State
	stats    Stats
	feedback Feedback
	chug     *ChugEngine
	wobble   *WobbleEngine

	phase          Phase
	delayRemaining float64
	err            error
}

func NewSession(settings Settings, rng Random, feedback Feedback) (*Session, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if feedback == nil {
		feedback = NopFeedback{}
	}
	s := &Session{
		settings: settings,
		feedback: feedback,
		phase:    PhaseStartup,
	}
	s.state.GameOngoing = true
	s.delayRemaining = settings.StartupDelay
	s.wobble = newWobbleEngine(settings, &s.state, &s.stats, rng, feedback)
	s.chug = newChugEngine(settings, &s.state, &s.stats, feedback, s.wobble)
	return s, nil
}

// Tick advances every engine by dt seconds with the keys pressed since the
// previous tick. The wobble engine runs first so a wobble failure is seen
// by the chug engine within the same tick. A non-nil error is fatal and is
// returned again by every later call.
func (s *Session) Tick(dt float64, in Input) error {
	if s.err != nil {
		return s.err
	}
	if dt < 0 {
		dt = 0
	}
	if s.phase != PhaseOver {
		s.stats.Elapsed += dt
	}
	s.wobble.Step(dt, in)

	switch s.phase {
	case PhaseStartup, PhaseMugDelay, PhaseRecovery:
		s.delayRemaining -= dt
		if s.delayRemaining > 0 {
			return nil
		}
		return s.RunChugAttempt()
	case PhaseRacing:
		return s.dispatch(s.chug.Step(dt, in))
	}
	return nil
}

func (s *Session) dispatch(t Transition) error {
	switch t {
	case TransitionMugComplete:
		s.OnMugComplete()
	case TransitionStagger:
		s.OnFailureOrStagger(s.settings.StaggerDelay)
	case TransitionFailure:
		s.OnFailureOrStagger(s.settings.FailedChugDelay)
	case TransitionChain:
		return s.RunChugAttempt()
	}
	return nil
}

// RunChugAttempt starts the next race right away.
func (s *Session) RunChugAttempt() error {
	if err := s.chug.RunChugAttempt(); err != nil {
		if errors.Is(err, ErrChainLimit) {
			s.abort(err)
		}
		return err
	}
	s.phase = PhaseRacing
	return nil
}

func (s *Session) OnMugComplete() {
	s.state.MugsFinished++
	s.feedback.MugComplete(s.state.MugsFinished)
	if s.state.MugsFinished >= s.settings.MugTarget {
		s.state.GameOngoing = false
		s.phase = PhaseOver
		s.feedback.ChugIndicator(false)
		s.feedback.GameOver()
		s.wobble.Step(0, nil)
		return
	}
	s.state.Chugs = 0
	s.wait(PhaseMugDelay, s.settings.NewMugDelay)
}

func (s *Session) OnFailureOrStagger(delaySeconds float64) {
	s.wait(PhaseRecovery, delaySeconds)
}

func (s *Session) wait(phase Phase, seconds float64) {
	s.phase = phase
	s.delayRemaining = seconds
	s.chug.ResetChain()
}

func (s *Session) abort(err error) {
	s.err = err
	s.phase = PhaseAborted
	s.state.GameOngoing = false
	s.state.Drinking = false
	s.feedback.ChugIndicator(false)
	// let the wobble loop observe the end and hide its indicator
	s.wobble.Step(0, nil)
}

func (s *Session) Settings() Settings { return s.settings }
func (s *Session) State() State       { return s.state }
func (s *Session) Stats() Stats       { return s.stats }
func (s *Session) Phase() Phase       { return s.phase }
func (s *Session) Err() error         { return s.err }

// Over reports whether the session reached a terminal phase.
func (s *Session) Over() bool {
	return s.phase == PhaseOver || s.phase == PhaseAborted
}

// Snapshot is a read-only view of everything a renderer needs.
type Snapshot struct {
	Phase          Phase
	State          State
	Stats          Stats
	TimeLimit      float64
	TimeCounter    float64
	WindowOpensAt  float64
	Chain          int
	WobblePhase    WobblePhase
	WobbleSide     Side
	WobbleCounter  float64
	DelayRemaining float64
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Phase:          s.phase,
		State:          s.state,
		Stats:          s.stats,
		TimeLimit:      s.chug.TimeLimit(),
		TimeCounter:    s.chug.TimeCounter(),
		WindowOpensAt:  s.chug.TimeLimit() * s.settings.DrinkTimingLimit,
		Chain:          s.chug.Chain(),
		WobblePhase:    s.wobble.Phase(),
		WobbleSide:     s.wobble.Side(),
		WobbleCounter:  s.wobble.Counter(),
		DelayRemaining: s.delayRemaining,
	}
}
