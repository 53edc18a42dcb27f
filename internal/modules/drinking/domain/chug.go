package domain

import "fmt"

// Transition is what the session controller must do once a race ends.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionMugComplete
	TransitionStagger
	TransitionChain
	TransitionFailure
)

func (t Transition) String() string {
	switch t {
	case TransitionMugComplete:
		return "mug_complete"
	case TransitionStagger:
		return "stagger"
	case TransitionChain:
		return "chain"
	case TransitionFailure:
		return "failure"
	default:
		return "none"
	}
}

// ChugEngine races one timed window at a time.
type ChugEngine struct {
	settings Settings
	state    *State
	stats    *Stats
	feedback Feedback
	wobble   *WobbleEngine

	currentTimeLimit float64
	timeCounter      float64
	racing           bool
	chain            int
}

func newChugEngine(settings Settings, state *State, stats *Stats, feedback Feedback, wobble *WobbleEngine) *ChugEngine {
	return &ChugEngine{
		settings:         settings,
		state:            state,
		stats:            stats,
		feedback:         feedback,
		wobble:           wobble,
		currentTimeLimit: settings.BaseTimeLimit,
	}
}

// RunChugAttempt opens a fresh window. Chained attempts beyond the chain
// limit are refused with ErrChainLimit.
func (c *ChugEngine) RunChugAttempt() error {
	if !c.state.GameOngoing {
		return ErrGameOver
	}
	if c.chain >= c.settings.ChainLimit {
		return fmt.Errorf("%w: attempt %d of mug %d at time limit %.4fs", ErrChainLimit, c.chain+1, c.state.MugsFinished+1, c.currentTimeLimit)
	}
	c.chain++
	c.timeCounter = 0
	c.racing = true
	c.state.Drinking = true
	c.state.Staggered = false
	c.stats.Attempts++
	c.feedback.ChugIndicator(true)
	c.feedback.ChugProgress(1, false)
	return nil
}

// Step advances the running race by dt. It returns TransitionNone while the
// race is still open.
func (c *ChugEngine) Step(dt float64, in Input) Transition {
	if !c.racing {
		return TransitionNone
	}
	success := false
	if !c.state.Staggered {
		c.timeCounter += dt
		c.feedback.ChugProgress(c.scale(), c.inWindow())
		switch {
		case in.Pressed(KeyAction):
			if c.inWindow() {
				success = true
				c.chugged()
			}
		case c.timeCounter < c.currentTimeLimit:
			return TransitionNone
		}
	}
	return c.finish(success)
}

func (c *ChugEngine) inWindow() bool {
	return c.timeCounter > c.currentTimeLimit*c.settings.DrinkTimingLimit
}

func (c *ChugEngine) scale() float64 {
	v := 1 - c.timeCounter/c.currentTimeLimit
	if v < 0 {
		return 0
	}
	return v
}

func (c *ChugEngine) chugged() {
	c.state.Chugs++
	c.stats.success(c.currentTimeLimit)
	if c.state.TotalChugs(c.settings.ChugsPerMug) == c.settings.ChugsBeforeWobble {
		c.wobble.Activate()
	}
}

func (c *ChugEngine) finish(success bool) Transition {
	c.racing = false
	c.state.Drinking = false
	c.feedback.ChugIndicator(false)

	switch {
	case c.state.Chugs == c.settings.ChugsPerMug:
		c.resetLimit()
		return TransitionMugComplete
	case c.state.Staggered:
		c.resetLimit()
		c.stats.Staggers++
		c.stats.breakStreak()
		return TransitionStagger
	case success:
		c.currentTimeLimit *= 1 - c.settings.CutoffMultiplier
		return TransitionChain
	default:
		c.resetLimit()
		c.stats.Misses++
		c.stats.breakStreak()
		return TransitionFailure
	}
}

func (c *ChugEngine) resetLimit() {
	c.currentTimeLimit = c.settings.BaseTimeLimit
}

// ResetChain marks a delay boundary.
func (c *ChugEngine) ResetChain() { c.chain = 0 }

func (c *ChugEngine) TimeLimit() float64   { return c.currentTimeLimit }
func (c *ChugEngine) TimeCounter() float64 { return c.timeCounter }
func (c *ChugEngine) Racing() bool         { return c.racing }
func (c *ChugEngine) Chain() int           { return c.chain }
