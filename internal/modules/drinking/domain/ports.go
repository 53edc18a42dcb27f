package domain

// Key is a logical key polled once per tick.
type Key int

const (
	KeyAction Key = iota
	KeyLeft
	KeyRight
)

// Input is the set of keys that went down since the previous tick.
type Input map[Key]bool

func Press(keys ...Key) Input {
	in := make(Input, len(keys))
	for _, k := range keys {
		in[k] = true
	}
	return in
}

func (in Input) Pressed(k Key) bool { return in[k] }

type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// Keys returns the correct and incorrect key for a wobble leaning to s.
func (s Side) Keys() (correct, incorrect Key) {
	if s == SideRight {
		return KeyRight, KeyLeft
	}
	return KeyLeft, KeyRight
}

// Feedback receives fire-and-forget presentation signals.
type Feedback interface {
	ChugIndicator(visible bool)
	// ChugProgress reports the remaining share of the window and whether
	// a press right now would count.
	ChugProgress(scale float64, inWindow bool)
	WobbleIndicator(side Side, visible bool)
	WobbleScale(side Side, scale float64)
	MugComplete(mugsFinished int)
	GameOver()
}

// Random isolates every random draw the engines make.
type Random interface {
	Float64Range(min, max float64) float64
	Side() Side
}

type NopFeedback struct{}

func (NopFeedback) ChugIndicator(bool)         {}
func (NopFeedback) ChugProgress(float64, bool) {}
func (NopFeedback) WobbleIndicator(Side, bool) {}
func (NopFeedback) WobbleScale(Side, float64)  {}
func (NopFeedback) MugComplete(int)            {}
func (NopFeedback) GameOver()                  {}
