package domain

import "fmt"

type fakeRandom struct {
	delays []float64
	sides  []Side
	di, si int
}

func (f *fakeRandom) Float64Range(lo, _ float64) float64 {
	if len(f.delays) == 0 {
		return lo
	}
	v := f.delays[f.di%len(f.delays)]
	f.di++
	return v
}

func (f *fakeRandom) Side() Side {
	if len(f.sides) == 0 {
		return SideLeft
	}
	v := f.sides[f.si%len(f.sides)]
	f.si++
	return v
}

type recorder struct {
	events    []string
	gameOvers int
	mugs      []int
}

func (r *recorder) ChugIndicator(visible bool) {
	r.events = append(r.events, fmt.Sprintf("chug:%t", visible))
}
func (r *recorder) ChugProgress(float64, bool) {}
func (r *recorder) WobbleIndicator(side Side, visible bool) {
	r.events = append(r.events, fmt.Sprintf("wobble:%s:%t", side, visible))
}
func (r *recorder) WobbleScale(Side, float64) {}
func (r *recorder) MugComplete(n int)         { r.mugs = append(r.mugs, n) }
func (r *recorder) GameOver()                 { r.gameOvers++ }

func (r *recorder) count(event string) int {
	n := 0
	for _, e := range r.events {
		if e == event {
			n++
		}
	}
	return n
}

// quickSettings has no startup delay and keeps the wobble switched off.
func quickSettings() Settings {
	s := DefaultSettings()
	s.BaseTimeLimit = 1.0
	s.CutoffMultiplier = 0.1
	s.DrinkTimingLimit = 0.5
	s.StartupDelay = 0
	s.ChugsBeforeWobble = 0
	return s
}

const eps = 1e-6

// chugOnce presses the action key just after the success window opens.
func chugOnce(s *Session) error {
	snap := s.Snapshot()
	return s.Tick(snap.WindowOpensAt-snap.TimeCounter+eps, Press(KeyAction))
}
