package clock

import "time"

// Clock abstracts wall time so run records stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Frame measures the real time between two frames in seconds.
type Frame struct {
	clock Clock
	last  time.Time
}

func NewFrame(c Clock) *Frame {
	return &Frame{clock: c}
}

// Delta returns the seconds since the previous call, zero on the first call
// and never negative.
func (f *Frame) Delta() float64 {
	now := f.clock.Now()
	if f.last.IsZero() {
		f.last = now
		return 0
	}
	d := now.Sub(f.last).Seconds()
	f.last = now
	if d < 0 {
		return 0
	}
	return d
}
