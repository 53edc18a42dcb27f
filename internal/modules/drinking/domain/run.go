package domain

import "time"

const SchemaVersion = 1

type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeAbandoned Outcome = "abandoned"
	OutcomeAborted   Outcome = "aborted"
)

// Run is the persisted record of one session.
type Run struct {
	ID            string
	Seed          int64
	StartedAt     time.Time
	EndedAt       time.Time
	Outcome       Outcome
	Settings      Settings
	Mugs          int
	Chugs         int
	Attempts      int
	Misses        int
	Staggers      int
	WobblesPassed int
	WobblesFailed int
	BestStreak    int
	MinTimeLimit  float64
	GameSeconds   float64
	Error         string
	JournalPath   string
}

// Record copies the session counters into r.
func (r *Run) Record(s *Session) {
	state, stats := s.State(), s.Stats()
	r.Mugs = state.MugsFinished
	r.Chugs = stats.Successes
	r.Attempts = stats.Attempts
	r.Misses = stats.Misses
	r.Staggers = stats.Staggers
	r.WobblesPassed = stats.WobblesPassed
	r.WobblesFailed = stats.WobblesFailed
	r.BestStreak = stats.BestStreak
	r.MinTimeLimit = stats.MinTimeLimit
	r.GameSeconds = stats.Elapsed
	if err := s.Err(); err != nil {
		r.Error = err.Error()
	}
}
