package domain

// State is shared by the chug engine, the wobble engine and the session
// controller. Single writer per field:
//
//	Chugs         chug engine increments, controller resets on a new mug
//	MugsFinished  controller
//	GameOngoing   controller
//	Drinking      chug engine; read by the wobble engine
//	Staggered     wobble engine sets, chug engine clears at attempt start
type State struct {
	Chugs        int
	MugsFinished int
	GameOngoing  bool
	Drinking     bool
	Staggered    bool
}

// TotalChugs counts successes across the whole game.
func (s *State) TotalChugs(chugsPerMug int) int {
	return s.Chugs + s.MugsFinished*chugsPerMug
}

// Stats accumulate over a session and end up in the run record.
type Stats struct {
	Attempts      int
	Successes     int
	Misses        int
	Staggers      int
	WobblesPassed int
	WobblesFailed int
	BestStreak    int
	MinTimeLimit  float64
	Elapsed       float64

	streak int
}

func (s *Stats) success(limit float64) {
	s.Successes++
	s.streak++
	if s.streak > s.BestStreak {
		s.BestStreak = s.streak
	}
	if s.MinTimeLimit == 0 || limit < s.MinTimeLimit {
		s.MinTimeLimit = limit
	}
}

func (s *Stats) breakStreak() { s.streak = 0 }
