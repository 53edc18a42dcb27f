package dto

import "time"

const (
	KeyAction = "action"
	KeyLeft   = "left"
	KeyRight  = "right"
)

const (
	EventMugComplete = "mug_complete"
	EventGameOver    = "game_over"
	EventAborted     = "aborted"
)

type StartInput struct {
	// Seed 0 picks one from the clock.
	Seed int64
}

type StartOutput struct {
	RunID     string
	Seed      int64
	StartedAt time.Time
	Settings  SettingsOutput
}

type TickInput struct {
	DeltaSeconds float64
	Keys         []string
}

type FrameOutput struct {
	RunID          string
	Phase          string
	Chugs          int
	ChugsPerMug    int
	Mugs           int
	MugTarget      int
	TimeLimit      float64
	TimeCounter    float64
	WindowOpensAt  float64
	DelayRemaining float64
	Drinking       bool
	Staggered      bool
	ChugVisible    bool
	ChugScale      float64
	ChugInWindow   bool
	WobbleVisible  bool
	WobbleSide     string
	WobbleScale    float64
	Events         []string
	Over           bool
	// Run is set on the frame that recorded the run.
	Run *RunOutput
}

type RunOutput struct {
	ID            string
	Seed          int64
	Outcome       string
	StartedAt     time.Time
	EndedAt       time.Time
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

type RunDetailOutput struct {
	Run  RunOutput
	Note string
}

type SettingsOutput struct {
	Path              string
	BaseTimeLimit     float64
	CutoffMultiplier  float64
	DrinkTimingLimit  float64
	ChugsPerMug       int
	MugTarget         int
	StartupDelay      float64
	NewMugDelay       float64
	FailedChugDelay   float64
	StaggerDelay      float64
	WobbleDuration    float64
	WobbleDelayMin    float64
	WobbleDelayMax    float64
	ChugsBeforeWobble int
	ChainLimit        int
}

// SimulateInput drives a headless run. Zero TicksPerSecond or MaxSeconds
// fall back to the defaults; zero ReactionSeconds and MissRate are taken
// literally.
type SimulateInput struct {
	Seed            int64
	TicksPerSecond  int
	ReactionSeconds float64
	MissRate        float64
	MaxSeconds      float64
}

func DefaultSimulateInput() SimulateInput {
	return SimulateInput{
		TicksPerSecond:  60,
		ReactionSeconds: 0.03,
		MissRate:        0.1,
		MaxSeconds:      600,
	}
}
