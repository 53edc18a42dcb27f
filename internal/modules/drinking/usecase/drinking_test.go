package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	drinkingout "mugrush/internal/modules/drinking/adapter/out"
	"mugrush/internal/modules/drinking/domain"
	"mugrush/internal/modules/drinking/dto"
	drinkingin "mugrush/internal/modules/drinking/port/in"
	"mugrush/internal/modules/drinking/service"
	"mugrush/internal/modules/drinking/usecase"
	apperrors "mugrush/internal/platform/errors"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return "run-" + string(rune('0'+s.n))
}

func newInteractor(t *testing.T, settingsYAML string) (drinkingin.Usecase, string) {
	t.Helper()
	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "settings.yaml")
	if settingsYAML != "" {
		if err := os.WriteFile(settingsPath, []byte(settingsYAML), 0o644); err != nil {
			t.Fatalf("write settings: %v", err)
		}
	}
	store, err := drinkingout.NewSQLiteRunStore(filepath.Join(dir, ".mugrush", "mugrush.db"))
	if err != nil {
		t.Fatalf("open run store: %v", err)
	}
	svc := service.NewRunService(
		&fakeClock{now: time.Date(2026, 10, 17, 18, 0, 0, 0, time.UTC)},
		&seqID{},
		drinkingout.NewPCGRandomSource(),
		store,
		drinkingout.NewVaultRunJournal(dir),
	)
	return usecase.NewInteractor(svc, drinkingout.NewYAMLSettingsStore(settingsPath), nil), dir
}

const oneMug = `
chugs_per_mug: 1
mug_target: 1
startup_delay: 0
chugs_before_wobble: 0
`

func TestPlayedRunIsRecordedOnGameOver(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t, oneMug)
	ctx := context.Background()

	start, err := uc.Start(ctx, dto.StartInput{Seed: 9})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if start.RunID != "run-1" || start.Seed != 9 || start.Settings.ChugsPerMug != 1 {
		t.Fatalf("unexpected start output %+v", start)
	}

	frame, err := uc.Tick(ctx, dto.TickInput{DeltaSeconds: 0})
	if err != nil {
		t.Fatalf("first tick: %v", err)
	}
	if !frame.ChugVisible || !frame.Drinking || frame.Phase != "racing" {
		t.Fatalf("expected an open race, got %+v", frame)
	}

	frame, err = uc.Tick(ctx, dto.TickInput{DeltaSeconds: 0.7, Keys: []string{dto.KeyAction}})
	if err != nil {
		t.Fatalf("winning tick: %v", err)
	}
	if !frame.Over || frame.Run == nil {
		t.Fatalf("expected recorded run on the final frame, got %+v", frame)
	}
	if !slices.Equal(frame.Events, []string{dto.EventMugComplete, dto.EventGameOver}) {
		t.Fatalf("unexpected events %v", frame.Events)
	}
	if frame.Run.Outcome != string(domain.OutcomeCompleted) || frame.Run.Mugs != 1 || frame.Run.Chugs != 1 {
		t.Fatalf("unexpected run %+v", frame.Run)
	}
	if _, err := os.Stat(frame.Run.JournalPath); err != nil {
		t.Fatalf("journal note missing: %v", err)
	}

	if _, err := uc.Tick(ctx, dto.TickInput{DeltaSeconds: 0.1}); !errors.Is(err, apperrors.ErrNoActiveRun) {
		t.Fatalf("expected no active run after game over, got %v", err)
	}
	history, err := uc.History(ctx, 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].ID != "run-1" {
		t.Fatalf("expected one run in history, got %+v", history)
	}
	detail, err := uc.Run(ctx, "run-1")
	if err != nil {
		t.Fatalf("run detail: %v", err)
	}
	if detail.Run.Outcome != "completed" || !strings.HasPrefix(detail.Note, "# Run run-1") {
		t.Fatalf("unexpected run detail %+v", detail)
	}
	if _, err := uc.Run(ctx, "run-9"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStartTwiceAndAbandon(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t, "")
	ctx := context.Background()

	if _, err := uc.Abandon(ctx); !errors.Is(err, apperrors.ErrNoActiveRun) {
		t.Fatalf("expected no active run, got %v", err)
	}
	if _, err := uc.Start(ctx, dto.StartInput{Seed: 1}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := uc.Start(ctx, dto.StartInput{Seed: 1}); !errors.Is(err, apperrors.ErrRunInProgress) {
		t.Fatalf("expected run in progress, got %v", err)
	}
	if _, err := uc.Tick(ctx, dto.TickInput{DeltaSeconds: 0.1, Keys: []string{"jump"}}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid key error, got %v", err)
	}
	if _, err := uc.Tick(ctx, dto.TickInput{DeltaSeconds: -1}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected negative delta error, got %v", err)
	}

	out, err := uc.Abandon(ctx)
	if err != nil {
		t.Fatalf("abandon: %v", err)
	}
	if out.Outcome != string(domain.OutcomeAbandoned) || out.Mugs != 0 {
		t.Fatalf("unexpected abandoned run %+v", out)
	}
	if _, err := uc.Start(ctx, dto.StartInput{Seed: 2}); err != nil {
		t.Fatalf("start after abandon: %v", err)
	}
}

func TestChainLimitAbortsAndRecordsRun(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t, `
chugs_per_mug: 30
chain_limit: 2
startup_delay: 0
chugs_before_wobble: 0
`)
	ctx := context.Background()
	if _, err := uc.Start(ctx, dto.StartInput{Seed: 3}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := uc.Tick(ctx, dto.TickInput{}); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if _, err := uc.Tick(ctx, dto.TickInput{DeltaSeconds: 0.7, Keys: []string{dto.KeyAction}}); err != nil {
		t.Fatalf("first chug: %v", err)
	}
	frame, err := uc.Tick(ctx, dto.TickInput{DeltaSeconds: 0.6, Keys: []string{dto.KeyAction}})
	if !errors.Is(err, domain.ErrChainLimit) {
		t.Fatalf("expected chain limit error, got %v", err)
	}
	if frame.Run == nil || frame.Run.Outcome != string(domain.OutcomeAborted) || frame.Run.Error == "" {
		t.Fatalf("expected aborted run record, got %+v", frame.Run)
	}
	if !slices.Contains(frame.Events, dto.EventAborted) {
		t.Fatalf("expected aborted event, got %v", frame.Events)
	}
}

func TestSimulateCompletesGame(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t, "")
	ctx := context.Background()

	clean, err := uc.Simulate(ctx, dto.SimulateInput{Seed: 11})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if clean.Outcome != string(domain.OutcomeCompleted) || clean.Mugs != 3 || clean.Chugs != 30 {
		t.Fatalf("expected a completed game, got %+v", clean)
	}
	if clean.Staggers != 0 || clean.Misses != 0 {
		t.Fatalf("a perfect bot should never miss, got %+v", clean)
	}

	if _, err := uc.Simulate(ctx, dto.SimulateInput{MissRate: 2}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid miss rate, got %v", err)
	}
}

func TestSimulateHonorsExplicitZeroes(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t, "")
	ctx := context.Background()

	input := dto.DefaultSimulateInput()
	input.Seed = 3
	input.ReactionSeconds = 0
	input.MissRate = 0
	out, err := uc.Simulate(ctx, input)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if out.Outcome != string(domain.OutcomeCompleted) || out.Staggers != 0 || out.WobblesFailed != 0 {
		t.Fatalf("an instant bot that never misses should finish cleanly, got %+v", out)
	}

	input.ReactionSeconds = -0.1
	if _, err := uc.Simulate(ctx, input); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid reaction time, got %v", err)
	}
}

func TestSimulatedWobbleMissesStaggerButFinish(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t, "mug_target: 10\n")

	out, err := uc.Simulate(context.Background(), dto.SimulateInput{Seed: 5, MissRate: 1})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if out.Outcome != string(domain.OutcomeCompleted) || out.Mugs != 10 {
		t.Fatalf("expected a finished game, got %+v", out)
	}
	if out.Staggers == 0 || out.WobblesFailed != out.Staggers {
		t.Fatalf("every wobble should fail and stagger, got %+v", out)
	}
}

func TestInitSettingsRefusesToOverwrite(t *testing.T) {
	t.Parallel()
	uc, dir := newInteractor(t, "")
	ctx := context.Background()

	out, err := uc.InitSettings(ctx, false)
	if err != nil {
		t.Fatalf("init settings: %v", err)
	}
	if out.Path != filepath.Join(dir, "settings.yaml") || out.ChainLimit != 20 {
		t.Fatalf("unexpected settings output %+v", out)
	}
	if _, err := uc.InitSettings(ctx, false); !errors.Is(err, apperrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
	if _, err := uc.InitSettings(ctx, true); err != nil {
		t.Fatalf("forced init: %v", err)
	}
	shown, err := uc.Settings(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if shown.ChugsPerMug != 10 || shown.MugTarget != 3 {
		t.Fatalf("unexpected settings %+v", shown)
	}
}
