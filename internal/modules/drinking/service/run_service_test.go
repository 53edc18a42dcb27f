package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	drinkingout "mugrush/internal/modules/drinking/adapter/out"
	"mugrush/internal/modules/drinking/domain"
	"mugrush/internal/modules/drinking/service"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixedID string

func (f fixedID) New() string { return string(f) }

type memoryStore struct {
	saved     []domain.Run
	lastLimit int
}

func (m *memoryStore) Save(_ context.Context, run domain.Run) error {
	m.saved = append(m.saved, run)
	return nil
}

func (m *memoryStore) Get(_ context.Context, id string) (domain.Run, error) {
	for _, r := range m.saved {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Run{}, errors.New("missing")
}

func (m *memoryStore) List(_ context.Context, limit int) ([]domain.Run, error) {
	m.lastLimit = limit
	return m.saved, nil
}

type stubJournal struct {
	err   error
	saved int
}

func (s *stubJournal) Save(_ context.Context, run domain.Run) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved++
	return "/notes/" + run.ID + ".md", nil
}

func (s *stubJournal) Load(_ context.Context, path string) (string, error) {
	return "# note at " + path, nil
}

var started = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

func TestStartDerivesSeedFromClock(t *testing.T) {
	t.Parallel()
	svc := service.NewRunService(fixedClock{now: started}, fixedID("abc"), drinkingout.NewPCGRandomSource(), &memoryStore{}, &stubJournal{})

	run, session, err := svc.Start(domain.DefaultSettings(), 0, nil)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if run.Seed != started.UnixNano() || run.ID != "abc" || !run.StartedAt.Equal(started) {
		t.Fatalf("unexpected run %+v", run)
	}
	if session.Phase() != domain.PhaseStartup {
		t.Fatalf("expected startup phase, got %s", session.Phase())
	}

	bad := domain.DefaultSettings()
	bad.ChugsPerMug = 0
	if _, _, err := svc.Start(bad, 1, nil); !errors.Is(err, domain.ErrInvalidSettings) {
		t.Fatalf("expected invalid settings, got %v", err)
	}
}

func TestFinishJournalsThenStores(t *testing.T) {
	t.Parallel()
	store := &memoryStore{}
	journal := &stubJournal{}
	svc := service.NewRunService(fixedClock{now: started}, fixedID("abc"), drinkingout.NewPCGRandomSource(), store, journal)

	run, session, err := svc.Start(domain.DefaultSettings(), 5, nil)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := session.Tick(1, nil); err != nil {
		t.Fatalf("tick: %v", err)
	}
	done, err := svc.Finish(context.Background(), run, session, domain.OutcomeAbandoned)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if done.JournalPath != "/notes/abc.md" || done.Outcome != domain.OutcomeAbandoned || done.Attempts != 1 {
		t.Fatalf("unexpected finished run %+v", done)
	}
	if len(store.saved) != 1 || store.saved[0].JournalPath != done.JournalPath {
		t.Fatalf("store should index the journaled run, got %+v", store.saved)
	}

	got, note, err := svc.Get(context.Background(), "abc")
	if err != nil || got.ID != "abc" || note != "# note at /notes/abc.md" {
		t.Fatalf("get: %+v %q %v", got, note, err)
	}
}

func TestFinishSkipsStoreWhenJournalFails(t *testing.T) {
	t.Parallel()
	store := &memoryStore{}
	svc := service.NewRunService(fixedClock{now: started}, fixedID("abc"), drinkingout.NewPCGRandomSource(), store, &stubJournal{err: errors.New("disk full")})

	run, session, err := svc.Start(domain.DefaultSettings(), 5, nil)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.Finish(context.Background(), run, session, domain.OutcomeCompleted); err == nil {
		t.Fatalf("expected journal error")
	}
	if len(store.saved) != 0 {
		t.Fatalf("run must not be indexed without a note")
	}
}

func TestListDefaultsLimit(t *testing.T) {
	t.Parallel()
	store := &memoryStore{}
	svc := service.NewRunService(fixedClock{now: started}, fixedID("abc"), drinkingout.NewPCGRandomSource(), store, &stubJournal{})

	if _, err := svc.List(context.Background(), 0); err != nil {
		t.Fatalf("list: %v", err)
	}
	if store.lastLimit != 20 {
		t.Fatalf("expected default limit 20, got %d", store.lastLimit)
	}
}
