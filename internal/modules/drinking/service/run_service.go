package service

import (
	"context"
	"fmt"

	"mugrush/internal/modules/drinking/domain"
	drinkingout "mugrush/internal/modules/drinking/port/out"
	"mugrush/internal/platform/clock"
	"mugrush/internal/platform/id"
)

type RunService struct {
	clock   clock.Clock
	idGen   id.Generator
	randoms drinkingout.RandomSource
	store   drinkingout.RunStore
	journal drinkingout.RunJournal
}

func NewRunService(clock clock.Clock, idGen id.Generator, randoms drinkingout.RandomSource, store drinkingout.RunStore, journal drinkingout.RunJournal) *RunService {
	return &RunService{clock: clock, idGen: idGen, randoms: randoms, store: store, journal: journal}
}

// Start builds a session and the run record that will describe it.
func (s *RunService) Start(settings domain.Settings, seed int64, feedback domain.Feedback) (domain.Run, *domain.Session, error) {
	now := s.clock.Now()
	if seed == 0 {
		seed = now.UnixNano()
	}
	session, err := domain.NewSession(settings, s.randoms.New(seed), feedback)
	if err != nil {
		return domain.Run{}, nil, err
	}
	run := domain.Run{
		ID:        s.idGen.New(),
		Seed:      seed,
		StartedAt: now,
		Settings:  settings,
	}
	return run, session, nil
}

// Bot returns an independent random stream for simulated players.
func (s *RunService) Bot(seed int64) domain.Random {
	return s.randoms.New(seed ^ 0x5eed)
}

// Finish stamps the run, writes the journal note and indexes it.
func (s *RunService) Finish(ctx context.Context, run domain.Run, session *domain.Session, outcome domain.Outcome) (domain.Run, error) {
	run.EndedAt = s.clock.Now()
	run.Outcome = outcome
	run.Record(session)

	path, err := s.journal.Save(ctx, run)
	if err != nil {
		return domain.Run{}, fmt.Errorf("journal run: %w", err)
	}
	run.JournalPath = path
	if err := s.store.Save(ctx, run); err != nil {
		return domain.Run{}, fmt.Errorf("store run: %w", err)
	}
	return run, nil
}

// Get loads a stored run together with its journal note body.
func (s *RunService) Get(ctx context.Context, id string) (domain.Run, string, error) {
	run, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Run{}, "", err
	}
	if run.JournalPath == "" {
		return run, "", nil
	}
	note, err := s.journal.Load(ctx, run.JournalPath)
	if err != nil {
		return domain.Run{}, "", err
	}
	return run, note, nil
}

func (s *RunService) List(ctx context.Context, limit int) ([]domain.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.store.List(ctx, limit)
}
