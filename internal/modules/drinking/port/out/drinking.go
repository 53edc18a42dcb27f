package out

import (
	"context"

	"mugrush/internal/modules/drinking/domain"
)

type RunStore interface {
	Save(ctx context.Context, run domain.Run) error
	Get(ctx context.Context, id string) (domain.Run, error)
	List(ctx context.Context, limit int) ([]domain.Run, error)
}

// RunJournal writes a human-readable note per run and returns its path.
type RunJournal interface {
	Save(ctx context.Context, run domain.Run) (string, error)
	// Load returns the note body without its frontmatter.
	Load(ctx context.Context, path string) (string, error)
}

type SettingsStore interface {
	Path() string
	Load(ctx context.Context) (domain.Settings, error)
	Exists(ctx context.Context) (bool, error)
	Save(ctx context.Context, settings domain.Settings) error
}

type RandomSource interface {
	New(seed int64) domain.Random
}
