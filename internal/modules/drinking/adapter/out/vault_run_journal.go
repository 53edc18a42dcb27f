package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mugrush/internal/modules/drinking/domain"
	drinkingout "mugrush/internal/modules/drinking/port/out"
	apperrors "mugrush/internal/platform/errors"
	"mugrush/internal/platform/markdown"
)

type journalMeta struct {
	SchemaVersion int             `yaml:"schema_version"`
	ID            string          `yaml:"id"`
	Seed          int64           `yaml:"seed"`
	Outcome       string          `yaml:"outcome"`
	StartedAt     string          `yaml:"started_at"`
	EndedAt       string          `yaml:"ended_at"`
	Mugs          int             `yaml:"mugs"`
	Chugs         int             `yaml:"chugs"`
	Attempts      int             `yaml:"attempts"`
	Misses        int             `yaml:"misses"`
	Staggers      int             `yaml:"staggers"`
	WobblesPassed int             `yaml:"wobbles_passed"`
	WobblesFailed int             `yaml:"wobbles_failed"`
	BestStreak    int             `yaml:"best_streak"`
	MinTimeLimit  float64         `yaml:"min_time_limit"`
	GameSeconds   float64         `yaml:"game_seconds"`
	Error         string          `yaml:"error,omitempty"`
	Settings      domain.Settings `yaml:"settings"`
}

type VaultRunJournal struct {
	dataDir string
}

func NewVaultRunJournal(dataDir string) drinkingout.RunJournal {
	return &VaultRunJournal{dataDir: dataDir}
}

func (j *VaultRunJournal) Save(_ context.Context, run domain.Run) (string, error) {
	date := run.StartedAt.UTC()
	dir := filepath.Join(j.dataDir, "runs", date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}
	short := run.ID
	if len(short) > 8 {
		short = short[:8]
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.md", date.Format("150405"), short))

	meta := journalMeta{
		SchemaVersion: domain.SchemaVersion,
		ID:            run.ID,
		Seed:          run.Seed,
		Outcome:       string(run.Outcome),
		StartedAt:     run.StartedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		EndedAt:       run.EndedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Mugs:          run.Mugs,
		Chugs:         run.Chugs,
		Attempts:      run.Attempts,
		Misses:        run.Misses,
		Staggers:      run.Staggers,
		WobblesPassed: run.WobblesPassed,
		WobblesFailed: run.WobblesFailed,
		BestStreak:    run.BestStreak,
		MinTimeLimit:  run.MinTimeLimit,
		GameSeconds:   run.GameSeconds,
		Error:         run.Error,
		Settings:      run.Settings,
	}
	rendered, err := markdown.Render(meta, journalBody(run))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write run note: %w", err)
	}
	return path, nil
}

func (j *VaultRunJournal) Load(_ context.Context, path string) (string, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: run note %s", apperrors.ErrNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("read run note: %w", err)
	}
	var meta journalMeta
	body, err := markdown.Split(string(raw), &meta)
	if err != nil {
		return "", fmt.Errorf("parse run note %s: %w", path, err)
	}
	return strings.TrimLeft(body, "\n"), nil
}

func journalBody(run domain.Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Run %s\n\n", run.ID)
	fmt.Fprintf(&b, "- Outcome: %s\n", run.Outcome)
	fmt.Fprintf(&b, "- Mugs: %d/%d\n", run.Mugs, run.Settings.MugTarget)
	fmt.Fprintf(&b, "- Chugs: %d of %d attempts (best streak %d)\n", run.Chugs, run.Attempts, run.BestStreak)
	fmt.Fprintf(&b, "- Staggers: %d\n", run.Staggers)
	fmt.Fprintf(&b, "- Fastest window: %.3fs\n", run.MinTimeLimit)
	fmt.Fprintf(&b, "- Game time: %.1fs\n", run.GameSeconds)
	if run.Error != "" {
		fmt.Fprintf(&b, "\n## Error\n\n%s\n", run.Error)
	}
	return b.String()
}
