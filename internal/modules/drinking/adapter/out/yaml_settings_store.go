package out

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"mugrush/internal/modules/drinking/domain"
	drinkingout "mugrush/internal/modules/drinking/port/out"
)

type YAMLSettingsStore struct {
	path string
}

func NewYAMLSettingsStore(path string) drinkingout.SettingsStore {
	return &YAMLSettingsStore{path: path}
}

func (s *YAMLSettingsStore) Path() string { return s.path }

// Load overlays the file on top of the defaults, so a partial file only
// changes the keys it names. A missing file yields the defaults.
func (s *YAMLSettingsStore) Load(_ context.Context) (domain.Settings, error) {
	settings := domain.DefaultSettings()
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return domain.Settings{}, fmt.Errorf("read settings: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(b))
	decoder.KnownFields(true)
	if err := decoder.Decode(&settings); err != nil && !errors.Is(err, io.EOF) {
		return domain.Settings{}, fmt.Errorf("decode settings %s: %w", s.path, err)
	}
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("settings %s: %w", s.path, err)
	}
	return settings, nil
}

func (s *YAMLSettingsStore) Exists(_ context.Context) (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat settings: %w", err)
}

func (s *YAMLSettingsStore) Save(_ context.Context, settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	payload, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
