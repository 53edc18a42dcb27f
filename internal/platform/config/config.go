package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv overrides the default data directory.
const HomeEnv = "MUGRUSH_HOME"

type Config struct {
	DataDir      string
	DBPath       string
	SettingsPath string
	LogPath      string
	Debug        bool
}

func New(dataDir string, debug bool) (Config, error) {
	if dataDir == "" {
		dataDir = os.Getenv(HomeEnv)
	}
	if dataDir == "" {
		return Config{}, fmt.Errorf("data directory is required")
	}
	state := filepath.Join(dataDir, ".mugrush")
	return Config{
		DataDir:      dataDir,
		DBPath:       filepath.Join(state, "mugrush.db"),
		SettingsPath: filepath.Join(dataDir, "settings.yaml"),
		LogPath:      filepath.Join(state, "mugrush.log"),
		Debug:        debug,
	}, nil
}
