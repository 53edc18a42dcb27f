package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"mugrush/internal/platform/logging"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mugrush.log")
	logger, err := logging.New(path, false)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("run started", zap.String("run_id", "r-1"))
	_ = logger.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), `"run_id":"r-1"`) {
		t.Fatalf("expected structured field in log, got %s", b)
	}
}
