package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	drinkinginadapter "mugrush/internal/modules/drinking/adapter/in"
	drinkingoutadapter "mugrush/internal/modules/drinking/adapter/out"
	drinkingservice "mugrush/internal/modules/drinking/service"
	drinkingusecase "mugrush/internal/modules/drinking/usecase"
	"mugrush/internal/platform/clock"
	"mugrush/internal/platform/config"
	"mugrush/internal/platform/id"
	"mugrush/internal/platform/logging"
	uiapp "mugrush/internal/ui/app"
)

type App struct {
	DrinkingCLI drinkinginadapter.CLIHandler
	DrinkingTUI drinkinginadapter.TUIHandler
	Logger      *zap.Logger
}

func New(cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}

	runStore, err := drinkingoutadapter.NewSQLiteRunStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new run store: %w", err)
	}
	drinkingSvc := drinkingservice.NewRunService(
		clock.SystemClock{},
		id.UUID{},
		drinkingoutadapter.NewPCGRandomSource(),
		runStore,
		drinkingoutadapter.NewVaultRunJournal(cfg.DataDir),
	)
	drinkingUC := drinkingusecase.NewInteractor(
		drinkingSvc,
		drinkingoutadapter.NewYAMLSettingsStore(cfg.SettingsPath),
		logger,
	)
	logger.Debug("app ready", zap.String("data_dir", cfg.DataDir), zap.String("db", cfg.DBPath))

	return &App{
		DrinkingCLI: drinkinginadapter.NewCLIHandler(drinkingUC),
		DrinkingTUI: drinkinginadapter.NewTUIHandler(drinkingUC),
		Logger:      logger,
	}, nil
}

// Close flushes buffered log entries.
func (a *App) Close() {
	_ = a.Logger.Sync()
}

func RunTUI(app *App, seed int64) error {
	model := uiapp.NewModel(app.DrinkingTUI, app.DrinkingTUI, clock.SystemClock{}, seed)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
