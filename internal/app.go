// Package internal provides the App struct that wires the task list
// components together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/valter-silva-au/todo-cli/internal/cli"
	"github.com/valter-silva-au/todo-cli/internal/core"
	"github.com/valter-silva-au/todo-cli/internal/observability"
	"github.com/valter-silva-au/todo-cli/internal/storage"
	"github.com/valter-silva-au/todo-cli/pkg/models"
)

// HomeEnvVar overrides base path discovery when set.
const HomeEnvVar = "TODO_HOME"

// App holds all service dependencies for the task list.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager
	Config    *models.Config

	// Observability
	Logger    *log.Logger
	EventLog  observability.EventLog
	StatsCalc observability.StatsCalculator

	// Storage layer
	ActiveStore    storage.CollectionStore
	CompletedStore storage.CollectionStore

	// Core services
	TaskMgr core.TaskManager
}

// NewApp creates and wires all components. basePath is the directory holding
// .todoconfig; relative data directories resolve against it.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := app.ConfigMgr.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	app.Config = cfg

	// --- Observability ---
	app.Logger = observability.NewLogger(os.Stderr, cfg.Log)
	var tmOpts []core.TaskManagerOption
	if cfg.History.Enabled {
		historyPath := core.HistoryPath(basePath, cfg)
		app.EventLog, err = observability.NewJSONLEventLog(historyPath)
		if err != nil {
			// Non-fatal: run without history.
			app.Logger.Warn("task history disabled", "path", historyPath, "err", err)
			app.EventLog = nil
		}
	}
	if app.EventLog != nil {
		app.StatsCalc = observability.NewStatsCalculator(app.EventLog)
		tmOpts = append(tmOpts, core.WithEventLogger(&eventLogAdapter{log: app.EventLog, logger: app.Logger}))
	}

	// --- Storage layer ---
	activePath, completedPath := core.CollectionPaths(basePath, cfg)
	storeOpts := []storage.CollectionOption{
		storage.WithParsePolicy(cfg.Storage.ParsePolicy),
		storage.WithLogger(app.Logger),
	}
	app.ActiveStore = storage.NewCollectionStore(activePath, storeOpts...)
	app.CompletedStore = storage.NewCollectionStore(completedPath, storeOpts...)

	// --- Core services ---
	app.TaskMgr = core.NewTaskManager(app.ActiveStore, app.CompletedStore, cfg.Matching.Policy, tmOpts...)

	app.Logger.Debug("app initialized",
		"base", basePath,
		"active", activePath,
		"completed", completedPath,
		"match", cfg.Matching.Policy,
		"parse", cfg.Storage.ParsePolicy,
		"history", app.EventLog != nil,
	)

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.TaskMgr = app.TaskMgr
	cli.ConfigMgr = app.ConfigMgr
	cli.Config = app.Config
	cli.EventLog = app.EventLog
	cli.StatsCalc = app.StatsCalc

	return app, nil
}

// Close releases resources held by the App, such as the history file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the directory holding .todoconfig. It checks
// TODO_HOME, then walks up from the working directory looking for
// .todoconfig, then falls back to the working directory.
func ResolveBasePath() string {
	if home := os.Getenv(HomeEnvVar); home != "" {
		return home
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	for dir := cwd; ; {
		if _, err := os.Stat(filepath.Join(dir, core.ConfigFileName)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return cwd
}

// eventLogAdapter adapts observability.EventLog to core.EventLogger.
type eventLogAdapter struct {
	log    observability.EventLog
	logger *log.Logger
}

func (a *eventLogAdapter) LogEvent(eventType, task string, data map[string]any) error {
	err := a.log.Write(observability.Event{
		Time: time.Now().UTC(),
		Type: eventType,
		Task: task,
		Data: data,
	})
	if err != nil {
		a.logger.Warn("recording task history", "type", eventType, "err", err)
	}
	return err
}
