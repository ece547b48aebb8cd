package cli

import (
	"github.com/valter-silva-au/todo-cli/internal/core"
	"github.com/valter-silva-au/todo-cli/internal/observability"
	"github.com/valter-silva-au/todo-cli/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	BasePath  string
	TaskMgr   core.TaskManager
	ConfigMgr core.ConfigurationManager
	Config    *models.Config

	// Nil unless history.enabled is set.
	EventLog  observability.EventLog
	StatsCalc observability.StatsCalculator
)
