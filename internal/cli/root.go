package cli

import (
	"github.com/momentum-app/momentum/internal/api"
	"github.com/momentum-app/momentum/internal/backup"
	"github.com/momentum-app/momentum/internal/habit"
	"github.com/momentum-app/momentum/internal/identity"
	"github.com/momentum-app/momentum/internal/logger"
	"github.com/momentum-app/momentum/internal/reflection"
	"github.com/momentum-app/momentum/internal/storage"
)

// Context carries the wired application components into every command.
type Context struct {
	Store       storage.Provider
	Habits      *habit.Store
	Reflections reflection.Log
	Identity    identity.Provider
	API         *api.Client
}

// PerformAutomaticBackup snapshots the store before a destructive command.
// Failures are logged, never surfaced.
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
