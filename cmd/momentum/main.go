package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/momentum-app/momentum/internal/api"
	"github.com/momentum-app/momentum/internal/cli"
	"github.com/momentum-app/momentum/internal/cli/backups"
	"github.com/momentum-app/momentum/internal/cli/system"
	"github.com/momentum-app/momentum/internal/constants"
	apperr "github.com/momentum-app/momentum/internal/errors"
	"github.com/momentum-app/momentum/internal/habit"
	"github.com/momentum-app/momentum/internal/identity"
	"github.com/momentum-app/momentum/internal/logger"
	"github.com/momentum-app/momentum/internal/reflection"
	"github.com/momentum-app/momentum/internal/storage"
	"github.com/momentum-app/momentum/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path (.json or .db) or PostgreSQL connection string. PostgreSQL credentials must NOT be embedded in the connection string; use the OS keyring or MOMENTUM_DB_CONNECTION." default:"${config_path}"`
	Server  string `help:"Backend base URL." default:"${server_addr}"`
	Remote  bool   `help:"Store reflections on the backend instead of the local store."`
	User    string `help:"Override the backend user id for this invocation."`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init    system.InitCmd   `cmd:"" help:"Initialize momentum storage."`
	Doctor  system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd    `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Serve   system.ServeCmd  `cmd:"" help:"Run the backend HTTP server."`
	Login   system.LoginCmd  `cmd:"" help:"Store the backend user id in the OS keyring."`
	Logout  system.LogoutCmd `cmd:"" help:"Clear the stored user id."`
	Whoami  system.WhoamiCmd `cmd:"" help:"Show the logged-in user id."`
	Habit   cli.HabitCmd     `cmd:"" help:"Manage habits."`
	Reflect cli.ReflectCmd   `cmd:"" help:"Record and review daily reflections."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show keyring availability and stored entries."`
	} `cmd:"" help:"Manage credentials in the OS keyring."`
	Backup  struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("momentum"),
		kong.Description("Habit tracking and daily reflection companion"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
			"server_addr": constants.DefaultServerAddr,
		},
	)

	configPath := utils.ExpandHome(CLI.Config)

	var store storage.Provider
	switch {
	case strings.HasPrefix(configPath, "postgres://"), strings.HasPrefix(configPath, "postgresql://"):
		if storage.HasEmbeddedCredentials(configPath) {
			fmt.Fprintln(os.Stderr, "Error: PostgreSQL connection strings with embedded credentials are not allowed.")
			fmt.Fprintln(os.Stderr, "Store the full connection string in the OS keyring or MOMENTUM_DB_CONNECTION instead.")
			os.Exit(1)
		}
		store = storage.NewPostgresStore(configPath)
	case filepath.Ext(configPath) == ".json":
		store = storage.NewJSONStore(configPath)
	default:
		store = storage.NewSQLiteStore(configPath)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: utils.ConfigDir(configPath),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	client := api.NewClient(strings.TrimSuffix(CLI.Server, "/"))

	var id identity.Provider = identity.NewKeyringProvider()
	if CLI.User != "" {
		id = identity.Static(CLI.User)
	}

	habitStore := habit.NewStore(store)

	var log reflection.Log
	if CLI.Remote {
		log = reflection.NewRemoteLog(client, id)
	} else {
		log = reflection.NewLocalLog(store)
	}

	appCtx := &cli.Context{
		Store:       store,
		Habits:      habitStore,
		Reflections: log,
		Identity:    id,
		API:         client,
	}

	// Commands operating on local collections need the store loaded first.
	if needsLoadedStore(ctx.Command()) {
		if err := store.Load(); err != nil {
			apperr.Fatal(err)
		}
		habitStore.Load()
	}

	if err := ctx.Run(appCtx); err != nil {
		apperr.Fatal(err)
	}
}

func needsLoadedStore(command string) bool {
	for _, prefix := range []string{"habit", "reflect", "tui", "backup"} {
		if strings.HasPrefix(command, prefix) {
			return true
		}
	}
	return false
}
