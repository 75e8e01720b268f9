package system

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/momentum-app/momentum/internal/backup"
	"github.com/momentum-app/momentum/internal/cli"
	"github.com/momentum-app/momentum/internal/constants"
	"github.com/momentum-app/momentum/internal/keyring"
)

type DoctorCmd struct{}

// schemaValidator is implemented by the SQL-backed stores.
type schemaValidator interface {
	ValidateSchema() error
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	// Check 1: store reachable
	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("FAIL  Store reachable\n")
		fmt.Printf("      Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("OK    Store reachable\n")
		storeReachable = true
	}

	// Check 2: schema version
	if storeReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("FAIL  Schema version\n")
			fmt.Printf("      Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("OK    Schema version\n")
		}
	} else {
		fmt.Printf("SKIP  Schema version (store not reachable)\n")
	}

	// Check 3: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("WARN  Backups present\n")
		fmt.Printf("      %v\n", err)
	} else {
		fmt.Printf("OK    Backups present\n")
	}

	// Check 4: keyring available (warning only, remote features need it)
	if keyring.IsAvailable() {
		fmt.Printf("OK    Keyring available\n")
	} else {
		fmt.Printf("WARN  Keyring available\n")
		fmt.Printf("      OS keyring is unavailable; login and postgres credentials will not work\n")
	}

	// Check 5: backend reachable (warning only, local-only use is fine)
	if err := checkBackend(ctx); err != nil {
		fmt.Printf("WARN  Backend reachable\n")
		fmt.Printf("      %v\n", err)
	} else {
		fmt.Printf("OK    Backend reachable\n")
	}

	// Check 6: concurrent momentum processes (warning only)
	if err := checkConcurrentProcesses(); err != nil {
		fmt.Printf("WARN  Single process\n")
		fmt.Printf("      %v\n", err)
	} else {
		fmt.Printf("OK    Single process\n")
	}

	// Check 7: clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("FAIL  Clock sanity\n")
		fmt.Printf("      Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("OK    Clock sanity\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	_, _, err := ctx.Store.Read(constants.StorageKeyHabits)
	return err
}

func checkSchemaVersion(ctx *cli.Context) error {
	v, ok := ctx.Store.(schemaValidator)
	if !ok {
		// JSON store has no schema to validate
		return nil
	}
	return v.ValidateSchema()
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, run 'momentum backup create'")
	}
	if time.Since(backups[0].Timestamp) > 7*24*time.Hour {
		return fmt.Errorf("newest backup is older than a week (%s)", backups[0].Timestamp.Format(constants.DateFormat))
	}
	return nil
}

func checkBackend(ctx *cli.Context) error {
	reqCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return ctx.API.Health(reqCtx)
}

// checkConcurrentProcesses warns when another momentum process is running,
// since concurrent access to the same store file is unsupported.
func checkConcurrentProcesses() error {
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %v", err)
	}

	self := os.Getpid()
	count := 0
	for _, p := range procs {
		name := strings.TrimSuffix(p.Executable(), filepath.Ext(p.Executable()))
		if name == constants.AppName && p.Pid() != self {
			count++
		}
	}
	if count > 0 {
		return fmt.Errorf("%d other momentum process(es) running; concurrent store access can lose data", count)
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time looks wrong: %s", now.Format(time.RFC3339))
	}
	if _, err := time.LoadLocation(now.Location().String()); err != nil {
		return fmt.Errorf("invalid timezone %q: %v", now.Location(), err)
	}
	return nil
}
