package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/momentum-app/momentum/internal/constants"
)

// ExpandHome replaces a leading ~ with the user's home directory. Connection
// strings and paths without a tilde pass through unchanged.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigDir returns the directory for auxiliary app files (logs, backups)
// alongside the given store config. Connection strings have no meaningful
// parent directory and fall back to the default config dir.
func ConfigDir(configPath string) string {
	if strings.Contains(configPath, "://") {
		return filepath.Dir(ExpandHome(constants.DefaultConfigPath))
	}
	return filepath.Dir(configPath)
}
