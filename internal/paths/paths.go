// Package paths resolves the configuration directory location.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the per-user directory name under the platform config root.
const appDirName = "trainyard"

// ConfigFileName is the file read from the configuration directory.
const ConfigFileName = "config.yaml"

// EnvConfigDir overrides the configuration directory.
const EnvConfigDir = "TRAINYARD_CONFIG_DIR"

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/trainyard (fallback ~/.config/trainyard)
// macOS:   ~/Library/Application Support/trainyard
// Windows: %APPDATA%/trainyard
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appDirName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > TRAINYARD_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ConfigFile returns the config.yaml path inside dir.
func ConfigFile(dir string) string {
	return filepath.Join(dir, ConfigFileName)
}
