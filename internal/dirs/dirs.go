package dirs

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName       = "ytapi"
	tempDirName   = "yt-downloads"
	xdgConfigHome = "XDG_CONFIG_HOME"
)

// AppName returns the canonical application name for directory paths.
func AppName() string {
	return appName
}

// ConfigDir returns the directory searched for config.{yaml,json,toml}.
// - Linux: $XDG_CONFIG_HOME/ytapi or ~/.config/ytapi
// - macOS: ~/Library/Application Support/ytapi
// - others: os.UserConfigDir()/ytapi
func ConfigDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return underHome("Library", "Application Support", appName)
	case "linux":
		if xdg := os.Getenv(xdgConfigHome); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		return underHome(".config", appName)
	default:
		cfg, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(cfg, appName), nil
	}
}

func underHome(elem ...string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, elem...)...), nil
}

// DefaultTempDir returns the shared directory for in-flight artifacts.
// Every server and CLI process uses the same one so stale files from a
// crashed run are swept by the next.
func DefaultTempDir() string {
	return filepath.Join(os.TempDir(), tempDirName)
}

// Ensure creates the directory if it doesn't exist.
func Ensure(path string) error {
	if path == "" {
		return errors.New("empty path")
	}
	return os.MkdirAll(path, 0o755)
}

// EnsureConfigDir creates the config directory. A directory that cannot be
// resolved is not an error; there is simply no config file to read.
func EnsureConfigDir() error {
	p, err := ConfigDir()
	if err != nil {
		return nil
	}
	return Ensure(p)
}
