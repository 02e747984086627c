package config

import (
	"os"
	"path/filepath"
)

// DefaultDataDir picks where flake keeps its store when no path is
// configured. FLAKE_DATA_DIR wins, then XDG_DATA_HOME, then the usual
// per-OS application directory, then ~/.flake. Without a home directory it
// falls back to ./data.
func DefaultDataDir() string {
	if v := os.Getenv("FLAKE_DATA_DIR"); v != "" {
		return v
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "flake")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "./data"
	}
	candidates := []struct{ probe, dir string }{
		{"/var/lib", "/var/lib/flake"},
		{filepath.Join(home, "Library"), filepath.Join(home, "Library", "Application Support", "Flake")},
		{filepath.Join(home, "AppData"), filepath.Join(home, "AppData", "Local", "Flake")},
	}
	for _, c := range candidates {
		if isDir(c.probe) {
			return c.dir
		}
	}
	return filepath.Join(home, ".flake")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
