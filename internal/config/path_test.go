package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultDataDirOverrides(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected string
	}{
		{
			name:     "FLAKE_DATA_DIR wins",
			env:      map[string]string{"FLAKE_DATA_DIR": "/srv/flake", "XDG_DATA_HOME": "/custom/data"},
			expected: "/srv/flake",
		},
		{
			name:     "XDG_DATA_HOME override",
			env:      map[string]string{"FLAKE_DATA_DIR": "", "XDG_DATA_HOME": "/custom/data"},
			expected: "/custom/data/flake",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := DefaultDataDir(); got != tt.expected {
				t.Errorf("DefaultDataDir() = %s, expected %s", got, tt.expected)
			}
		})
	}
}

func TestDefaultDataDirNoHome(t *testing.T) {
	t.Setenv("FLAKE_DATA_DIR", "")
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", "")
	if got := DefaultDataDir(); got != "./data" {
		t.Errorf("expected fallback to './data', got %s", got)
	}
}

func TestDefaultDataDirShape(t *testing.T) {
	t.Setenv("FLAKE_DATA_DIR", "")
	t.Setenv("XDG_DATA_HOME", "")
	result := DefaultDataDir()
	if !filepath.IsAbs(result) && !strings.HasPrefix(result, "./") {
		t.Errorf("expected absolute path or ./ prefix, got %s", result)
	}
	if result != "./data" && !strings.HasSuffix(strings.ToLower(result), "flake") {
		t.Errorf("expected a flake directory, got %s", result)
	}
	if result != DefaultDataDir() {
		t.Errorf("DefaultDataDir should be stable")
	}
}

func TestIsDir(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{name: "existing directory", path: ".", expected: true},
		{name: "non-existent path", path: "/non/existent/path/that/does/not/exist", expected: false},
		{name: "file instead of directory", path: os.Args[0], expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDir(tt.path); got != tt.expected {
				t.Errorf("isDir(%s) = %v, expected %v", tt.path, got, tt.expected)
			}
		})
	}
}
