package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rzbill/flake/pkg/id"
	logpkg "github.com/rzbill/flake/pkg/log"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	Generator    GeneratorConfig    `json:"generator" yaml:"generator"`
	Store        StoreConfig        `json:"store" yaml:"store"`
	Registration RegistrationConfig `json:"registration" yaml:"registration"`
	Server       ServerConfig       `json:"server" yaml:"server"`
	Log          logpkg.Config      `json:"log" yaml:"log"`
}

// GeneratorConfig places this process in the ID fleet.
type GeneratorConfig struct {
	DatacenterID int64 `json:"datacenterId" yaml:"datacenterId"`
	MachineID    int64 `json:"machineId" yaml:"machineId"`
	// Epoch is an RFC3339 instant; empty means id.DefaultEpoch.
	Epoch              string    `json:"epoch" yaml:"epoch"`
	Layout             id.Layout `json:"layout" yaml:"layout"`
	MaxClockBackwardMs int64     `json:"maxClockBackwardMs" yaml:"maxClockBackwardMs"`
}

// StoreConfig selects the user store backend.
type StoreConfig struct {
	// Driver is "pebble" or "sqlite".
	Driver string `json:"driver" yaml:"driver"`
	// Path is the Pebble directory or SQLite file. Empty derives it from the
	// data directory.
	Path            string `json:"path" yaml:"path"`
	Fsync           string `json:"fsync" yaml:"fsync"`
	FsyncIntervalMs int    `json:"fsyncIntervalMs" yaml:"fsyncIntervalMs"`
}

// RegistrationConfig tunes the user registration service.
type RegistrationConfig struct {
	// Policy is an optional CEL expression over username, fullname, age and
	// address that must evaluate to true for a registration to proceed.
	Policy            string `json:"policy" yaml:"policy"`
	MinPasswordLength int    `json:"minPasswordLength" yaml:"minPasswordLength"`
}

// ServerConfig holds listen addresses and request limits.
type ServerConfig struct {
	GRPCAddr string `json:"grpcAddr" yaml:"grpcAddr"`
	HTTPAddr string `json:"httpAddr" yaml:"httpAddr"`
	// MaxBatch caps how many IDs one request may mint.
	MaxBatch int `json:"maxBatch" yaml:"maxBatch"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		Generator: GeneratorConfig{
			DatacenterID:       1,
			MachineID:          1,
			Layout:             id.DefaultLayout,
			MaxClockBackwardMs: id.DefaultMaxClockBackward.Milliseconds(),
		},
		Store: StoreConfig{
			Driver:          "pebble",
			Fsync:           "always",
			FsyncIntervalMs: 5,
		},
		Registration: RegistrationConfig{
			MinPasswordLength: 1,
		},
		Server: ServerConfig{
			GRPCAddr: ":50051",
			HTTPAddr: ":8080",
			MaxBatch: 1000,
		},
		Log: logpkg.Config{
			Level:      "info",
			Format:     "text",
			RedactKeys: []string{"password"},
		},
	}
}

// Load reads configuration from a JSON or YAML file (by extension). If path
// is empty, returns defaults. Unset keys keep their default values.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	return cfg, nil
}

// Options converts the generator section into id.Options.
func (g GeneratorConfig) Options() (id.Options, error) {
	opts := id.DefaultOptions(g.DatacenterID, g.MachineID)
	if !g.Layout.IsZero() {
		opts.Layout = g.Layout
	}
	if g.Epoch != "" {
		t, err := time.Parse(time.RFC3339, g.Epoch)
		if err != nil {
			return id.Options{}, fmt.Errorf("config: generator.epoch: %w", err)
		}
		opts.Epoch = t
	}
	if g.MaxClockBackwardMs < 0 {
		return id.Options{}, errors.New("config: generator.maxClockBackwardMs must be >= 0")
	}
	opts.MaxClockBackward = time.Duration(g.MaxClockBackwardMs) * time.Millisecond
	return opts, nil
}

// Validate rejects configurations the server could not start with.
func (c Config) Validate() error {
	opts, err := c.Generator.Options()
	if err != nil {
		return err
	}
	if err := opts.Layout.Validate(); err != nil {
		return err
	}
	if limit := opts.Layout.MaxDatacenterID(); opts.DatacenterID < 0 || opts.DatacenterID > limit {
		return &id.CoordinateError{Field: "datacenter id", Value: opts.DatacenterID, Max: limit}
	}
	if limit := opts.Layout.MaxMachineID(); opts.MachineID < 0 || opts.MachineID > limit {
		return &id.CoordinateError{Field: "machine id", Value: opts.MachineID, Max: limit}
	}
	switch c.Store.Driver {
	case "pebble", "sqlite":
	default:
		return fmt.Errorf("config: unknown store.driver %q (want pebble|sqlite)", c.Store.Driver)
	}
	switch c.Store.Fsync {
	case "always", "interval", "never":
	default:
		return fmt.Errorf("config: unknown store.fsync %q (want always|interval|never)", c.Store.Fsync)
	}
	if c.Server.MaxBatch <= 0 {
		return errors.New("config: server.maxBatch must be positive")
	}
	return nil
}

// StorePath resolves the store location under dataDir when Path is unset.
func (s StoreConfig) StorePath(dataDir string) string {
	if s.Path != "" {
		return s.Path
	}
	if s.Driver == "sqlite" {
		return filepath.Join(dataDir, "flake.db")
	}
	return filepath.Join(dataDir, "store")
}
