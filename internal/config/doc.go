// Package config loads flake's process configuration. It exposes a
// Default() baseline, file loading (JSON or YAML by extension) and an
// environment overlay of FLAKE_* variables.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/flake.yaml"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
//	if err := cfg.Validate(); err != nil { /* refuse to start */ }
//	opts, _ := cfg.Generator.Options()
//	gen, _ := id.New(opts)
package config
