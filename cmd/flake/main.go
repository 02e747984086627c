package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	clientcmd "github.com/rzbill/flake/internal/cmd/client"
	serverrun "github.com/rzbill/flake/internal/cmd/server"
	cfgpkg "github.com/rzbill/flake/internal/config"
	logpkg "github.com/rzbill/flake/pkg/log"
)

func main() {
	// Respect FLAKE_LOG_LEVEL for CLI output before any config is loaded.
	level := os.Getenv("FLAKE_LOG_LEVEL")
	parsed, err := logpkg.ParseLevel(level)
	if err != nil || level == "" {
		parsed = logpkg.InfoLevel
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(parsed),
		logpkg.WithFormatter(&logpkg.TextFormatter{}),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)
	logpkg.RedirectStdLog(logger)

	rootCmd := clientcmd.NewRoot()
	rootCmd.Long = "flake mints unique 64-bit IDs and registers users keyed by them."
	rootCmd.SilenceUsage = true

	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	serverCmd.AddCommand(newServerStartCommand())
	rootCmd.AddCommand(serverCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newServerStartCommand() *cobra.Command {
	startCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start flake server (gRPC and HTTP)",
		Aliases: []string{"run"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			dataDir, _ := cmd.Flags().GetString("data-dir")

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return serverrun.Run(ctx, serverrun.Options{DataDir: dataDir, Config: cfg})
		},
	}
	f := startCmd.Flags()
	f.String("config", os.Getenv("FLAKE_CONFIG"), "Config file (.json, .yaml or .yml)")
	f.String("data-dir", "", "Data directory (if not specified, uses OS-specific application data directory)")
	f.String("grpc", "", "gRPC listen address (default :50051)")
	f.String("http", "", "HTTP listen address (default :8080)")
	f.Int64("datacenter-id", -1, "Datacenter coordinate")
	f.Int64("machine-id", -1, "Machine coordinate")
	f.String("store", "", "User store driver: pebble|sqlite")
	f.String("fsync", "", "Pebble fsync mode: always|interval|never")
	f.String("policy", "", "CEL admission policy for registrations")
	f.String("log-level", "", "Log level: debug|info|warn|error")
	f.String("log-format", "", "Log format: text|json")
	return startCmd
}

// loadConfig layers defaults, the config file, FLAKE_* variables and
// explicit flags, in that order.
func loadConfig(cmd *cobra.Command) (cfgpkg.Config, error) {
	f := cmd.Flags()
	path, _ := f.GetString("config")
	cfg, err := cfgpkg.Load(path)
	if err != nil {
		return cfgpkg.Config{}, err
	}
	cfgpkg.FromEnv(&cfg)

	overrides := map[string]*string{
		"grpc":       &cfg.Server.GRPCAddr,
		"http":       &cfg.Server.HTTPAddr,
		"store":      &cfg.Store.Driver,
		"fsync":      &cfg.Store.Fsync,
		"policy":     &cfg.Registration.Policy,
		"log-level":  &cfg.Log.Level,
		"log-format": &cfg.Log.Format,
	}
	for name, dst := range overrides {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}
	if f.Changed("datacenter-id") {
		cfg.Generator.DatacenterID, _ = f.GetInt64("datacenter-id")
	}
	if f.Changed("machine-id") {
		cfg.Generator.MachineID, _ = f.GetInt64("machine-id")
	}
	if err := cfg.Validate(); err != nil {
		return cfgpkg.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
