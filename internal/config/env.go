package config

import (
	"os"
	"strconv"
)

// FromEnv overlays FLAKE_* environment variables onto cfg. Malformed numbers
// are ignored.
func FromEnv(cfg *Config) {
	envInt64("FLAKE_DATACENTER_ID", &cfg.Generator.DatacenterID)
	envInt64("FLAKE_MACHINE_ID", &cfg.Generator.MachineID)
	envString("FLAKE_EPOCH", &cfg.Generator.Epoch)
	envInt("FLAKE_DATACENTER_BITS", &cfg.Generator.Layout.DatacenterBits)
	envInt("FLAKE_MACHINE_BITS", &cfg.Generator.Layout.MachineBits)
	envInt("FLAKE_SEQUENCE_BITS", &cfg.Generator.Layout.SequenceBits)
	envInt64("FLAKE_MAX_CLOCK_BACKWARD_MS", &cfg.Generator.MaxClockBackwardMs)

	envString("FLAKE_STORE_DRIVER", &cfg.Store.Driver)
	envString("FLAKE_STORE_PATH", &cfg.Store.Path)
	envString("FLAKE_FSYNC", &cfg.Store.Fsync)
	envInt("FLAKE_FSYNC_INTERVAL_MS", &cfg.Store.FsyncIntervalMs)

	envString("FLAKE_REGISTRATION_POLICY", &cfg.Registration.Policy)
	envInt("FLAKE_MIN_PASSWORD_LENGTH", &cfg.Registration.MinPasswordLength)

	envString("FLAKE_GRPC", &cfg.Server.GRPCAddr)
	envString("FLAKE_HTTP", &cfg.Server.HTTPAddr)
	envInt("FLAKE_MAX_BATCH", &cfg.Server.MaxBatch)

	envString("FLAKE_LOG_LEVEL", &cfg.Log.Level)
	envString("FLAKE_LOG_FORMAT", &cfg.Log.Format)
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envInt64(key string, dst *int64) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}
