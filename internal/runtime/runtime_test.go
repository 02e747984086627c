package runtime

import (
	"context"
	"errors"
	"testing"

	cfgpkg "github.com/rzbill/flake/internal/config"
	"github.com/rzbill/flake/pkg/id"
	logpkg "github.com/rzbill/flake/pkg/log"
)

func quietLogger() logpkg.Logger {
	return logpkg.NewLogger(logpkg.WithOutput(&logpkg.NullOutput{}))
}

func TestOpenCloseHealth(t *testing.T) {
	for _, driver := range []string{"pebble", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			cfg := cfgpkg.Default()
			cfg.Store.Driver = driver
			rt, err := Open(Options{DataDir: t.TempDir(), Config: cfg, Logger: quietLogger()})
			if err != nil {
				t.Fatalf("open runtime: %v", err)
			}
			if err := rt.CheckHealth(context.Background()); err != nil {
				t.Fatalf("health: %v", err)
			}
			if _, err := rt.Users().Exists(context.Background(), "nobody"); err != nil {
				t.Fatalf("store: %v", err)
			}
			if err := rt.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}
			if err := rt.Close(); err != nil {
				t.Fatalf("second close: %v", err)
			}
			if err := rt.CheckHealth(context.Background()); err == nil {
				t.Fatalf("health after close should fail")
			}
		})
	}
}

func TestOpenUsesConfiguredCoordinates(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.Generator.DatacenterID = 7
	cfg.Generator.MachineID = 300
	cfg.Store.Fsync = "interval"
	rt, err := Open(Options{DataDir: t.TempDir(), Config: cfg, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rt.Close()
	v, err := rt.Generator().Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if p := rt.Generator().Decompose(v); p.DatacenterID != 7 || p.MachineID != 300 {
		t.Fatalf("parts = %+v", p)
	}
}

func TestOpenRejectsInvalidConfig(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.Generator.MachineID = 5000
	_, err := Open(Options{DataDir: t.TempDir(), Config: cfg, Logger: quietLogger()})
	if !errors.Is(err, id.ErrInvalidCoordinate) {
		t.Fatalf("want ErrInvalidCoordinate, got %v", err)
	}
}

func TestHealthReportsExhaustedLayout(t *testing.T) {
	cfg := cfgpkg.Default()
	// 2 timestamp bits cover 3ms past an epoch in 2020.
	cfg.Generator.Epoch = "2020-01-01T00:00:00Z"
	cfg.Generator.Layout = id.Layout{DatacenterBits: 20, MachineBits: 20, SequenceBits: 22}
	rt, err := Open(Options{DataDir: t.TempDir(), Config: cfg, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rt.Close()
	if err := rt.CheckHealth(context.Background()); !errors.Is(err, id.ErrTimestampOverflow) {
		t.Fatalf("want ErrTimestampOverflow, got %v", err)
	}
	if _, err := rt.Generator().Next(); !errors.Is(err, id.ErrTimestampOverflow) {
		t.Fatalf("next: want ErrTimestampOverflow, got %v", err)
	}
}
