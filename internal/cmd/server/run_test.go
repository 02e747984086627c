package serverrun

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	cfgpkg "github.com/rzbill/flake/internal/config"
	logpkg "github.com/rzbill/flake/pkg/log"
)

func listen(t *testing.T) net.Listener {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	return l
}

func TestRunServesUntilCancelled(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	grpcL, httpL := listen(t), listen(t)
	cfg := cfgpkg.Default()
	cfg.Store.Fsync = "never"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, Options{
			DataDir:      t.TempDir(),
			Config:       cfg,
			Logger:       logpkg.NewLogger(logpkg.WithOutput(&logpkg.NullOutput{})),
			GRPCListener: grpcL,
			HTTPListener: httpL,
		})
	}()

	base := "http://" + httpL.Addr().String()
	var resp *http.Response
	var err error
	for deadline := time.Now().Add(5 * time.Second); time.Now().Before(deadline); time.Sleep(20 * time.Millisecond) {
		resp, err = http.Post(base+"/v1/ids?count=3", "application/json", nil)
		if err == nil {
			break
		}
	}
	if err != nil {
		t.Fatalf("server never answered: %v", err)
	}
	var body struct {
		IDs []string `json:"ids"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || len(body.IDs) != 3 {
		t.Fatalf("mint: %d %v", resp.StatusCode, body.IDs)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestRunRejectsBadPolicy(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.Registration.Policy = "age >"
	err := Run(context.Background(), Options{
		DataDir: t.TempDir(),
		Config:  cfg,
		Logger:  logpkg.NewLogger(logpkg.WithOutput(&logpkg.NullOutput{})),
	})
	if err == nil || !strings.Contains(err.Error(), "policy") {
		t.Fatalf("want policy error, got %v", err)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.Server.MaxBatch = 0
	if err := Run(context.Background(), Options{DataDir: t.TempDir(), Config: cfg, Logger: logpkg.NewLogger(logpkg.WithOutput(&logpkg.NullOutput{}))}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRunFailsOnBusyAddress(t *testing.T) {
	busy := listen(t)
	defer busy.Close()
	cfg := cfgpkg.Default()
	cfg.Server.GRPCAddr = busy.Addr().String()
	cfg.Server.HTTPAddr = "127.0.0.1:0"
	err := Run(context.Background(), Options{DataDir: t.TempDir(), Config: cfg, Logger: logpkg.NewLogger(logpkg.WithOutput(&logpkg.NullOutput{}))})
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("want bind error, got %v", err)
	}
}
