package serverrun

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	cfgpkg "github.com/rzbill/flake/internal/config"
	"github.com/rzbill/flake/internal/runtime"
	grpcserver "github.com/rzbill/flake/internal/server/grpc"
	httpserver "github.com/rzbill/flake/internal/server/http"
	"github.com/rzbill/flake/internal/services/registration"
	logpkg "github.com/rzbill/flake/pkg/log"
)

type Options struct {
	DataDir string
	Config  cfgpkg.Config
	// Logger overrides the logger built from Config.Log.
	Logger logpkg.Logger
	// GRPCListener and HTTPListener, when set, are used instead of binding
	// Config.Server addresses.
	GRPCListener net.Listener
	HTTPListener net.Listener
}

// Run starts the gRPC and HTTP servers and blocks until ctx is cancelled, a
// signal arrives or either server fails.
func Run(ctx context.Context, opts Options) (err error) {
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.DataDir == "" {
		opts.DataDir = cfgpkg.DefaultDataDir()
	}
	if err := os.MkdirAll(opts.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger, err = logpkg.ApplyConfig(&opts.Config.Log)
		if err != nil {
			return err
		}
	}
	// Pebble logs through the standard library logger.
	logpkg.RedirectStdLog(logger)

	rt, err := runtime.Open(runtime.Options{DataDir: opts.DataDir, Config: opts.Config, Logger: logger})
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, rt.Close()) }()

	reg, err := registration.New(rt.Generator(), rt.Users(), registration.Options{
		Policy:            opts.Config.Registration.Policy,
		MinPasswordLength: opts.Config.Registration.MinPasswordLength,
		Logger:            logger,
	})
	if err != nil {
		return err
	}

	srv := opts.Config.Server
	logger.Info("Starting flake server",
		logpkg.Str("grpc", srv.GRPCAddr),
		logpkg.Str("http", srv.HTTPAddr),
		logpkg.Str("data_dir", opts.DataDir),
		logpkg.Int("max_batch", srv.MaxBatch),
		logpkg.Bool("policy", opts.Config.Registration.Policy != ""),
	)

	gsrv := grpcserver.New(rt, reg)
	hsrv := httpserver.New(rt, reg)

	// Servers stop before the deferred runtime Close.
	g, gctx := errgroup.WithContext(sctx)
	g.Go(func() error {
		if opts.GRPCListener != nil {
			return gsrv.Serve(gctx, opts.GRPCListener)
		}
		return gsrv.ListenAndServe(gctx, srv.GRPCAddr)
	})
	g.Go(func() error {
		if opts.HTTPListener != nil {
			return hsrv.Serve(gctx, opts.HTTPListener)
		}
		return hsrv.ListenAndServe(gctx, srv.HTTPAddr)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("flake server stopped", logpkg.Uint64("ids_issued", rt.Generator().Stats().Issued))
	return nil
}
