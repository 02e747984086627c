package runtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"

	cfgpkg "github.com/rzbill/flake/internal/config"
	pebblestore "github.com/rzbill/flake/internal/storage/pebble"
	"github.com/rzbill/flake/internal/users"
	"github.com/rzbill/flake/pkg/id"
	logpkg "github.com/rzbill/flake/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	DataDir string
	Config  cfgpkg.Config
	Logger  logpkg.Logger
	// NowMs overrides the generator clock. Tests only.
	NowMs func() int64
}

// Runtime owns the ID generator and the user store for one node.
type Runtime struct {
	gen    *id.Generator
	store  users.Store
	config cfgpkg.Config
	logger logpkg.Logger
}

// Open validates the configuration, builds the generator and opens the store
// selected by Config.Store.Driver.
func Open(opts Options) (*Runtime, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	logger = logger.With(logpkg.Component("runtime"))

	genOpts, err := cfg.Generator.Options()
	if err != nil {
		return nil, err
	}
	if opts.NowMs != nil {
		genOpts.NowMs = opts.NowMs
	}
	gen, err := id.New(genOpts)
	if err != nil {
		return nil, err
	}

	store, err := openStore(cfg.Store, opts.DataDir)
	if err != nil {
		return nil, err
	}

	layout := gen.Layout()
	logger.Info("runtime ready",
		logpkg.Int64("datacenter_id", gen.DatacenterID()),
		logpkg.Int64("machine_id", gen.MachineID()),
		logpkg.Str("epoch", gen.Epoch().Format(time.RFC3339)),
		logpkg.Any("layout", layout),
		logpkg.Str("ids_valid_until", gen.Epoch().Add(layout.Lifespan()).Format(time.RFC3339)),
		logpkg.Str("store", cfg.Store.Driver),
	)
	return &Runtime{gen: gen, store: store, config: cfg, logger: logger}, nil
}

func openStore(sc cfgpkg.StoreConfig, dataDir string) (users.Store, error) {
	path := sc.StorePath(dataDir)
	switch sc.Driver {
	case "sqlite":
		return users.OpenSQLiteStore(path)
	case "pebble":
		mode, err := pebblestore.ParseFsyncMode(sc.Fsync)
		if err != nil {
			return nil, err
		}
		db, err := pebblestore.Open(pebblestore.Options{
			DataDir:       path,
			Fsync:         mode,
			FsyncInterval: time.Duration(sc.FsyncIntervalMs) * time.Millisecond,
		})
		if err != nil {
			return nil, err
		}
		return users.NewPebbleStore(db), nil
	}
	return nil, fmt.Errorf("runtime: unknown store driver %q", sc.Driver)
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	var err error
	if r.store != nil {
		err = multierr.Append(err, r.store.Close())
		r.store = nil
	}
	if err == nil {
		r.logger.Info("runtime closed", logpkg.Uint64("ids_issued", r.gen.Stats().Issued))
	}
	return err
}

// CheckHealth reports whether the store is reachable and the generator can
// still represent the current time.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.store == nil {
		return errors.New("store not open")
	}
	var err error
	err = multierr.Append(err, r.store.Ping(ctx))
	layout := r.gen.Layout()
	if time.Since(r.gen.Epoch()) > layout.Lifespan() {
		err = multierr.Append(err, id.ErrTimestampOverflow)
	}
	return err
}

// Generator returns the node's ID generator.
func (r *Runtime) Generator() *id.Generator { return r.gen }

// Users returns the user store.
func (r *Runtime) Users() users.Store { return r.store }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }

// Logger returns the runtime's logger.
func (r *Runtime) Logger() logpkg.Logger { return r.logger }
