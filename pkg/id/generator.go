package id

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultEpoch is the reference instant for the timestamp field.
var DefaultEpoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

// DefaultMaxClockBackward is the regression a generator waits out before
// refusing to issue IDs.
const DefaultMaxClockBackward = 5 * time.Millisecond

// waitStep is the sleep between clock reads while waiting for the next ms.
const waitStep = time.Millisecond / 8

// Options configures a Generator. Zero Layout, Epoch and NowMs fall back to
// DefaultLayout, DefaultEpoch and the wall clock. A zero MaxClockBackward
// refuses every regression.
type Options struct {
	DatacenterID     int64
	MachineID        int64
	Epoch            time.Time
	Layout           Layout
	MaxClockBackward time.Duration
	// NowMs returns the current time in milliseconds since the Unix epoch.
	NowMs func() int64
}

// DefaultOptions returns options for the given coordinates with the default
// layout, epoch and regression tolerance.
func DefaultOptions(datacenterID, machineID int64) Options {
	return Options{
		DatacenterID:     datacenterID,
		MachineID:        machineID,
		Epoch:            DefaultEpoch,
		Layout:           DefaultLayout,
		MaxClockBackward: DefaultMaxClockBackward,
	}
}

// Generator produces IDs for one (datacenter, machine) coordinate. It is safe
// for concurrent use; all state changes happen under a single mutex.
type Generator struct {
	layout        Layout
	epoch         time.Time
	epochMs       int64
	datacenterID  int64
	machineID     int64
	maxBackwardMs int64
	nowMs         func() int64

	mu       sync.Mutex
	lastTs   int64
	sequence uint64

	issued              atomic.Uint64
	sequenceWaits       atomic.Uint64
	regressionsAbsorbed atomic.Uint64
	regressionsRefused  atomic.Uint64
}

// New validates opts and returns a Generator. Out-of-range coordinates fail
// with an error matching ErrInvalidCoordinate.
func New(opts Options) (*Generator, error) {
	layout := opts.Layout
	if layout.IsZero() {
		layout = DefaultLayout
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if limit := layout.MaxMachineID(); opts.MachineID < 0 || opts.MachineID > limit {
		return nil, &CoordinateError{Field: "machine id", Value: opts.MachineID, Max: limit}
	}
	if limit := layout.MaxDatacenterID(); opts.DatacenterID < 0 || opts.DatacenterID > limit {
		return nil, &CoordinateError{Field: "datacenter id", Value: opts.DatacenterID, Max: limit}
	}
	if opts.MaxClockBackward < 0 {
		return nil, fmt.Errorf("id: negative MaxClockBackward %s", opts.MaxClockBackward)
	}
	epoch := opts.Epoch
	if epoch.IsZero() {
		epoch = DefaultEpoch
	}
	now := opts.NowMs
	if now == nil {
		now = func() int64 { return time.Now().UnixMilli() }
	}
	return &Generator{
		layout:        layout,
		epoch:         epoch,
		epochMs:       epoch.UnixMilli(),
		datacenterID:  opts.DatacenterID,
		machineID:     opts.MachineID,
		maxBackwardMs: opts.MaxClockBackward.Milliseconds(),
		nowMs:         now,
		lastTs:        -1,
	}, nil
}

// Next returns a fresh ID. It blocks while the sequence for the current
// millisecond is exhausted or a tolerated clock regression is waited out.
func (g *Generator) Next() (ID, error) {
	return g.NextContext(context.Background())
}

// NextContext is Next with a context that bounds any wait.
func (g *Generator) NextContext(ctx context.Context) (ID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ts, err := g.elapsed()
	if err != nil {
		return 0, err
	}

	if ts < g.lastTs {
		behind := g.lastTs - ts
		if behind > g.maxBackwardMs {
			g.regressionsRefused.Add(1)
			return 0, fmt.Errorf("%w by %dms", ErrClockRegression, behind)
		}
		g.regressionsAbsorbed.Add(1)
		if ts, err = g.waitPast(ctx, g.lastTs-1); err != nil {
			return 0, err
		}
	}

	var seq uint64
	if ts == g.lastTs {
		seq = (g.sequence + 1) & g.layout.MaxSequence()
		if seq == 0 {
			// sequence space for this ms is spent; resume on the next tick
			g.sequenceWaits.Add(1)
			if ts, err = g.waitPast(ctx, g.lastTs); err != nil {
				return 0, err
			}
		}
	}

	if uint64(ts) > g.layout.MaxTimestamp() {
		return 0, fmt.Errorf("%w: %dms since %s exceeds %d", ErrTimestampOverflow, ts, g.epoch.Format(time.RFC3339), g.layout.MaxTimestamp())
	}

	g.lastTs = ts
	g.sequence = seq
	g.issued.Add(1)
	return g.layout.Compose(uint64(ts), g.datacenterID, g.machineID, seq), nil
}

// NextN returns n IDs in ascending order.
func (g *Generator) NextN(ctx context.Context, n int) ([]ID, error) {
	if n < 0 {
		return nil, fmt.Errorf("id: negative count %d", n)
	}
	out := make([]ID, 0, n)
	for i := 0; i < n; i++ {
		v, err := g.NextContext(ctx)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

// elapsed reads the clock as milliseconds since epoch.
func (g *Generator) elapsed() (int64, error) {
	ts := g.nowMs() - g.epochMs
	if ts < 0 {
		return 0, fmt.Errorf("%w: %dms early", ErrBeforeEpoch, -ts)
	}
	return ts, nil
}

// waitPast spins until the clock reads later than after.
func (g *Generator) waitPast(ctx context.Context, after int64) (int64, error) {
	for {
		ts, err := g.elapsed()
		if err != nil {
			return 0, err
		}
		if ts > after {
			return ts, nil
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		time.Sleep(waitStep)
	}
}

// Decompose splits an ID using this generator's layout.
func (g *Generator) Decompose(v ID) Parts { return g.layout.Decompose(v) }

// Time returns the wall time encoded in v.
func (g *Generator) Time(v ID) time.Time { return g.Decompose(v).Time(g.epoch) }

// Layout returns the generator's field widths.
func (g *Generator) Layout() Layout { return g.layout }

// Epoch returns the reference instant.
func (g *Generator) Epoch() time.Time { return g.epoch }

// DatacenterID returns the datacenter coordinate.
func (g *Generator) DatacenterID() int64 { return g.datacenterID }

// MachineID returns the machine coordinate.
func (g *Generator) MachineID() int64 { return g.machineID }

// Stats is a snapshot of generator counters.
type Stats struct {
	Issued              uint64 `json:"issued"`
	SequenceWaits       uint64 `json:"sequenceWaits"`
	RegressionsAbsorbed uint64 `json:"regressionsAbsorbed"`
	RegressionsRefused  uint64 `json:"regressionsRefused"`
	LastTimestamp       int64  `json:"lastTimestamp"`
}

// Stats returns current counters.
func (g *Generator) Stats() Stats {
	g.mu.Lock()
	last := g.lastTs
	g.mu.Unlock()
	return Stats{
		Issued:              g.issued.Load(),
		SequenceWaits:       g.sequenceWaits.Load(),
		RegressionsAbsorbed: g.regressionsAbsorbed.Load(),
		RegressionsRefused:  g.regressionsRefused.Load(),
		LastTimestamp:       last,
	}
}
