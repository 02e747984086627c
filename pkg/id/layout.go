package id

import (
	"fmt"
	"math"
	"time"
)

// Layout fixes the widths of the coordinate and sequence fields. The
// timestamp occupies the remaining high bits.
type Layout struct {
	DatacenterBits int `json:"datacenterBits" yaml:"datacenterBits"`
	MachineBits    int `json:"machineBits" yaml:"machineBits"`
	SequenceBits   int `json:"sequenceBits" yaml:"sequenceBits"`
}

// DefaultLayout is 5 datacenter bits, 10 machine bits and 12 sequence bits,
// leaving 37 bits (about 4.3 years of milliseconds) for the timestamp.
var DefaultLayout = Layout{DatacenterBits: 5, MachineBits: 10, SequenceBits: 12}

// IsZero reports whether no width was set.
func (l Layout) IsZero() bool {
	return l.DatacenterBits == 0 && l.MachineBits == 0 && l.SequenceBits == 0
}

// Validate checks that every width is non-negative and that at least one
// timestamp bit remains.
func (l Layout) Validate() error {
	if l.DatacenterBits < 0 || l.MachineBits < 0 || l.SequenceBits < 0 {
		return fmt.Errorf("%w: negative width in %+v", ErrInvalidLayout, l)
	}
	if n := l.DatacenterBits + l.MachineBits + l.SequenceBits; n >= 64 {
		return fmt.Errorf("%w: %d coordinate+sequence bits leave no room for a timestamp", ErrInvalidLayout, n)
	}
	return nil
}

// TimestampBits is the width of the timestamp field.
func (l Layout) TimestampBits() int {
	return 64 - l.DatacenterBits - l.MachineBits - l.SequenceBits
}

// MaxDatacenterID is the largest datacenter coordinate the layout can hold.
func (l Layout) MaxDatacenterID() int64 { return int64(mask(l.DatacenterBits)) }

// MaxMachineID is the largest machine coordinate the layout can hold.
func (l Layout) MaxMachineID() int64 { return int64(mask(l.MachineBits)) }

// MaxSequence is the largest per-millisecond sequence value.
func (l Layout) MaxSequence() uint64 { return mask(l.SequenceBits) }

// MaxTimestamp is the largest millisecond offset from epoch that fits.
func (l Layout) MaxTimestamp() uint64 { return mask(l.TimestampBits()) }

// Lifespan is how long after the epoch IDs can be generated.
func (l Layout) Lifespan() time.Duration {
	ms := l.MaxTimestamp()
	if ms > uint64(math.MaxInt64/int64(time.Millisecond)) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ms) * time.Millisecond
}

func (l Layout) machineShift() uint    { return uint(l.SequenceBits) }
func (l Layout) datacenterShift() uint { return uint(l.MachineBits + l.SequenceBits) }
func (l Layout) timestampShift() uint {
	return uint(l.DatacenterBits + l.MachineBits + l.SequenceBits)
}

// Compose packs the four fields. Inputs are masked to their widths; callers
// are expected to pass in-range values.
func (l Layout) Compose(ts uint64, datacenterID, machineID int64, seq uint64) ID {
	return ID(ts&l.MaxTimestamp())<<l.timestampShift() |
		ID(uint64(datacenterID)&mask(l.DatacenterBits))<<l.datacenterShift() |
		ID(uint64(machineID)&mask(l.MachineBits))<<l.machineShift() |
		ID(seq&mask(l.SequenceBits))
}

// Parts is an ID split back into its fields.
type Parts struct {
	Timestamp    uint64 `json:"timestamp"`
	DatacenterID int64  `json:"datacenterId"`
	MachineID    int64  `json:"machineId"`
	Sequence     uint64 `json:"sequence"`
}

// Time converts the timestamp field back to wall time.
func (p Parts) Time(epoch time.Time) time.Time {
	return epoch.Add(time.Duration(p.Timestamp) * time.Millisecond)
}

// Decompose inverts Compose.
func (l Layout) Decompose(v ID) Parts {
	u := uint64(v)
	return Parts{
		Timestamp:    (u >> l.timestampShift()) & l.MaxTimestamp(),
		DatacenterID: int64((u >> l.datacenterShift()) & mask(l.DatacenterBits)),
		MachineID:    int64((u >> l.machineShift()) & mask(l.MachineBits)),
		Sequence:     u & mask(l.SequenceBits),
	}
}

func mask(bits int) uint64 {
	if bits <= 0 {
		return 0
	}
	if bits >= 64 {
		return math.MaxUint64
	}
	return 1<<uint(bits) - 1
}
