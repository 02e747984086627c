// Package id provides a 64-bit, time-ordered identifier generator in the
// Snowflake family.
//
// # Format
//
// An ID packs four fields into a uint64, from most- to least-significant:
//
//	[timestamp ms since epoch][datacenter id][machine id][sequence]
//
// The widths of the three low fields come from a Layout (DefaultLayout is
// 5/10/12 bits); the timestamp takes whatever remains of the 64 bits. Two
// generators with different (datacenter, machine) coordinates write those
// coordinates into disjoint bit positions and therefore never collide.
//
// # Monotonicity
//
// A Generator is monotonic per instance:
//   - Within one millisecond the sequence increments. When it would wrap, the
//     generator waits for the next millisecond before emitting the next ID.
//   - If the clock regresses by no more than Options.MaxClockBackward, the
//     generator waits until it catches up. A larger regression is refused with
//     ErrClockRegression; state is left untouched.
//   - A timestamp that does not fit its field yields ErrTimestampOverflow. The
//     generator never truncates or shifts the timestamp to make it fit.
//
// Usage
//
//	g, err := id.New(id.Options{DatacenterID: 1, MachineID: 1})
//	if err != nil { /* ErrInvalidCoordinate */ }
//	newID, err := g.Next()
//	parts := g.Decompose(newID)
//	s := newID.String() // decimal
package id
