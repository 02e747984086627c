package id

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCoordinate is returned by New when the datacenter or machine ID
	// does not fit its bit width.
	ErrInvalidCoordinate = errors.New("id: invalid coordinate")
	// ErrInvalidLayout is returned by New when the field widths cannot share a
	// 64-bit ID.
	ErrInvalidLayout = errors.New("id: invalid layout")
	// ErrClockRegression is returned when the clock moved backwards further than
	// the configured tolerance.
	ErrClockRegression = errors.New("id: clock moved backwards")
	// ErrTimestampOverflow is returned when the elapsed time since epoch no
	// longer fits the timestamp field.
	ErrTimestampOverflow = errors.New("id: timestamp exceeds layout capacity")
	// ErrBeforeEpoch is returned when the clock reads earlier than the epoch.
	ErrBeforeEpoch = errors.New("id: clock is before epoch")
	// ErrInvalidID is returned when parsing a malformed identifier.
	ErrInvalidID = errors.New("id: invalid identifier")
)

// CoordinateError reports which coordinate was rejected at construction.
type CoordinateError struct {
	Field string
	Value int64
	Max   int64
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("id: %s %d out of range [0, %d]", e.Field, e.Value, e.Max)
}

// Unwrap lets errors.Is match ErrInvalidCoordinate.
func (e *CoordinateError) Unwrap() error { return ErrInvalidCoordinate }
