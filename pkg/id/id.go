package id

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// ID is a 64-bit identifier. Its big-endian byte form sorts the same way as
// its numeric value.
type ID uint64

// String returns the decimal form.
func (i ID) String() string { return strconv.FormatUint(uint64(i), 10) }

// Hex returns the 16-character big-endian hex form.
func (i ID) Hex() string { return fmtHex(i.Bytes()) }

// Bytes returns the 8-byte big-endian representation.
func (i ID) Bytes() []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(i))
	return b
}

// Compare returns -1, 0, 1.
func (i ID) Compare(other ID) int {
	switch {
	case i < other:
		return -1
	case i > other:
		return 1
	}
	return 0
}

// MarshalText encodes the ID as a decimal string so JSON clients without
// 64-bit integers keep full precision.
func (i ID) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

// UnmarshalText accepts the forms ParseID accepts.
func (i *ID) UnmarshalText(b []byte) error {
	v, err := ParseID(string(b))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

// ParseID parses a decimal ID, or a hex ID prefixed with 0x.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	v, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return ID(v), nil
}

// FromBytes decodes the 8-byte form produced by Bytes.
func FromBytes(b []byte) (ID, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("%w: want 8 bytes, got %d", ErrInvalidID, len(b))
	}
	return ID(binary.BigEndian.Uint64(b)), nil
}

// fmtHex is a small, allocation-lean hex encoder for fixed-size IDs.
func fmtHex(b []byte) string {
	const hexdigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hexdigits[v>>4]
		out[i*2+1] = hexdigits[v&0x0f]
	}
	return string(out)
}
