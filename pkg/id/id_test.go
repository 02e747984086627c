package id

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    ID
		wantErr bool
	}{
		{in: "0", want: 0},
		{in: "18446744073709551615", want: ID(^uint64(0))},
		{in: " 42 ", want: 42},
		{in: "0x2a", want: 42},
		{in: "0X00000000000000FF", want: 255},
		{in: "", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "0x", wantErr: true},
		{in: "abc", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseID(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidID) {
				t.Fatalf("ParseID(%q): want ErrInvalidID, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("ParseID(%q) = %d, %v; want %d", tt.in, got, err, tt.want)
		}
	}
}

func TestBytesOrderMatchesNumericOrder(t *testing.T) {
	a, b := ID(255), ID(256)
	if a.Compare(b) >= 0 {
		t.Fatalf("expected a<b")
	}
	if bytes.Compare(a.Bytes(), b.Bytes()) >= 0 {
		t.Fatalf("byte order disagrees with numeric order")
	}
	back, err := FromBytes(b.Bytes())
	if err != nil || back != b {
		t.Fatalf("FromBytes = %d, %v", back, err)
	}
	if _, err := FromBytes([]byte{1, 2, 3}); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("want ErrInvalidID for short input, got %v", err)
	}
}

func TestHex(t *testing.T) {
	if got := ID(0x0102030405060708).Hex(); got != "0102030405060708" {
		t.Fatalf("hex = %s", got)
	}
}

func TestJSONUsesDecimalString(t *testing.T) {
	type payload struct {
		ID ID `json:"id"`
	}
	b, err := json.Marshal(payload{ID: 9007199254740993})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"id":"9007199254740993"}` {
		t.Fatalf("got %s", b)
	}
	var back payload
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ID != 9007199254740993 {
		t.Fatalf("round trip lost precision: %d", back.ID)
	}
}

func TestDefaultLayoutWidths(t *testing.T) {
	l := DefaultLayout
	if l.TimestampBits() != 37 {
		t.Fatalf("timestamp bits = %d", l.TimestampBits())
	}
	if l.MaxMachineID() != 1023 || l.MaxDatacenterID() != 31 || l.MaxSequence() != 4095 {
		t.Fatalf("unexpected maxima for %+v", l)
	}
	// 2^37 ms is a little over four years.
	if got := l.Lifespan(); got < 4*365*24*time.Hour || got > 5*365*24*time.Hour {
		t.Fatalf("lifespan = %s", got)
	}
}

func TestComposeMasksFields(t *testing.T) {
	l := DefaultLayout
	v := l.Compose(1, 1, 1, 1)
	want := ID(1<<27 | 1<<22 | 1<<12 | 1)
	if v != want {
		t.Fatalf("compose = %b, want %b", v, want)
	}
	// a sequence wider than its field must not bleed into the machine bits
	if got := l.Decompose(l.Compose(0, 0, 0, 1<<12)); got.MachineID != 0 || got.Sequence != 0 {
		t.Fatalf("overflowing sequence leaked: %+v", got)
	}
}
