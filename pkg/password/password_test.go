package password

import "testing"

func TestHashKnownVectors(t *testing.T) {
	tests := []struct {
		secret, salt, want string
	}{
		{"secret", "123", "4c78c5e73a4f2472f9a40ceb10c852560d3d9f15c4146da7f42ff12fabec819e"},
		{"päss", "42", "bffa11d6e80ba1434112a6de70b2f1faedb762cbb7df439d4afc8b59f50caef4"},
	}
	for _, tt := range tests {
		if got := Hash(tt.secret, tt.salt); got != tt.want {
			t.Fatalf("Hash(%q, %q) = %s, want %s", tt.secret, tt.salt, got, tt.want)
		}
	}
}

func TestVerify(t *testing.T) {
	digest := Hash("hunter2", "99")
	if !Verify("hunter2", "99", digest) {
		t.Fatalf("expected match")
	}
	if Verify("hunter2", "98", digest) {
		t.Fatalf("different salt must not match")
	}
	if Verify("hunter3", "99", digest) {
		t.Fatalf("different secret must not match")
	}
}
