package pebblestore

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testMetrics struct {
	read         int
	batchCommits int
	batchBytes   int
}

func (m *testMetrics) ObserveRead(d time.Duration, bytes int) { m.read += bytes }
func (m *testMetrics) ObserveBatchCommit(d time.Duration, bytes int) {
	m.batchCommits++
	m.batchBytes += bytes
}

func openTestDB(t *testing.T, mode FsyncMode) (*DB, *testMetrics) {
	t.Helper()
	metrics := &testMetrics{}
	db, err := Open(Options{
		DataDir:       t.TempDir(),
		Fsync:         mode,
		FsyncInterval: 2 * time.Millisecond,
		Metrics:       metrics,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, metrics
}

func TestSetGetDelete(t *testing.T) {
	db, metrics := openTestDB(t, FsyncModeInterval)

	if err := db.Set([]byte("user/1"), []byte("ann")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := db.Get([]byte("user/1"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "ann" {
		t.Fatalf("got %q", got)
	}
	if metrics.read == 0 {
		t.Fatalf("expected read metrics to record bytes")
	}
	ok, err := db.Has([]byte("user/1"))
	if err != nil || !ok {
		t.Fatalf("has = %v, %v", ok, err)
	}

	if err := db.Delete([]byte("user/1")); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := db.Get([]byte("user/1")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if ok, _ := db.Has([]byte("user/1")); ok {
		t.Fatalf("key still present after delete")
	}
}

func TestCommitBatch(t *testing.T) {
	db, metrics := openTestDB(t, FsyncModeAlways)

	b := db.NewBatch()
	defer b.Close()
	_ = b.Set([]byte("a"), []byte("1"), nil)
	_ = b.Set([]byte("b"), []byte("2"), nil)
	if err := db.CommitBatch(context.Background(), b); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if metrics.batchCommits != 1 || metrics.batchBytes == 0 {
		t.Fatalf("batch metrics not recorded: %+v", metrics)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b2 := db.NewBatch()
	defer b2.Close()
	_ = b2.Set([]byte("c"), []byte("3"), nil)
	if err := db.CommitBatch(ctx, b2); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if ok, _ := db.Has([]byte("c")); ok {
		t.Fatalf("cancelled batch must not be applied")
	}
}

func TestScanPrefix(t *testing.T) {
	db, _ := openTestDB(t, FsyncModeNever)
	for _, k := range []string{"user/2", "user/1", "userinfo/1", "username/ann", "user/3"} {
		if err := db.Set([]byte(k), []byte("x")); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}
	var keys []string
	if err := db.ScanPrefix([]byte("user/"), func(k, _ []byte) bool {
		keys = append(keys, string(k))
		return true
	}); err != nil {
		t.Fatalf("scan: %v", err)
	}
	want := []string{"user/1", "user/2", "user/3"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}

	n := 0
	_ = db.ScanPrefix([]byte("user"), func(_, _ []byte) bool { n++; return n < 2 })
	if n != 2 {
		t.Fatalf("early stop visited %d keys", n)
	}
}

func TestParseFsyncMode(t *testing.T) {
	for in, want := range map[string]FsyncMode{"": FsyncModeAlways, "always": FsyncModeAlways, "interval": FsyncModeInterval, "never": FsyncModeNever} {
		got, err := ParseFsyncMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseFsyncMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFsyncMode("sometimes"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPrefixEnd(t *testing.T) {
	if got := prefixEnd([]byte("ab")); string(got) != "ac" {
		t.Fatalf("prefixEnd(ab) = %q", got)
	}
	if got := prefixEnd([]byte{'a', 0xff}); string(got) != "b" {
		t.Fatalf("prefixEnd(a\\xff) = %q", got)
	}
	if got := prefixEnd([]byte{0xff, 0xff}); got != nil {
		t.Fatalf("prefixEnd(ffff) = %q", got)
	}
}

func TestOpenRequiresDir(t *testing.T) {
	if _, err := Open(Options{}); err == nil {
		t.Fatalf("expected error for empty DataDir")
	}
}

func TestFsyncModeCommitSync(t *testing.T) {
	for mode, want := range map[FsyncMode]bool{FsyncModeAlways: true, FsyncModeInterval: true, FsyncModeNever: false} {
		db, _ := openTestDB(t, mode)
		if db.writeSync != want {
			t.Fatalf("mode %v: writeSync = %v, want %v", mode, db.writeSync, want)
		}
	}
}
