package users

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	pebblestore "github.com/rzbill/flake/internal/storage/pebble"
	"github.com/rzbill/flake/pkg/id"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeNever})
	if err != nil {
		t.Fatalf("open pebble: %v", err)
	}
	sq, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "flake.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	stores := map[string]Store{"pebble": NewPebbleStore(db), "sqlite": sq}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func sampleUser(userID id.ID, username string) (User, Info) {
	u := User{
		ID:           userID,
		Username:     username,
		Fullname:     "Ann Example",
		PasswordHash: "deadbeef",
		PasswordSalt: "42",
		CreatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	return u, Info{UserID: userID, Age: 30, Address: "1 Main St"}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			// Above 2^63 to cover the signed column in SQLite.
			userID := id.ID(1<<63 + 12345)
			u, info := sampleUser(userID, "ann")

			if ok, err := s.Exists(ctx, "ann"); err != nil || ok {
				t.Fatalf("exists before create = %v, %v", ok, err)
			}
			if err := s.Create(ctx, u, info); err != nil {
				t.Fatalf("create: %v", err)
			}
			if ok, err := s.Exists(ctx, "ann"); err != nil || !ok {
				t.Fatalf("exists after create = %v, %v", ok, err)
			}

			gotU, gotInfo, err := s.Get(ctx, userID)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if diff := cmp.Diff(u, gotU); diff != "" {
				t.Fatalf("user mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(info, gotInfo); diff != "" {
				t.Fatalf("info mismatch (-want +got):\n%s", diff)
			}

			byName, err := s.GetByUsername(ctx, "ann")
			if err != nil || byName.ID != userID {
				t.Fatalf("get by username = %v, %v", byName.ID, err)
			}
			if err := s.Ping(ctx); err != nil {
				t.Fatalf("ping: %v", err)
			}
		})
	}
}

func TestStoreNotFound(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, _, err := s.Get(ctx, 99); !errors.Is(err, ErrNotFound) {
				t.Fatalf("get: want ErrNotFound, got %v", err)
			}
			if _, err := s.GetByUsername(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("get by username: want ErrNotFound, got %v", err)
			}
		})
	}
}

func TestStoreUsernameTaken(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			u, info := sampleUser(1, "bob")
			if err := s.Create(ctx, u, info); err != nil {
				t.Fatalf("create: %v", err)
			}
			u2, info2 := sampleUser(2, "bob")
			if err := s.Create(ctx, u2, info2); !errors.Is(err, ErrUsernameTaken) {
				t.Fatalf("want ErrUsernameTaken, got %v", err)
			}
			if _, _, err := s.Get(ctx, 2); !errors.Is(err, ErrNotFound) {
				t.Fatalf("losing create must leave no rows, got %v", err)
			}
		})
	}
}

func TestSQLiteIDCollisionIsNotUsernameTaken(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "flake.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer s.Close()

	u, info := sampleUser(7, "ann")
	if err := s.Create(ctx, u, info); err != nil {
		t.Fatalf("create: %v", err)
	}
	u2, info2 := sampleUser(7, "bob")
	err = s.Create(ctx, u2, info2)
	if err == nil || errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("want internal error for id collision, got %v", err)
	}
	if ok, _ := s.Exists(ctx, "bob"); ok {
		t.Fatalf("failed create left bob behind")
	}
}

func TestStoreConcurrentCreateSameUsername(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			const racers = 8
			var (
				wg    sync.WaitGroup
				mu    sync.Mutex
				wins  int
				taken int
			)
			for i := 0; i < racers; i++ {
				wg.Add(1)
				go func(n int) {
					defer wg.Done()
					u, info := sampleUser(id.ID(100+n), "carol")
					err := s.Create(ctx, u, info)
					mu.Lock()
					defer mu.Unlock()
					switch {
					case err == nil:
						wins++
					case errors.Is(err, ErrUsernameTaken):
						taken++
					default:
						t.Errorf("create: %v", err)
					}
				}(i)
			}
			wg.Wait()
			if wins != 1 || taken != racers-1 {
				t.Fatalf("wins=%d taken=%d", wins, taken)
			}
		})
	}
}
