package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	pebblestore "github.com/rzbill/flake/internal/storage/pebble"
	"github.com/rzbill/flake/pkg/id"
)

var (
	prefixUser     = []byte("user/")
	prefixInfo     = []byte("userinfo/")
	prefixUsername = []byte("username/")
)

// PebbleStore keeps users in a Pebble keyspace:
//
//	user/<id be64>      -> User JSON
//	userinfo/<id be64>  -> Info JSON
//	username/<name>     -> id be64
type PebbleStore struct {
	db *pebblestore.DB
	// mu serialises the username check with the batch that claims it.
	mu sync.Mutex
}

var _ Store = (*PebbleStore)(nil)

// NewPebbleStore wraps an open database. Close closes db.
func NewPebbleStore(db *pebblestore.DB) *PebbleStore {
	return &PebbleStore{db: db}
}

func userKey(v id.ID) []byte      { return append(append([]byte(nil), prefixUser...), v.Bytes()...) }
func infoKey(v id.ID) []byte      { return append(append([]byte(nil), prefixInfo...), v.Bytes()...) }
func usernameKey(s string) []byte { return append(append([]byte(nil), prefixUsername...), s...) }

func (s *PebbleStore) Exists(ctx context.Context, username string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.db.Has(usernameKey(username))
}

func (s *PebbleStore) Create(ctx context.Context, u User, info Info) error {
	ub, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("users: encode user: %w", err)
	}
	ib, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("users: encode info: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	taken, err := s.db.Has(usernameKey(u.Username))
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}

	b := s.db.NewBatch()
	defer b.Close()
	if err := b.Set(userKey(u.ID), ub, nil); err != nil {
		return err
	}
	if err := b.Set(infoKey(u.ID), ib, nil); err != nil {
		return err
	}
	if err := b.Set(usernameKey(u.Username), u.ID.Bytes(), nil); err != nil {
		return err
	}
	return s.db.CommitBatch(ctx, b)
}

func (s *PebbleStore) Get(ctx context.Context, userID id.ID) (User, Info, error) {
	if err := ctx.Err(); err != nil {
		return User{}, Info{}, err
	}
	var u User
	if err := s.getJSON(userKey(userID), &u); err != nil {
		return User{}, Info{}, err
	}
	var info Info
	if err := s.getJSON(infoKey(userID), &info); err != nil {
		return User{}, Info{}, err
	}
	return u, info, nil
}

func (s *PebbleStore) GetByUsername(ctx context.Context, username string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	raw, err := s.db.Get(usernameKey(username))
	if errors.Is(err, pebblestore.ErrNotFound) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	userID, err := id.FromBytes(raw)
	if err != nil {
		return User{}, fmt.Errorf("users: corrupt username index for %q: %w", username, err)
	}
	var u User
	if err := s.getJSON(userKey(userID), &u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *PebbleStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Ping()
}

func (s *PebbleStore) Close() error { return s.db.Close() }

func (s *PebbleStore) getJSON(key []byte, v any) error {
	raw, err := s.db.Get(key)
	if errors.Is(err, pebblestore.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
