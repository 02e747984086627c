package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlitestore "github.com/rzbill/flake/internal/storage/sqlite"
	"github.com/rzbill/flake/pkg/id"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS users (
		user_id INTEGER PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		fullname TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		password_salt TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS user_info (
		user_id INTEGER PRIMARY KEY,
		age INTEGER NOT NULL,
		address TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(user_id)
	);`

// SQLiteStore keeps users in the users and user_info tables. IDs are stored
// as their signed 64-bit bit pattern.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLiteStore opens or creates the database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sqlitestore.Open(path, sqliteSchema)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Exists(ctx context.Context, username string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username = ?`, username).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("users: exists: %w", err)
	}
	return true, nil
}

func (s *SQLiteStore) Create(ctx context.Context, u User, info Info) error {
	err := sqlitestore.InTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (user_id, username, fullname, password_hash, password_salt, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			int64(u.ID), u.Username, u.Fullname, u.PasswordHash, u.PasswordSalt,
			u.CreatedAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO user_info (user_id, age, address) VALUES (?, ?, ?)`,
			int64(u.ID), info.Age, info.Address,
		)
		return err
	})
	if sqlitestore.IsUniqueViolation(err) {
		return ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("users: create: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, userID id.ID) (User, Info, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT u.user_id, u.username, u.fullname, u.password_hash, u.password_salt, u.created_at,
		        i.age, i.address
		 FROM users u JOIN user_info i ON i.user_id = u.user_id
		 WHERE u.user_id = ?`, int64(userID))
	var (
		u       User
		info    Info
		rawID   int64
		created string
	)
	err := row.Scan(&rawID, &u.Username, &u.Fullname, &u.PasswordHash, &u.PasswordSalt, &created, &info.Age, &info.Address)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, Info{}, ErrNotFound
	}
	if err != nil {
		return User{}, Info{}, fmt.Errorf("users: get: %w", err)
	}
	u.ID = id.ID(uint64(rawID))
	info.UserID = u.ID
	if u.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return User{}, Info{}, fmt.Errorf("users: get: created_at: %w", err)
	}
	return u, info, nil
}

func (s *SQLiteStore) GetByUsername(ctx context.Context, username string) (User, error) {
	var rawID int64
	err := s.db.QueryRowContext(ctx, `SELECT user_id FROM users WHERE username = ?`, username).Scan(&rawID)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("users: get by username: %w", err)
	}
	u, _, err := s.Get(ctx, id.ID(uint64(rawID)))
	return u, err
}

func (s *SQLiteStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *SQLiteStore) Close() error { return s.db.Close() }
