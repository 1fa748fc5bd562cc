/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/suparena/entityregistry/errors"
	"github.com/suparena/entityregistry/storagemodels"
)

const (
	nextIDKey   = "next_id"
	revisionKey = "revision"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS entities (
		id INTEGER PRIMARY KEY,
		payload BLOB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS owner_buckets (
		owner TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`,
}

// Store persists registry state in a SQLite database file.
type Store struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore opens (creating if needed) the database at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "registry.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !stderrors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	// Immediate transactions take the write lock before the revision is read, so
	// two processes on one file serialize their commits.
	db, err := sql.Open("sqlite", path+"?_txlock=immediate&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads every cell back.
func (s *Store) Load(ctx context.Context) (*storagemodels.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := storagemodels.NewState()

	next, err := readMeta(ctx, s.db, nextIDKey)
	if err != nil {
		return nil, err
	}
	state.NextID = uint32(next)

	revision, err := readMeta(ctx, s.db, revisionKey)
	if err != nil {
		return nil, err
	}
	state.Revision = revision

	rows, err := s.db.QueryContext(ctx, `SELECT id, payload FROM entities`)
	if err != nil {
		return nil, fmt.Errorf("select entities: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var (
			id      int64
			payload []byte
			e       storagemodels.Entity
		)
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("decode entity %d: %w", id, err)
		}
		state.Entities[uint32(id)] = e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entities: %w", err)
	}

	bucketRows, err := s.db.QueryContext(ctx, `SELECT owner, payload FROM owner_buckets`)
	if err != nil {
		return nil, fmt.Errorf("select owner buckets: %w", err)
	}
	defer func() { _ = bucketRows.Close() }()
	for bucketRows.Next() {
		var (
			owner   string
			payload []byte
			bucket  []storagemodels.Entity
		)
		if err := bucketRows.Scan(&owner, &payload); err != nil {
			return nil, fmt.Errorf("scan owner bucket: %w", err)
		}
		if err := json.Unmarshal(payload, &bucket); err != nil {
			return nil, fmt.Errorf("decode bucket of %q: %w", owner, err)
		}
		state.Buckets[storagemodels.Identity(owner)] = bucket
	}
	if err := bucketRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate owner buckets: %w", err)
	}
	return state, nil
}

// Commit writes the change in one transaction. A revision or NextId that moved
// since the change was staged aborts the commit with a condition failed error.
func (s *Store) Commit(ctx context.Context, change storagemodels.Change) (retErr error) {
	if change.Empty() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	revision, err := readMeta(ctx, tx, revisionKey)
	if err != nil {
		return err
	}
	if revision != change.PrevRevision {
		return errors.NewConditionFailedError("commit", fmt.Sprintf("Revision = %d (found %d)", change.PrevRevision, revision))
	}
	if err := writeMeta(ctx, tx, revisionKey, revision+1); err != nil {
		return err
	}

	if change.NextID != nil {
		current, err := readMeta(ctx, tx, nextIDKey)
		if err != nil {
			return err
		}
		if current != uint64(change.PrevNextID) {
			return errors.NewConditionFailedError("commit", fmt.Sprintf("NextId = %d (found %d)", change.PrevNextID, current))
		}
		if err := writeMeta(ctx, tx, nextIDKey, uint64(*change.NextID)); err != nil {
			return err
		}
	}

	for _, e := range change.Entities {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode entity %d: %w", e.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO entities (id, payload) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`,
			int64(e.ID), payload); err != nil {
			return fmt.Errorf("write entity %d: %w", e.ID, err)
		}
	}

	for owner, bucket := range change.Buckets {
		payload, err := json.Marshal(storagemodels.CloneBucket(bucket))
		if err != nil {
			return fmt.Errorf("encode bucket of %q: %w", owner, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO owner_buckets (owner, payload) VALUES (?, ?) ON CONFLICT(owner) DO UPDATE SET payload = excluded.payload`,
			string(owner), payload); err != nil {
			return fmt.Errorf("write bucket of %q: %w", owner, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func readMeta(ctx context.Context, q queryer, key string) (uint64, error) {
	var v int64
	err := q.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&v)
	if stderrors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", key, err)
	}
	return uint64(v), nil
}

func writeMeta(ctx context.Context, tx *sql.Tx, key string, value uint64) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, int64(value)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
