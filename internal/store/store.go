// Package store is the single persistence service the rest of the app
// goes through. It keeps whole JSON documents under named keys, the
// same logical layout the legacy frontend kept in browser local
// storage (requests, reservations, passengers, budget_<requestId>),
// backed by one SQLite file.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Bucket is the read/write contract over the key-value documents.
// Both the store itself and an open transaction satisfy it, so
// repositories can run against either.
type Bucket interface {
	// Get returns the raw document and whether the key exists.
	Get(key string) ([]byte, bool, error)
	// Put writes the raw document, replacing any previous value.
	Put(key string, value []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
}

// KV is a Bucket that can also run multi-key atomic updates. The
// legacy app had no transaction boundary across keys; Update is the
// hardening applied when porting to real storage, used by the budget
// approval flow so the reservation insert, request removal and budget
// rewrite land together or not at all.
type KV interface {
	Bucket
	Update(fn func(tx Bucket) error) error
}

// SQLStore persists documents in a two-column SQLite table.
type SQLStore struct {
	db   *sql.DB
	path string
}

var _ KV = (*SQLStore)(nil)

const schema = `CREATE TABLE IF NOT EXISTS storage (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// Open opens or creates the store file under dataDir.
func Open(dataDir string) (*SQLStore, error) {
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("no se pudo crear el directorio de datos: %w", err)
	}
	path := filepath.Join(dataDir, "bonviapp.db")

	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("no se pudo abrir el almacenamiento: %w", err)
	}

	// SQLite only supports one writer; the app is single-user anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("no se pudo habilitar WAL: %w", err)
	}

	s := &SQLStore{db: db, path: path}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an existing connection. Used by tests.
func NewWithDB(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) init() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("no se pudo inicializar el esquema: %w", err)
	}
	return nil
}

// Path returns the location of the database file.
func (s *SQLStore) Path() string { return s.path }

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLStore) Get(key string) ([]byte, bool, error) {
	return getFrom(s.db, key)
}

func (s *SQLStore) Put(key string, value []byte) error {
	return putInto(s.db, key, value)
}

func (s *SQLStore) Delete(key string) error {
	return deleteFrom(s.db, key)
}

// Update runs fn inside one SQLite transaction. Any error from fn
// rolls every write back.
func (s *SQLStore) Update(fn func(tx Bucket) error) error {
	sqlTx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("no se pudo iniciar la transacción: %w", err)
	}
	if err := fn(sqlTxBucket{tx: sqlTx}); err != nil {
		_ = sqlTx.Rollback()
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("no se pudo confirmar la transacción: %w", err)
	}
	return nil
}

// querier abstracts *sql.DB and *sql.Tx.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
}

func getFrom(q querier, key string) ([]byte, bool, error) {
	var value string
	err := q.QueryRow(`SELECT value FROM storage WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func putInto(q querier, key string, value []byte) error {
	_, err := q.Exec(
		`INSERT INTO storage (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(value),
	)
	return err
}

func deleteFrom(q querier, key string) error {
	_, err := q.Exec(`DELETE FROM storage WHERE key = ?`, key)
	return err
}

type sqlTxBucket struct {
	tx *sql.Tx
}

func (b sqlTxBucket) Get(key string) ([]byte, bool, error) { return getFrom(b.tx, key) }
func (b sqlTxBucket) Put(key string, value []byte) error   { return putInto(b.tx, key, value) }
func (b sqlTxBucket) Delete(key string) error              { return deleteFrom(b.tx, key) }
