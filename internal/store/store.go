// Package store persists deck snapshots in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/youruser/talingdeck/internal/deck"
	"github.com/youruser/talingdeck/internal/store/migrations"
	"github.com/youruser/talingdeck/internal/util"
)

var ErrNotFound = errors.New("deck snapshot not found")

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	clean := filepath.Clean(path)
	if err := util.EnsureParentDir(clean); err != nil {
		return nil, errors.Wrap(err, "create storage dir")
	}
	dsn := clean + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite db")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping sqlite db")
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "run migrations")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save upserts the snapshot for id.
func (s *Store) Save(ctx context.Context, id string, snap deck.Snapshot) error {
	if id == "" {
		return errors.New("deck id is required")
	}
	if snap.Cards == nil {
		snap.Cards = []string{}
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "encode snapshot")
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO deck_snapshots (id, snapshot, updated_at) VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET snapshot = excluded.snapshot, updated_at = excluded.updated_at`,
		id, string(b), time.Now().UTC().UnixMilli())
	if err != nil {
		return errors.Wrapf(err, "save snapshot %s", id)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, id string) (deck.Snapshot, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT snapshot FROM deck_snapshots WHERE id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return deck.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return deck.Snapshot{}, errors.Wrapf(err, "load snapshot %s", id)
	}
	var snap deck.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return deck.Snapshot{}, errors.Wrapf(err, "decode snapshot %s", id)
	}
	return snap, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM deck_snapshots WHERE id = ?`, id)
	if err != nil {
		return errors.Wrapf(err, "delete snapshot %s", id)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
