package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type Snapshot struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Op        string    `json:"op"`
	Vector    Vector3   `json:"vector"`
	Magnitude float32   `json:"magnitude"`
	CreatedAt time.Time `json:"created_at"`
}

const createSnapshots = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT    NOT NULL,
	op         TEXT    NOT NULL,
	x          REAL    NOT NULL,
	y          REAL    NOT NULL,
	z          REAL    NOT NULL,
	magnitude  REAL    NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS snapshots_session ON snapshots (session_id, id);`

type Store struct {
	db *sql.DB
}

func openStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// sqlite serializes writers; a single connection also keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createSnapshots); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Record(ctx context.Context, snap Snapshot) (int64, error) {
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (session_id, op, x, y, z, magnitude, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snap.SessionID, snap.Op, snap.Vector.X, snap.Vector.Y, snap.Vector.Z, snap.Magnitude, snap.CreatedAt.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("recording snapshot: %w", err)
	}

	return res.LastInsertId()
}

// History returns at most limit snapshots of a session, newest first.
func (s *Store) History(ctx context.Context, sessionID string, limit int) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, op, x, y, z, magnitude, created_at FROM snapshots WHERE session_id = ? ORDER BY id DESC LIMIT ?`,
		sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var (
			snap    Snapshot
			created int64
		)
		if err := rows.Scan(&snap.ID, &snap.SessionID, &snap.Op, &snap.Vector.X, &snap.Vector.Y, &snap.Vector.Z, &snap.Magnitude, &created); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snap.CreatedAt = time.Unix(0, created)
		snaps = append(snaps, snap)
	}

	return snaps, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
