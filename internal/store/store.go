// Package store persists signature streams in SQLite. Only derived
// dimensional values are written; source text never reaches the database.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mwestbrook/prismatic/go-engine/internal/gradient"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS streams (
	stream_id    TEXT PRIMARY KEY,
	label        TEXT NOT NULL,
	calibration  TEXT NOT NULL,
	created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	stream_id    TEXT NOT NULL,
	observed_at  TEXT NOT NULL,
	psi          REAL NOT NULL,
	rho          REAL NOT NULL,
	q_raw        REAL NOT NULL,
	q_opt        REAL NOT NULL,
	f            REAL NOT NULL,
	tau          REAL NOT NULL,
	FOREIGN KEY (stream_id) REFERENCES streams(stream_id)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_stream
	ON snapshots(stream_id, observed_at);

CREATE TABLE IF NOT EXISTS intervention_log (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	stream_id    TEXT NOT NULL,
	horizon_ms   INTEGER NOT NULL,
	reason_code  TEXT NOT NULL,
	dimension    TEXT,
	threshold    REAL NOT NULL,
	value        REAL NOT NULL,
	confidence   REAL NOT NULL,
	created_at   TEXT NOT NULL,
	FOREIGN KEY (stream_id) REFERENCES streams(stream_id)
);
`

// #endregion schema

// #region store-struct
// Store manages streams and their snapshot history in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion db-accessor

// #region create-stream
// CreateStream registers a new stream and returns its record.
func (s *Store) CreateStream(label, calibrationName string) (StreamRecord, error) {
	rec := StreamRecord{
		StreamID:    uuid.New().String(),
		Label:       label,
		Calibration: calibrationName,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := s.db.Exec(
		`INSERT INTO streams (stream_id, label, calibration, created_at)
		 VALUES (?, ?, ?, ?)`,
		rec.StreamID, rec.Label, rec.Calibration, rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return StreamRecord{}, fmt.Errorf("insert stream: %w", err)
	}
	return rec, nil
}

// #endregion create-stream

// #region get-stream
// GetStream retrieves a stream by ID.
func (s *Store) GetStream(streamID string) (StreamRecord, error) {
	var rec StreamRecord
	var createdStr string
	err := s.db.QueryRow(
		`SELECT stream_id, label, calibration, created_at
		 FROM streams WHERE stream_id = ?`, streamID,
	).Scan(&rec.StreamID, &rec.Label, &rec.Calibration, &createdStr)
	if err != nil {
		return StreamRecord{}, fmt.Errorf("get stream %s: %w", streamID, err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return rec, nil
}

// #endregion get-stream

// #region list-streams
// ListStreams returns all registered streams, newest first.
func (s *Store) ListStreams() ([]StreamRecord, error) {
	rows, err := s.db.Query(
		`SELECT stream_id, label, calibration, created_at
		 FROM streams ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list streams: %w", err)
	}
	defer rows.Close()

	var records []StreamRecord
	for rows.Next() {
		var rec StreamRecord
		var createdStr string
		if err := rows.Scan(&rec.StreamID, &rec.Label, &rec.Calibration, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion list-streams

// #region append-snapshot
// AppendSnapshot persists one reading for a stream.
func (s *Store) AppendSnapshot(streamID string, snap gradient.Snapshot) (SnapshotRecord, error) {
	res, err := s.db.Exec(
		`INSERT INTO snapshots (stream_id, observed_at, psi, rho, q_raw, q_opt, f, tau)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		streamID, snap.Timestamp.UTC().Format(time.RFC3339Nano),
		snap.Psi, snap.Rho, snap.QRaw, snap.QOpt, snap.F, snap.Tau,
	)
	if err != nil {
		return SnapshotRecord{}, fmt.Errorf("insert snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return SnapshotRecord{}, fmt.Errorf("snapshot id: %w", err)
	}
	return SnapshotRecord{
		ID:        id,
		StreamID:  streamID,
		Timestamp: snap.Timestamp.UTC(),
		Psi:       snap.Psi,
		Rho:       snap.Rho,
		QRaw:      snap.QRaw,
		QOpt:      snap.QOpt,
		F:         snap.F,
		Tau:       snap.Tau,
	}, nil
}

// #endregion append-snapshot

// #region list-snapshots
// ListSnapshots returns a stream's readings in observation order. A limit
// of 0 returns all of them.
func (s *Store) ListSnapshots(streamID string, limit int) ([]SnapshotRecord, error) {
	q := `SELECT id, stream_id, observed_at, psi, rho, q_raw, q_opt, f, tau
	      FROM snapshots WHERE stream_id = ? ORDER BY observed_at ASC`
	args := []interface{}{streamID}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var records []SnapshotRecord
	for rows.Next() {
		var rec SnapshotRecord
		var observedStr string
		if err := rows.Scan(&rec.ID, &rec.StreamID, &observedStr,
			&rec.Psi, &rec.Rho, &rec.QRaw, &rec.QOpt, &rec.F, &rec.Tau); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rec.Timestamp, _ = time.Parse(time.RFC3339Nano, observedStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion list-snapshots

// #region load-tracker
// LoadTracker rebuilds a gradient tracker from a stream's persisted history.
func (s *Store) LoadTracker(streamID string, cfg gradient.Config) (*gradient.Tracker, error) {
	records, err := s.ListSnapshots(streamID, 0)
	if err != nil {
		return nil, err
	}
	tracker := gradient.NewTracker(cfg)
	for _, rec := range records {
		snap := gradient.Snapshot{
			Timestamp: rec.Timestamp,
			Psi:       rec.Psi,
			Rho:       rec.Rho,
			QRaw:      rec.QRaw,
			QOpt:      rec.QOpt,
			F:         rec.F,
			Tau:       rec.Tau,
		}
		if err := tracker.AddSnapshot(snap); err != nil {
			return nil, fmt.Errorf("replay snapshot %d: %w", rec.ID, err)
		}
	}
	return tracker, nil
}

// #endregion load-tracker
