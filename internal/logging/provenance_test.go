package logging

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// #region helpers
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	_, err = db.Exec(`CREATE TABLE intervention_log (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		stream_id   TEXT NOT NULL,
		horizon_ms  INTEGER NOT NULL,
		reason_code TEXT NOT NULL,
		dimension   TEXT,
		threshold   REAL NOT NULL,
		value       REAL NOT NULL,
		confidence  REAL NOT NULL,
		created_at  TEXT NOT NULL
	)`)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// #endregion helpers

// #region log-intervention-tests
func TestLogIntervention_Success(t *testing.T) {
	db := setupDB(t)

	entry := InterventionEntry{
		StreamID:   "stream-1",
		Horizon:    10 * time.Second,
		ReasonCode: "predicted_q",
		Dimension:  "q_opt",
		Threshold:  0.85,
		Value:      1.0,
		Confidence: 0.97,
		CreatedAt:  time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := LogIntervention(db, entry); err != nil {
		t.Fatalf("LogIntervention: %v", err)
	}

	entries, err := ListInterventions(db, "stream-1")
	if err != nil {
		t.Fatalf("ListInterventions: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	got := entries[0]
	if got.ReasonCode != "predicted_q" || got.Dimension != "q_opt" {
		t.Errorf("unexpected entry: %+v", got)
	}
	if got.Horizon != 10*time.Second {
		t.Errorf("Horizon = %v, want 10s", got.Horizon)
	}
	if !got.CreatedAt.Equal(entry.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, entry.CreatedAt)
	}
}

func TestLogIntervention_DefaultsCreatedAt(t *testing.T) {
	db := setupDB(t)

	entry := InterventionEntry{
		StreamID:   "stream-1",
		Horizon:    time.Second,
		ReasonCode: "psi_velocity",
		Threshold:  -0.25,
		Value:      -0.5,
		Confidence: 0.8,
	}
	if err := LogIntervention(db, entry); err != nil {
		t.Fatalf("LogIntervention: %v", err)
	}

	entries, err := ListInterventions(db, "stream-1")
	if err != nil {
		t.Fatalf("ListInterventions: %v", err)
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be filled in when zero")
	}
	if entries[0].Dimension != "" {
		t.Errorf("Dimension = %q, want empty (stored as NULL)", entries[0].Dimension)
	}
}

func TestListInterventions_FiltersByStream(t *testing.T) {
	db := setupDB(t)

	for _, id := range []string{"a", "a", "b"} {
		entry := InterventionEntry{
			StreamID:   id,
			Horizon:    time.Second,
			ReasonCode: "f_velocity",
			Threshold:  -0.4,
			Value:      -0.6,
			Confidence: 0.9,
		}
		if err := LogIntervention(db, entry); err != nil {
			t.Fatalf("LogIntervention: %v", err)
		}
	}

	entries, err := ListInterventions(db, "a")
	if err != nil {
		t.Fatalf("ListInterventions: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
}

// #endregion log-intervention-tests
