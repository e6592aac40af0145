package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// #region log-intervention
// LogIntervention writes a provenance entry to the intervention_log table.
func LogIntervention(db *sql.DB, entry InterventionEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO intervention_log (stream_id, horizon_ms, reason_code, dimension, threshold, value, confidence, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.StreamID,
		entry.Horizon.Milliseconds(),
		entry.ReasonCode,
		nullIfEmpty(entry.Dimension),
		entry.Threshold,
		entry.Value,
		entry.Confidence,
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log intervention: %w", err)
	}
	return nil
}

// #endregion log-intervention

// #region list-interventions
// ListInterventions returns a stream's logged interventions, oldest first.
func ListInterventions(db *sql.DB, streamID string) ([]InterventionEntry, error) {
	rows, err := db.Query(
		`SELECT stream_id, horizon_ms, reason_code, dimension, threshold, value, confidence, created_at
		 FROM intervention_log WHERE stream_id = ? ORDER BY id ASC`, streamID,
	)
	if err != nil {
		return nil, fmt.Errorf("list interventions: %w", err)
	}
	defer rows.Close()

	var entries []InterventionEntry
	for rows.Next() {
		var e InterventionEntry
		var horizonMs int64
		var dim sql.NullString
		var createdStr string
		if err := rows.Scan(&e.StreamID, &horizonMs, &e.ReasonCode, &dim,
			&e.Threshold, &e.Value, &e.Confidence, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		e.Horizon = time.Duration(horizonMs) * time.Millisecond
		if dim.Valid {
			e.Dimension = dim.String
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// #endregion list-interventions

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
