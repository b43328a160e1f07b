package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// #region entry
// RunLogEntry ties one lifecycle event to a run.
type RunLogEntry struct {
	RunID     string
	Event     string // "run_started" | "run_completed" | "run_failed" | "verdict"
	Reason    string
	CreatedAt time.Time
}

// #endregion entry

// #region log-event
// LogEvent writes a run lifecycle entry to the run_log table.
func LogEvent(db *sql.DB, entry RunLogEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO run_log (run_id, event, reason, created_at)
		 VALUES (?, ?, ?, ?)`,
		entry.RunID,
		entry.Event,
		nullIfEmpty(entry.Reason),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log event: %w", err)
	}
	return nil
}

// #endregion log-event

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
