package results

import (
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/verdict"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id        TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	params_json   TEXT NOT NULL,
	omega_series  BLOB NOT NULL,
	h_series      BLOB NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS verdicts (
	run_id           TEXT PRIMARY KEY,
	label            TEXT NOT NULL,
	score            REAL NOT NULL,
	lag              INTEGER NOT NULL,
	degenerate       INTEGER NOT NULL,
	thresholds_json  TEXT NOT NULL,
	stats_json       TEXT,
	created_at       TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

CREATE TABLE IF NOT EXISTS run_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id        TEXT NOT NULL,
	event         TEXT NOT NULL,
	reason        TEXT,
	created_at    TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct
// Store persists runs, verdicts and the run log in SQLite.
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

// #region save
// SaveRun inserts the run row and, when present, its verdict atomically.
func (s *Store) SaveRun(rec RunRecord) error {
	paramsJSON, err := json.Marshal(rec.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, name, params_json, omega_series, h_series, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Name, string(paramsJSON),
		encodeSeries(rec.Omega), encodeSeries(rec.H),
		created.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if rec.Verdict != nil {
		thJSON, err := json.Marshal(rec.Verdict.Thresholds)
		if err != nil {
			return fmt.Errorf("marshal thresholds: %w", err)
		}
		statsJSON, err := json.Marshal(rec.Verdict.Stats)
		if err != nil {
			return fmt.Errorf("marshal stats: %w", err)
		}
		_, err = tx.Exec(
			`INSERT INTO verdicts (run_id, label, score, lag, degenerate, thresholds_json, stats_json, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.RunID, string(rec.Verdict.Label), rec.Verdict.Score, rec.Verdict.Lag,
			boolInt(rec.Verdict.Degenerate), string(thJSON), string(statsJSON),
			created.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("insert verdict: %w", err)
		}
	}

	return tx.Commit()
}

// #endregion save

// #region get
// GetRun retrieves one run with its verdict, if any.
func (s *Store) GetRun(runID string) (RunRecord, error) {
	var rec RunRecord
	var paramsJSON, createdStr string
	var omegaBlob, hBlob []byte

	err := s.db.QueryRow(
		`SELECT run_id, name, params_json, omega_series, h_series, created_at
		 FROM runs WHERE run_id = ?`, runID,
	).Scan(&rec.RunID, &rec.Name, &paramsJSON, &omegaBlob, &hBlob, &createdStr)
	if err != nil {
		return RunRecord{}, fmt.Errorf("get run %s: %w", runID, err)
	}

	if err := json.Unmarshal([]byte(paramsJSON), &rec.Params); err != nil {
		return RunRecord{}, fmt.Errorf("unmarshal params: %w", err)
	}
	rec.Omega = decodeSeries(omegaBlob)
	rec.H = decodeSeries(hBlob)
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)

	v, err := s.getVerdict(runID)
	if err != nil {
		return RunRecord{}, err
	}
	rec.Verdict = v
	return rec, nil
}

func (s *Store) getVerdict(runID string) (*verdict.Verdict, error) {
	var label string
	var score float64
	var lag, degenerate int
	var thJSON string
	var statsJSON sql.NullString

	err := s.db.QueryRow(
		`SELECT label, score, lag, degenerate, thresholds_json, stats_json
		 FROM verdicts WHERE run_id = ?`, runID,
	).Scan(&label, &score, &lag, &degenerate, &thJSON, &statsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get verdict %s: %w", runID, err)
	}

	v := &verdict.Verdict{
		Label:      verdict.Label(label),
		Score:      score,
		Lag:        lag,
		Degenerate: degenerate != 0,
	}
	if err := json.Unmarshal([]byte(thJSON), &v.Thresholds); err != nil {
		return nil, fmt.Errorf("unmarshal thresholds: %w", err)
	}
	if statsJSON.Valid {
		if err := json.Unmarshal([]byte(statsJSON.String), &v.Stats); err != nil {
			return nil, fmt.Errorf("unmarshal stats: %w", err)
		}
	}
	return v, nil
}

// #endregion get

// #region list
// RunSummary is one row of ListRuns output; series are not loaded.
type RunSummary struct {
	RunID     string
	Name      string
	Label     string
	Score     float64
	CreatedAt time.Time
}

// ListRuns returns the most recent runs with their verdict labels.
func (s *Store) ListRuns(limit int) ([]RunSummary, error) {
	rows, err := s.db.Query(
		`SELECT r.run_id, r.name, COALESCE(v.label, ''), COALESCE(v.score, 0), r.created_at
		 FROM runs r LEFT JOIN verdicts v ON v.run_id = r.run_id
		 ORDER BY r.created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var createdStr string
		if err := rows.Scan(&r.RunID, &r.Name, &r.Label, &r.Score, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, r)
	}
	return out, rows.Err()
}

// #endregion list

// #region series-encoding
func encodeSeries(v []float64) []byte {
	buf := make([]byte, len(v)*8)
	for i, f := range v {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(f))
	}
	return buf
}

func decodeSeries(b []byte) []float64 {
	v := make([]float64, len(b)/8)
	for i := range v {
		v[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return v
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// #endregion series-encoding
