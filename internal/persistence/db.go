// Package persistence provides SQLite-based run history storage.
// The simulation itself keeps no persisted state; a DB only records what
// completed and in-flight runs observed.
package persistence

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/climatesim/internal/engine"
)

// Run statuses.
const (
	StatusRunning  = "running"
	StatusComplete = "complete"
	StatusFailed   = "failed"
)

// DB wraps a SQLite connection for run history.
type DB struct {
	conn *sqlx.DB
}

// Run is one recorded simulation run.
type Run struct {
	ID                 string    `db:"id" json:"id"`
	StartedAt          time.Time `db:"started_at" json:"started_at"`
	Seed               int64     `db:"seed" json:"seed"`
	Agents             int       `db:"agents" json:"agents"`
	Ticks              uint64    `db:"ticks" json:"ticks"`                     // Configured length
	CompletedTicks     uint64    `db:"completed_ticks" json:"completed_ticks"` // Last tick finished
	Policy             string    `db:"policy" json:"policy"`
	Traits             string    `db:"traits" json:"traits"`
	InitialTemperature float64   `db:"initial_temperature" json:"initial_temperature"`
	FinalTemperature   float64   `db:"final_temperature" json:"final_temperature"`
	TurnedOn           uint64    `db:"turned_on" json:"turned_on"`
	TurnedOff          uint64    `db:"turned_off" json:"turned_off"`
	Status             string    `db:"status" json:"status"`
	Error              string    `db:"error" json:"error,omitempty"`
}

// Sample is the world and population summary at one reported tick.
type Sample struct {
	RunID       string  `db:"run_id" json:"run_id"`
	Tick        uint64  `db:"tick" json:"tick"`
	Temperature float64 `db:"temperature" json:"temperature"`
	AvgRoomTemp float64 `db:"avg_room_temp" json:"avg_room_temp"`
	TurnedOn    uint64  `db:"turned_on" json:"turned_on"`
	TurnedOff   uint64  `db:"turned_off" json:"turned_off"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TIMESTAMP NOT NULL,
		seed INTEGER NOT NULL,
		agents INTEGER NOT NULL,
		ticks INTEGER NOT NULL,
		completed_ticks INTEGER NOT NULL DEFAULT 0,
		policy TEXT NOT NULL,
		traits TEXT NOT NULL,
		initial_temperature REAL NOT NULL,
		final_temperature REAL NOT NULL DEFAULT 0,
		turned_on INTEGER NOT NULL DEFAULT 0,
		turned_off INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS samples (
		run_id TEXT NOT NULL REFERENCES runs(id),
		tick INTEGER NOT NULL,
		temperature REAL NOT NULL,
		avg_room_temp REAL NOT NULL,
		turned_on INTEGER NOT NULL,
		turned_off INTEGER NOT NULL,
		PRIMARY KEY (run_id, tick)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// BeginRun records a new run in the running state and returns its ID.
func (db *DB) BeginRun(seed int64, p engine.Params) (string, error) {
	id := uuid.NewString()
	_, err := db.conn.Exec(`INSERT INTO runs
		(id, started_at, seed, agents, ticks, policy, traits, initial_temperature, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, time.Now().UTC(), seed, p.Agents, p.Ticks,
		p.Policy.String(), p.Traits.String(), p.InitialTemperature, StatusRunning,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// SaveSample records the simulation's state at tick.
func (db *DB) SaveSample(runID string, tick uint64, sim *engine.Simulation) error {
	_, err := db.conn.Exec(`INSERT OR REPLACE INTO samples
		(run_id, tick, temperature, avg_room_temp, turned_on, turned_off)
		VALUES (?, ?, ?, ?, ?, ?)`,
		runID, tick, sim.World.Temperature, sim.Stats.AvgRoomTemp,
		sim.Stats.TurnedOn, sim.Stats.TurnedOff,
	)
	if err != nil {
		return fmt.Errorf("insert sample %s@%d: %w", runID, tick, err)
	}
	return nil
}

// FinishRun stores the run's outcome. A non-nil runErr marks it failed; the
// configured length in ticks is kept either way.
func (db *DB) FinishRun(runID string, res engine.Result, runErr error) error {
	status, msg := StatusComplete, ""
	if runErr != nil {
		status, msg = StatusFailed, runErr.Error()
	}
	_, err := db.conn.Exec(`UPDATE runs SET
		completed_ticks = ?, final_temperature = ?, turned_on = ?, turned_off = ?, status = ?, error = ?
		WHERE id = ?`,
		res.Ticks, res.World.Temperature, res.Stats.TurnedOn, res.Stats.TurnedOff, status, msg, runID,
	)
	if err != nil {
		return fmt.Errorf("update run %s: %w", runID, err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs,
		"SELECT * FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	return runs, err
}

// Samples returns every sample recorded for a run in tick order.
func (db *DB) Samples(runID string) ([]Sample, error) {
	var samples []Sample
	err := db.conn.Select(&samples,
		"SELECT * FROM samples WHERE run_id = ? ORDER BY tick",
		runID,
	)
	return samples, err
}
