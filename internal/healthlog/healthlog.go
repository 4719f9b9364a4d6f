// Package healthlog records periodic health samples to a local database
// for offline inspection — never account replica state (spec.md §1
// Non-goals exclude persistence of the terminal replica itself). Either
// backend speaks through database/sql; driver selection is the only
// thing that differs between them.
package healthlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"termbridge/internal/models"
)

const createTableSQLite = `
CREATE TABLE IF NOT EXISTS health_samples (
	account_id TEXT NOT NULL,
	recorded_at TIMESTAMP NOT NULL,
	connected INTEGER NOT NULL,
	connected_to_broker INTEGER NOT NULL,
	synchronized INTEGER NOT NULL,
	quotes_healthy INTEGER NOT NULL,
	uptime_1h INTEGER NOT NULL,
	uptime_1d INTEGER NOT NULL,
	uptime_1w INTEGER NOT NULL
)`

const createTablePostgres = `
CREATE TABLE IF NOT EXISTS health_samples (
	account_id TEXT NOT NULL,
	recorded_at TIMESTAMPTZ NOT NULL,
	connected BOOLEAN NOT NULL,
	connected_to_broker BOOLEAN NOT NULL,
	synchronized BOOLEAN NOT NULL,
	quotes_healthy BOOLEAN NOT NULL,
	uptime_1h INTEGER NOT NULL,
	uptime_1d INTEGER NOT NULL,
	uptime_1w INTEGER NOT NULL
)`

const insertSQLiteTemplate = `INSERT INTO health_samples
	(account_id, recorded_at, connected, connected_to_broker, synchronized, quotes_healthy, uptime_1h, uptime_1d, uptime_1w)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

const insertPostgresTemplate = `INSERT INTO health_samples
	(account_id, recorded_at, connected, connected_to_broker, synchronized, quotes_healthy, uptime_1h, uptime_1d, uptime_1w)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Recorder appends health snapshots for later inspection. Driver is
// "sqlite" or "postgres"; anything else is a construction-time error.
type Recorder struct {
	db     *sql.DB
	driver string
	insert string
}

// Open connects to dsn using driver ("sqlite" or "postgres") and ensures
// the health_samples table exists.
func Open(driver, dsn string) (*Recorder, error) {
	var sqlDriver, createTable, insert string
	switch driver {
	case "sqlite":
		sqlDriver, createTable, insert = "sqlite", createTableSQLite, insertSQLiteTemplate
	case "postgres":
		sqlDriver, createTable, insert = "postgres", createTablePostgres, insertPostgresTemplate
	default:
		return nil, fmt.Errorf("healthlog: unknown driver %q", driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("healthlog: open %s: %w", driver, err)
	}
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("healthlog: create table: %w", err)
	}

	return &Recorder{db: db, driver: driver, insert: insert}, nil
}

// Close releases the underlying database connection.
func (r *Recorder) Close() error {
	return r.db.Close()
}

// Record appends one health snapshot for accountID at recordedAt.
func (r *Recorder) Record(ctx context.Context, accountID string, recordedAt time.Time, status models.HealthStatus, uptime models.Uptime) error {
	connected, connectedToBroker, synchronized, quotesHealthy := interface{}(status.Connected), interface{}(status.ConnectedToBroker), interface{}(status.Synchronized), interface{}(status.QuoteStreamingHealthy)
	if r.driver == "sqlite" {
		// modernc.org/sqlite has no native boolean type; store as 0/1.
		connected, connectedToBroker, synchronized, quotesHealthy = boolToInt(status.Connected), boolToInt(status.ConnectedToBroker), boolToInt(status.Synchronized), boolToInt(status.QuoteStreamingHealthy)
	}

	_, err := r.db.ExecContext(ctx, r.insert,
		accountID, recordedAt,
		connected, connectedToBroker, synchronized, quotesHealthy,
		uptime.OneHour, uptime.OneDay, uptime.OneWeek,
	)
	if err != nil {
		return fmt.Errorf("healthlog: record sample for %s: %w", accountID, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
