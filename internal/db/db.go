package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// DB is the operational store: global settings (cached sound file id and
// the like) and per-country fetch health. It holds current state only; no
// price history is kept.
type DB struct {
	sql *sql.DB
}

func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", dbPath)
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite best practice for embedded use
	sqldb.SetMaxOpenConns(1)
	sqldb.SetConnMaxLifetime(0)

	db := &DB{sql: sqldb}
	if err := db.migrate(context.Background()); err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	return db, nil
}

func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT NOT NULL);`,
		`CREATE TABLE IF NOT EXISTS global_settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS country_health (
			country_id TEXT PRIMARY KEY,
			cycle TEXT NOT NULL DEFAULT '',
			last_fetch_time INTEGER NOT NULL DEFAULT 0,
			last_error TEXT NOT NULL DEFAULT ''
		);`,
	}
	for _, s := range stmts {
		if _, err := d.sql.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (d *DB) GetGlobalSetting(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := d.sql.QueryRowContext(ctx, `SELECT value FROM global_settings WHERE key=?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (d *DB) SetGlobalSetting(ctx context.Context, key, value string) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO global_settings(key,value) VALUES(?,?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`, key, value)
	return err
}

// CountryHealth mirrors one country_health row.
type CountryHealth struct {
	CountryID string
	Cycle     string
	FetchedAt time.Time
	LastError string
}

// UpdateCountryHealth overwrites a country's fetch state after each
// attempt; errMsg is empty on success.
func (d *DB) UpdateCountryHealth(ctx context.Context, countryID, cycle string, fetchedAt time.Time, errMsg string) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO country_health(country_id,cycle,last_fetch_time,last_error) VALUES(?,?,?,?)
		 ON CONFLICT(country_id) DO UPDATE SET cycle=excluded.cycle,
			last_fetch_time=excluded.last_fetch_time, last_error=excluded.last_error`,
		countryID, cycle, fetchedAt.Unix(), errMsg)
	return err
}

func (d *DB) ListCountryHealth(ctx context.Context) ([]CountryHealth, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT country_id,cycle,last_fetch_time,last_error FROM country_health ORDER BY country_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CountryHealth
	for rows.Next() {
		var h CountryHealth
		var ts int64
		if err := rows.Scan(&h.CountryID, &h.Cycle, &ts, &h.LastError); err != nil {
			return nil, err
		}
		if ts > 0 {
			h.FetchedAt = time.Unix(ts, 0)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// UpdateLastPost records the id and time of the most recent price message.
func (d *DB) UpdateLastPost(ctx context.Context, messageID int, at time.Time) error {
	if err := d.SetGlobalSetting(ctx, "last_post_message_id", strconv.Itoa(messageID)); err != nil {
		return err
	}
	return d.SetGlobalSetting(ctx, "last_post_time", strconv.FormatInt(at.Unix(), 10))
}
