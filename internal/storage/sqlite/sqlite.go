// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The blank import below registers the "sqlite3" driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/drivers-api/internal/storage"
	"github.com/aanand-mishra/drivers-api/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

// The busy timeout covers other processes holding the database file.
const dsnOptions = "?_journal_mode=WAL&_busy_timeout=5000"

const schema = `
	CREATE TABLE IF NOT EXISTS driver (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT    NOT NULL,
		last_name  TEXT    NOT NULL,
		country    TEXT    NOT NULL DEFAULT 'Unknown',
		team       TEXT    NOT NULL DEFAULT 'none',
		is_active  BOOLEAN NOT NULL DEFAULT 1
	);
	CREATE INDEX IF NOT EXISTS ix_driver_first_name ON driver (first_name);
	CREATE INDEX IF NOT EXISTS ix_driver_last_name  ON driver (last_name);
	CREATE INDEX IF NOT EXISTS ix_driver_country    ON driver (country);
	CREATE INDEX IF NOT EXISTS ix_driver_team       ON driver (team);
`

const driverColumns = "id, first_name, last_name, country, team, is_active"

// SQLite is the concrete implementation of storage.Storage.
// Db is a connection pool; each operation borrows one connection from it.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

// New opens (creating if needed) the SQLite database at path and makes
// sure the driver table exists.
func New(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+dsnOptions)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// SQLite allows a single writer. One pooled connection turns competing
	// sessions into a queue on the pool instead of SQLITE_BUSY errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// Ping verifies a connection to the database can be established.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.Db.PingContext(ctx)
}

// session borrows a single connection for the duration of fn and always
// hands it back to the pool, even when fn fails.
func (s *SQLite) session(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := s.Db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire session: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDriver(row scanner) (types.Driver, error) {
	var d types.Driver
	err := row.Scan(&d.ID, &d.FirstName, &d.LastName, &d.Country, &d.Team, &d.IsActive)
	return d, err
}

// ListDrivers returns one page of drivers ordered by ID.
func (s *SQLite) ListDrivers(ctx context.Context, page types.Page) ([]types.Driver, error) {
	drivers := make([]types.Driver, 0)

	err := s.session(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx,
			"SELECT "+driverColumns+" FROM driver ORDER BY id LIMIT ? OFFSET ?",
			page.Limit, page.Skip,
		)
		if err != nil {
			return fmt.Errorf("query: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			d, err := scanDriver(rows)
			if err != nil {
				return fmt.Errorf("scan row: %w", err)
			}
			drivers = append(drivers, d)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("rows iteration: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ListDrivers: %w", err)
	}

	return drivers, nil
}

// GetDriverByID fetches exactly one driver matched by primary key.
func (s *SQLite) GetDriverByID(ctx context.Context, id int64) (types.Driver, error) {
	var driver types.Driver

	err := s.session(ctx, func(conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx,
			"SELECT "+driverColumns+" FROM driver WHERE id = ? LIMIT 1", id)

		d, err := scanDriver(row)
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("scan: %w", err)
		}

		driver = d
		return nil
	})
	if err != nil {
		return types.Driver{}, fmt.Errorf("GetDriverByID(%d): %w", id, err)
	}

	return driver, nil
}

// CreateDriver inserts a new driver. Nil optional fields fall back to the
// package defaults, and RETURNING hands back the row exactly as stored.
func (s *SQLite) CreateDriver(ctx context.Context, in types.DriverCreate) (types.Driver, error) {
	country := types.DefaultCountry
	if in.Country != nil {
		country = *in.Country
	}
	team := types.DefaultTeam
	if in.Team != nil {
		team = *in.Team
	}
	isActive := types.DefaultIsActive
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	var driver types.Driver

	err := s.session(ctx, func(conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx,
			"INSERT INTO driver (first_name, last_name, country, team, is_active) "+
				"VALUES (?, ?, ?, ?, ?) RETURNING "+driverColumns,
			in.FirstName, in.LastName, country, team, isActive,
		)

		d, err := scanDriver(row)
		if err != nil {
			return fmt.Errorf("insert: %w", err)
		}

		driver = d
		return nil
	})
	if err != nil {
		return types.Driver{}, fmt.Errorf("CreateDriver: %w", err)
	}

	return driver, nil
}

// DeleteDriverByID removes a driver row by primary key and reports whether
// a row was actually removed.
func (s *SQLite) DeleteDriverByID(ctx context.Context, id int64) (bool, error) {
	var deleted bool

	err := s.session(ctx, func(conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx, "DELETE FROM driver WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("exec: %w", err)
		}

		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}

		deleted = n > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("DeleteDriverByID(%d): %w", id, err)
	}

	return deleted, nil
}
