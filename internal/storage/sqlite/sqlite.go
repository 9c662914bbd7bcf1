// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The driver's init() function does this automatically when the package
// is loaded; we never call anything from it directly.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aanand-mishra/clubs-api/internal/config"
	"github.com/aanand-mishra/clubs-api/internal/storage"
	"github.com/aanand-mishra/clubs-api/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// busyTimeoutMs makes concurrent writers wait for the file lock instead
// of failing straight away with SQLITE_BUSY.
const busyTimeoutMs = 5000

// clubColumns is shared by every SELECT so Scan order never drifts.
// Rows written by other tools may hold NULLs; they read back as defaults.
const clubColumns = `id, name, COALESCE(description, ''), COALESCE(memberCount, 0), COALESCE(image, '')`

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

// New opens the SQLite database at cfg.StoragePath, creates the club
// table if it does not already exist, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", dsn(cfg.StoragePath))
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent, safe to run on every start.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS club (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT    NOT NULL,
			description TEXT,
			memberCount INTEGER DEFAULT 0,
			image       TEXT
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_busy_timeout=%d", path, sep, busyTimeoutMs)
}

// CreateClub inserts a new row into the club table.
// Placeholders (?) keep user input out of the SQL text.
func (s *SQLite) CreateClub(ctx context.Context, club types.Club) (int64, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"INSERT INTO club (name, description, memberCount, image) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("CreateClub: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, club.Name, club.Description, club.MemberCount, club.Image)
	if err != nil {
		return 0, fmt.Errorf("CreateClub: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateClub: last insert id: %w", err)
	}

	return lastID, nil
}

// GetClubByID fetches exactly one club row matched by primary key.
func (s *SQLite) GetClubByID(ctx context.Context, id int64) (types.Club, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT "+clubColumns+" FROM club WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Club{}, fmt.Errorf("GetClubByID: prepare: %w", err)
	}
	defer stmt.Close()

	var club types.Club

	// QueryRow never returns nil; a missing row surfaces from Scan as
	// sql.ErrNoRows.
	err = stmt.QueryRowContext(ctx, id).Scan(
		&club.ID,
		&club.Name,
		&club.Description,
		&club.MemberCount,
		&club.Image,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Club{}, storage.ErrNotFound
		}
		return types.Club{}, fmt.Errorf("GetClubByID: scan: %w", err)
	}

	return club, nil
}

// GetClubs returns all club rows in id order.
func (s *SQLite) GetClubs(ctx context.Context) ([]types.Club, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT "+clubColumns+" FROM club ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("GetClubs: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetClubs: query: %w", err)
	}
	defer rows.Close() // must close rows to free the DB connection

	// Non-nil so an empty table encodes as [] rather than null.
	clubs := make([]types.Club, 0)

	for rows.Next() {
		var club types.Club

		if err := rows.Scan(
			&club.ID,
			&club.Name,
			&club.Description,
			&club.MemberCount,
			&club.Image,
		); err != nil {
			return nil, fmt.Errorf("GetClubs: scan row: %w", err)
		}

		clubs = append(clubs, club)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetClubs: rows iteration: %w", err)
	}

	return clubs, nil
}

// DeleteClubByID removes a club row by primary key.
//
// The existence check and the delete are one statement: RETURNING yields
// no row when nothing matched, so two concurrent deletes of the same id
// give exactly one success and one ErrNotFound.
func (s *SQLite) DeleteClubByID(ctx context.Context, id int64) error {
	stmt, err := s.Db.PrepareContext(ctx, "DELETE FROM club WHERE id = ? RETURNING id")
	if err != nil {
		return fmt.Errorf("DeleteClubByID: prepare: %w", err)
	}
	defer stmt.Close()

	var deleted int64
	if err := stmt.QueryRowContext(ctx, id).Scan(&deleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("DeleteClubByID: exec: %w", err)
	}

	return nil
}

// Ping checks that the database file can be reached.
func (s *SQLite) Ping(ctx context.Context) error {
	if err := s.Db.PingContext(ctx); err != nil {
		return fmt.Errorf("Ping: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}
