// Package storage defines the Storage interface, the contract that any
// database backend must satisfy to work with this application.
//
// Handlers only depend on this interface. main.go picks the concrete
// backend (SQLite by default, PostgreSQL when configured) and injects it.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/clubs-api/internal/types"
)

// ErrNotFound is returned when no club matches the requested id.
// Handlers turn it into a 404; every other storage error is a 500.
var ErrNotFound = errors.New("club not found")

// Storage is the database contract.
type Storage interface {
	// CreateClub inserts a new club record and returns the auto-generated
	// primary-key ID. club.ID is ignored.
	CreateClub(ctx context.Context, club types.Club) (int64, error)

	// GetClubByID fetches a single club by its primary key.
	// Returns ErrNotFound if there is no such row.
	GetClubByID(ctx context.Context, id int64) (types.Club, error)

	// GetClubs returns every club ordered by id.
	// Returns an empty slice (not nil) if there are no clubs.
	GetClubs(ctx context.Context) ([]types.Club, error)

	// DeleteClubByID removes a club in a single statement.
	// Returns ErrNotFound if nothing was deleted.
	DeleteClubByID(ctx context.Context, id int64) error

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connection pool.
	Close() error
}
