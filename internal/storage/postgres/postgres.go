// Package postgres implements storage.Storage on PostgreSQL through a
// pgx connection pool. It is selected with storage_driver: postgres.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/aanand-mishra/clubs-api/internal/config"
	"github.com/aanand-mishra/clubs-api/internal/storage"
	"github.com/aanand-mishra/clubs-api/internal/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const maxConns = 20

// memberCount is quoted everywhere so Postgres keeps the camel-case name.
const clubColumns = `id, name, COALESCE(description, ''), COALESCE("memberCount", 0), COALESCE(image, '')`

// Postgres is the pgx-backed storage.Storage.
type Postgres struct {
	Pool *pgxpool.Pool
}

var _ storage.Storage = (*Postgres)(nil)

// New connects to cfg.PostgresDSN and creates the club table if needed.
func New(ctx context.Context, cfg *config.Config) (*Postgres, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse dsn: %w", err)
	}
	poolCfg.MaxConns = maxConns
	// Cache prepared statements per connection.
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS club (
			id            BIGSERIAL PRIMARY KEY,
			name          TEXT    NOT NULL,
			description   TEXT,
			"memberCount" BIGINT  DEFAULT 0,
			image         TEXT
		)
	`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: create table: %w", err)
	}

	return &Postgres{Pool: pool}, nil
}

// CreateClub inserts a row and reads the new id back with RETURNING.
func (p *Postgres) CreateClub(ctx context.Context, club types.Club) (int64, error) {
	var id int64
	err := p.Pool.QueryRow(ctx,
		`INSERT INTO club (name, description, "memberCount", image) VALUES ($1, $2, $3, $4) RETURNING id`,
		club.Name, club.Description, club.MemberCount, club.Image,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("CreateClub: exec: %w", err)
	}
	return id, nil
}

// GetClubByID fetches one club or returns storage.ErrNotFound.
func (p *Postgres) GetClubByID(ctx context.Context, id int64) (types.Club, error) {
	var club types.Club
	err := p.Pool.QueryRow(ctx,
		"SELECT "+clubColumns+" FROM club WHERE id = $1",
		id,
	).Scan(&club.ID, &club.Name, &club.Description, &club.MemberCount, &club.Image)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.Club{}, storage.ErrNotFound
		}
		return types.Club{}, fmt.Errorf("GetClubByID: scan: %w", err)
	}
	return club, nil
}

// GetClubs returns every club in id order.
func (p *Postgres) GetClubs(ctx context.Context) ([]types.Club, error) {
	rows, err := p.Pool.Query(ctx, "SELECT "+clubColumns+" FROM club ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("GetClubs: query: %w", err)
	}
	defer rows.Close()

	clubs := make([]types.Club, 0)
	for rows.Next() {
		var club types.Club
		if err := rows.Scan(&club.ID, &club.Name, &club.Description, &club.MemberCount, &club.Image); err != nil {
			return nil, fmt.Errorf("GetClubs: scan row: %w", err)
		}
		clubs = append(clubs, club)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetClubs: rows iteration: %w", err)
	}
	return clubs, nil
}

// DeleteClubByID deletes in one statement; zero affected rows means
// the club did not exist.
func (p *Postgres) DeleteClubByID(ctx context.Context, id int64) error {
	tag, err := p.Pool.Exec(ctx, "DELETE FROM club WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("DeleteClubByID: exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Ping checks that a pooled connection can reach the server.
func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("Ping: %w", err)
	}
	return nil
}

// Close closes every pooled connection.
func (p *Postgres) Close() error {
	p.Pool.Close()
	return nil
}
