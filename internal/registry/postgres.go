// ABOUTME: PostgreSQL program store backed by a pgx connection pool
// ABOUTME: Creates the programs table on open; unique violations map to ErrDuplicate

package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgSchema = `CREATE TABLE IF NOT EXISTS programs (
	seq            BIGSERIAL PRIMARY KEY,
	id             TEXT NOT NULL,
	owner          TEXT NOT NULL,
	program_hash   TEXT NOT NULL UNIQUE,
	framework      TEXT NOT NULL,
	metadata_uri   TEXT NOT NULL DEFAULT '',
	registered_at  TIMESTAMPTZ NOT NULL,
	analysis_count INTEGER NOT NULL DEFAULT 0,
	latest_score   INTEGER NOT NULL DEFAULT 0,
	is_verified    BOOLEAN NOT NULL DEFAULT FALSE
)`

// pgUniqueViolation is the SQLSTATE for a unique constraint failure.
const pgUniqueViolation = "23505"

// Postgres is a Store on PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects, pings and migrates.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres registry: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres registry ping: %w", err)
	}
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres registry migrate: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (s *Postgres) List(ctx context.Context, page, limit int) (Page, error) {
	out := Page{Programs: []Program{}}
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM programs").Scan(&out.Total); err != nil {
		return Page{}, fmt.Errorf("counting programs: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		"SELECT "+programColumns+" FROM programs ORDER BY seq LIMIT $1 OFFSET $2",
		limit, offset(page, limit))
	if err != nil {
		return Page{}, fmt.Errorf("listing programs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return Page{}, fmt.Errorf("scanning program: %w", err)
		}
		out.Programs = append(out.Programs, p)
	}
	return out, rows.Err()
}

func (s *Postgres) Get(ctx context.Context, hash string) (Program, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+programColumns+" FROM programs WHERE program_hash = $1", hash)
	p, err := scanProgram(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Program{}, ErrNotFound
	}
	if err != nil {
		return Program{}, fmt.Errorf("getting program %s: %w", hash, err)
	}
	return p, nil
}

func (s *Postgres) Create(ctx context.Context, p Program) (Program, error) {
	_, err := s.pool.Exec(ctx,
		"INSERT INTO programs ("+programColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
		p.ID, p.Owner, p.ProgramHash, p.Framework, p.MetadataURI,
		p.RegisteredAt, p.AnalysisCount, p.LatestScore, p.IsVerified)
	if isPgUniqueViolation(err) {
		return Program{}, ErrDuplicate
	}
	if err != nil {
		return Program{}, fmt.Errorf("creating program: %w", err)
	}
	return p, nil
}

func (s *Postgres) Stats(ctx context.Context) (Stats, error) {
	row := s.pool.QueryRow(ctx, `SELECT COUNT(*),
		COALESCE(SUM(analysis_count), 0),
		COUNT(*) FILTER (WHERE is_verified),
		COALESCE(AVG(latest_score), 0)::float8
		FROM programs`)
	st, err := scanStats(row)
	if err != nil {
		return Stats{}, fmt.Errorf("registry stats: %w", err)
	}
	return st, nil
}

func (s *Postgres) RecordAnalysis(ctx context.Context, hash string, score int) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE programs SET analysis_count = analysis_count + 1, latest_score = $1 WHERE program_hash = $2",
		score, hash)
	if err != nil {
		return fmt.Errorf("recording analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) Close() error {
	s.pool.Close()
	return nil
}

func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
