// ABOUTME: MySQL program store on database/sql with the go-sql-driver connector
// ABOUTME: Forces parseTime so DATETIME columns scan into time.Time

package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

const mysqlSchema = `CREATE TABLE IF NOT EXISTS programs (
	seq            BIGINT AUTO_INCREMENT PRIMARY KEY,
	id             VARCHAR(255) NOT NULL,
	owner          VARCHAR(255) NOT NULL,
	program_hash   VARCHAR(255) NOT NULL UNIQUE,
	framework      VARCHAR(32) NOT NULL,
	metadata_uri   TEXT NOT NULL,
	registered_at  DATETIME(3) NOT NULL,
	analysis_count INT NOT NULL DEFAULT 0,
	latest_score   INT NOT NULL DEFAULT 0,
	is_verified    BOOLEAN NOT NULL DEFAULT FALSE
) CHARACTER SET utf8mb4`

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// MySQL is a Store on MySQL.
type MySQL struct {
	db *sql.DB
}

// OpenMySQL connects, pings and migrates.
func OpenMySQL(ctx context.Context, dsn string) (*MySQL, error) {
	cfg, err := mysqlConfig(dsn)
	if err != nil {
		return nil, err
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql registry: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql registry ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, mysqlSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql registry migrate: %w", err)
	}
	return &MySQL{db: db}, nil
}

// mysqlConfig parses dsn and enables the options the store depends on.
func mysqlConfig(dsn string) (*mysql.Config, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql registry dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg, nil
}

func (s *MySQL) List(ctx context.Context, page, limit int) (Page, error) {
	out := Page{Programs: []Program{}}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM programs").Scan(&out.Total); err != nil {
		return Page{}, fmt.Errorf("counting programs: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+programColumns+" FROM programs ORDER BY seq LIMIT ? OFFSET ?",
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

func (s *MySQL) Get(ctx context.Context, hash string) (Program, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+programColumns+" FROM programs WHERE program_hash = ?", hash)
	p, err := scanProgram(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Program{}, ErrNotFound
	}
	if err != nil {
		return Program{}, fmt.Errorf("getting program %s: %w", hash, err)
	}
	return p, nil
}

func (s *MySQL) Create(ctx context.Context, p Program) (Program, error) {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO programs ("+programColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		p.ID, p.Owner, p.ProgramHash, p.Framework, p.MetadataURI,
		p.RegisteredAt, p.AnalysisCount, p.LatestScore, p.IsVerified)
	if isMySQLDuplicate(err) {
		return Program{}, ErrDuplicate
	}
	if err != nil {
		return Program{}, fmt.Errorf("creating program: %w", err)
	}
	return p, nil
}

func (s *MySQL) Stats(ctx context.Context) (Stats, error) {
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*),
		COALESCE(SUM(analysis_count), 0),
		COALESCE(SUM(is_verified), 0),
		COALESCE(AVG(latest_score), 0)
		FROM programs`)
	st, err := scanStats(row)
	if err != nil {
		return Stats{}, fmt.Errorf("registry stats: %w", err)
	}
	return st, nil
}

func (s *MySQL) RecordAnalysis(ctx context.Context, hash string, score int) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE programs SET analysis_count = analysis_count + 1, latest_score = ? WHERE program_hash = ?",
		score, hash)
	if err != nil {
		return fmt.Errorf("recording analysis: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("recording analysis: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MySQL) Close() error {
	return s.db.Close()
}

func isMySQLDuplicate(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}
