// ABOUTME: Program registry types and the Store interface shared by every backend
// ABOUTME: Open selects the memory, postgres or mysql implementation by driver name

package registry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

var (
	// ErrNotFound is returned when no program has the requested hash.
	ErrNotFound = errors.New("program not found")
	// ErrDuplicate is returned when a program hash is already registered.
	ErrDuplicate = errors.New("program already registered")
)

// Program is a registered on-chain program and its analysis history.
type Program struct {
	ID            string    `json:"id"`
	Owner         string    `json:"owner"`
	ProgramHash   string    `json:"programHash"`
	Framework     string    `json:"framework"`
	MetadataURI   string    `json:"metadataUri"`
	RegisteredAt  time.Time `json:"registeredAt"`
	AnalysisCount int       `json:"analysisCount"`
	LatestScore   int       `json:"latestScore"`
	IsVerified    bool      `json:"isVerified"`
}

// Page is one slice of the registry in registration order.
type Page struct {
	Programs []Program
	Total    int
}

// Stats aggregates the registry.
type Stats struct {
	TotalPrograms int
	TotalAnalyses int
	VerifiedCount int
	AverageScore  float64
}

// Store persists registered programs.
type Store interface {
	// List returns page (1-based) of at most limit programs.
	List(ctx context.Context, page, limit int) (Page, error)
	Get(ctx context.Context, hash string) (Program, error)
	Create(ctx context.Context, p Program) (Program, error)
	Stats(ctx context.Context) (Stats, error)
	// RecordAnalysis bumps the analysis count and stores the latest score.
	RecordAnalysis(ctx context.Context, hash string, score int) error
	Close() error
}

// Open returns the Store for driver. DSN is ignored by the memory driver.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverPostgres:
		return OpenPostgres(ctx, dsn)
	case DriverMySQL:
		return OpenMySQL(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown registry driver %q", driver)
	}
}

// NewProgram fills the defaults for a freshly registered program.
func NewProgram(hash, framework, metadataURI, owner string, now time.Time) Program {
	if owner == "" {
		owner = "anonymous"
	}
	return Program{
		ID:           hash,
		Owner:        owner,
		ProgramHash:  hash,
		Framework:    framework,
		MetadataURI:  metadataURI,
		RegisteredAt: now.UTC(),
	}
}

// offset converts a 1-based page into a row offset. Offsets that would
// overflow saturate at math.MaxInt, which is past the end of any store.
func offset(page, limit int) int {
	if page < 1 || limit <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// roundScore rounds an average to two decimal places.
func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}
