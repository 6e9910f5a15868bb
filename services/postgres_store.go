package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// PostgresStore implements ResultStore with PostgreSQL persistence.
type PostgresStore struct {
	db *sql.DB
}

// PostgresConfig contains PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// ConnectionString returns the PostgreSQL connection string.
func (c *PostgresConfig) ConnectionString() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, sslMode)
}

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(config *PostgresConfig) (*PostgresStore, error) {
	db, err := sql.Open("postgres", config.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS simulation_runs (
		id UUID PRIMARY KEY,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		request JSONB NOT NULL,
		summary JSONB NOT NULL,
		results JSONB
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON simulation_runs(created_at);
	`

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// SaveRun persists an executed run.
func (s *PostgresStore) SaveRun(record *RunRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	request, err := json.Marshal(record.Request)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	summary, err := json.Marshal(record.Summary)
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	results, err := json.Marshal(record.Results)
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}

	query := `
	INSERT INTO simulation_runs (id, created_at, request, summary, results)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE SET
		request = EXCLUDED.request,
		summary = EXCLUDED.summary,
		results = EXCLUDED.results
	`

	_, err = s.db.ExecContext(ctx, query, record.ID, record.CreatedAt, request, summary, results)
	return err
}

// GetRun retrieves one run by id.
func (s *PostgresStore) GetRun(id uuid.UUID) (*RunRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, request, summary, results
		FROM simulation_runs
		WHERE id = $1
	`, id)

	record, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, ErrRunNotFound
	}
	return record, err
}

// ListRuns retrieves all persisted runs, newest first.
func (s *PostgresStore) ListRuns() ([]*RunRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, request, summary, results
		FROM simulation_runs
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*RunRecord
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*RunRecord, error) {
	var (
		record  RunRecord
		request []byte
		summary []byte
		results []byte
	)
	if err := row.Scan(&record.ID, &record.CreatedAt, &request, &summary, &results); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(request, &record.Request); err != nil {
		return nil, fmt.Errorf("decoding request: %w", err)
	}
	if err := json.Unmarshal(summary, &record.Summary); err != nil {
		return nil, fmt.Errorf("decoding summary: %w", err)
	}
	if len(results) > 0 {
		if err := json.Unmarshal(results, &record.Results); err != nil {
			return nil, fmt.Errorf("decoding results: %w", err)
		}
	}
	return &record, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
