// Package store persists generated specifications in PostgreSQL and
// enforces the keep-last-five retention window.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/specdraft/specdraft/internal/models"
)

// RetentionLimit is the number of most recent specs kept in storage
const RetentionLimit = 5

var (
	// ErrNotFound means no spec exists with the requested id
	ErrNotFound = errors.New("spec not found")

	// ErrUnavailable wraps any storage-level failure so the gateway can
	// map it to a 503 without inspecting message text
	ErrUnavailable = errors.New("database unavailable")
)

// SpecStore owns the persisted spec collection
type SpecStore struct {
	pool *pgxpool.Pool
}

// NewSpecStore creates a store over an existing connection pool
func NewSpecStore(pool *pgxpool.Pool) *SpecStore {
	return &SpecStore{pool: pool}
}

// EnsureSchema creates the specs table if it does not exist
func (s *SpecStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS specs (
			id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			title         text NOT NULL,
			goal          text NOT NULL,
			users         text NOT NULL,
			constraints   text NOT NULL,
			template_type text NOT NULL,
			output        jsonb NOT NULL,
			created_at    timestamptz NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("%w: failed to ensure schema: %v", ErrUnavailable, err)
	}
	return nil
}

// Create persists a new spec with a server-assigned id and creation
// timestamp, then prunes the oldest records beyond the retention limit.
// Create and prune are two statements, not one transaction: concurrent
// creates can transiently overshoot the limit by one before the next
// create prunes it back.
func (s *SpecStore) Create(ctx context.Context, req models.FeatureRequest, output models.SpecOutput) (*models.Spec, error) {
	outputJSON, err := json.Marshal(output)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}

	spec := models.Spec{
		Title:        req.Title,
		Goal:         req.Goal,
		Users:        req.Users,
		Constraints:  req.Constraints,
		TemplateType: req.TemplateType,
		Output:       output,
	}

	err = s.pool.QueryRow(ctx,
		`INSERT INTO specs (title, goal, users, constraints, template_type, output)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		req.Title, req.Goal, req.Users, req.Constraints, req.TemplateType, outputJSON,
	).Scan(&spec.ID, &spec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create spec: %v", ErrUnavailable, err)
	}

	if err := s.prune(ctx); err != nil {
		// The record is already stored; an overfull store self-corrects
		// on the next successful create.
		log.Printf(`{"level":"warn","message":"Retention pruning failed","error":"%v"}`, err)
	}

	return &spec, nil
}

// prune deletes the oldest records beyond the retention limit
func (s *SpecStore) prune(ctx context.Context) error {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM specs`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count specs: %w", err)
	}

	if count <= RetentionLimit {
		return nil
	}

	_, err := s.pool.Exec(ctx,
		`DELETE FROM specs WHERE id IN (
			SELECT id FROM specs ORDER BY created_at ASC LIMIT $1
		)`,
		count-RetentionLimit,
	)
	if err != nil {
		return fmt.Errorf("failed to delete oldest specs: %w", err)
	}

	return nil
}

// Get returns the spec with the given id, or ErrNotFound
func (s *SpecStore) Get(ctx context.Context, id uuid.UUID) (*models.Spec, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, title, goal, users, constraints, template_type, output, created_at
		 FROM specs WHERE id = $1`,
		id,
	)
	return scanSpec(row)
}

// ListRecent returns up to RetentionLimit specs, newest first
func (s *SpecStore) ListRecent(ctx context.Context) ([]models.Spec, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, goal, users, constraints, template_type, output, created_at
		 FROM specs ORDER BY created_at DESC LIMIT $1`,
		RetentionLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list specs: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	specs := []models.Spec{}
	for rows.Next() {
		spec, err := scanSpec(rows)
		if err != nil {
			return nil, err
		}
		specs = append(specs, *spec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read specs: %v", ErrUnavailable, err)
	}

	return specs, nil
}

// UpdateOutput replaces only the output field of an existing spec and
// returns the updated record. The request fields stay immutable.
func (s *SpecStore) UpdateOutput(ctx context.Context, id uuid.UUID, output models.SpecOutput) (*models.Spec, error) {
	outputJSON, err := json.Marshal(output)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}

	row := s.pool.QueryRow(ctx,
		`UPDATE specs SET output = $2 WHERE id = $1
		 RETURNING id, title, goal, users, constraints, template_type, output, created_at`,
		id, outputJSON,
	)
	return scanSpec(row)
}

// Ping checks storage connectivity for the status endpoint
func (s *SpecStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// scanSpec reads one spec row, decoding the jsonb output column
func scanSpec(row pgx.Row) (*models.Spec, error) {
	var spec models.Spec
	var outputJSON []byte

	err := row.Scan(&spec.ID, &spec.Title, &spec.Goal, &spec.Users,
		&spec.Constraints, &spec.TemplateType, &outputJSON, &spec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read spec: %v", ErrUnavailable, err)
	}

	if err := json.Unmarshal(outputJSON, &spec.Output); err != nil {
		return nil, fmt.Errorf("failed to decode stored output: %w", err)
	}

	return &spec, nil
}
