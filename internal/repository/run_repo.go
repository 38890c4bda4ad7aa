package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/forkqa/webnextgen/internal/database"
	"github.com/forkqa/webnextgen/internal/models"
)

// ErrRunNotFound is returned when no run has the requested id
var ErrRunNotFound = errors.New("run not found")

// RunRepository handles database operations for smoke runs and their steps
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a run repository on the shared connection
func NewRunRepository() *RunRepository {
	return &RunRepository{
		db: database.DB,
	}
}

// NewRunRepositoryWithDB creates a run repository with a specific database connection
func NewRunRepositoryWithDB(db *sql.DB) *RunRepository {
	return &RunRepository{
		db: db,
	}
}

// CreateRun inserts a new run
func (r *RunRepository) CreateRun(run *models.Run) error {
	query := `
		INSERT INTO runs (id, scenario, base_url, backend, status, started_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(query,
		run.ID,
		run.Scenario,
		run.BaseURL,
		run.Backend,
		run.Status,
		run.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

// FinishRun stores the final status of a run
func (r *RunRepository) FinishRun(run *models.Run) error {
	query := `
		UPDATE runs
		SET status = $1, failure_reason = NULLIF($2, ''), finished_at = $3
		WHERE id = $4
	`

	result, err := r.db.Exec(query, run.Status, run.FailureReason, run.FinishedAt, run.ID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrRunNotFound
	}

	return nil
}

// GetRun retrieves a run by id
func (r *RunRepository) GetRun(id string) (*models.Run, error) {
	query := `
		SELECT id, scenario, base_url, backend, status,
		       COALESCE(failure_reason, ''), started_at, finished_at
		FROM runs
		WHERE id = $1
	`

	run := &models.Run{}
	var finishedAt sql.NullTime
	err := r.db.QueryRow(query, id).Scan(
		&run.ID,
		&run.Scenario,
		&run.BaseURL,
		&run.Backend,
		&run.Status,
		&run.FailureReason,
		&run.StartedAt,
		&finishedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRunNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if finishedAt.Valid {
		run.FinishedAt = &finishedAt.Time
	}

	return run, nil
}

// AddStep appends a step to a run
func (r *RunRepository) AddStep(step *models.Step) error {
	query := `
		INSERT INTO run_steps (id, run_id, seq, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(query, step.ID, step.RunID, step.Seq, step.Message, step.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add step: %w", err)
	}

	return nil
}

// ListSteps returns the steps of a run in order
func (r *RunRepository) ListSteps(runID string) ([]models.Step, error) {
	query := `
		SELECT id, run_id, seq, message, created_at
		FROM run_steps
		WHERE run_id = $1
		ORDER BY seq
	`

	rows, err := r.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list steps: %w", err)
	}
	defer rows.Close()

	var steps []models.Step
	for rows.Next() {
		var s models.Step
		if err := rows.Scan(&s.ID, &s.RunID, &s.Seq, &s.Message, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		steps = append(steps, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list steps: %w", err)
	}

	return steps, nil
}
