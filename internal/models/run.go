package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RunStatus represents valid run states
type RunStatus string

// Run statuses
const (
	RunStatusRunning RunStatus = "running"
	RunStatusPassed  RunStatus = "passed"
	RunStatusFailed  RunStatus = "failed"
)

// Run is one execution of a smoke scenario against a site
type Run struct {
	ID            string
	Scenario      string
	BaseURL       string
	Backend       string
	Status        RunStatus
	FailureReason string
	StartedAt     time.Time
	FinishedAt    *time.Time
}

// Step is one message reported while a run executes
type Step struct {
	ID        string
	RunID     string
	Seq       int
	Message   string
	CreatedAt time.Time
}

// Domain errors
var (
	ErrInvalidScenario         = errors.New("scenario name cannot be empty")
	ErrInvalidBaseURL          = errors.New("base url cannot be empty")
	ErrInvalidStatusTransition = errors.New("invalid run status transition")
	ErrEmptyFailureReason      = errors.New("failure reason cannot be empty")
	ErrEmptyStepMessage        = errors.New("step message cannot be empty")
)

// NewRun starts a run of scenario against baseURL
func NewRun(scenario, baseURL, backend string) (*Run, error) {
	if strings.TrimSpace(scenario) == "" {
		return nil, ErrInvalidScenario
	}
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrInvalidBaseURL
	}

	return &Run{
		ID:        uuid.New().String(),
		Scenario:  scenario,
		BaseURL:   baseURL,
		Backend:   backend,
		Status:    RunStatusRunning,
		StartedAt: time.Now(),
	}, nil
}

// NewStep builds the seq-th step of the run
func NewStep(runID string, seq int, message string) (*Step, error) {
	if message == "" {
		return nil, ErrEmptyStepMessage
	}
	return &Step{
		ID:        uuid.New().String(),
		RunID:     runID,
		Seq:       seq,
		Message:   message,
		CreatedAt: time.Now(),
	}, nil
}

// Pass marks the run as passed
func (r *Run) Pass() error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot pass run with status %s", ErrInvalidStatusTransition, r.Status)
	}

	r.Status = RunStatusPassed
	r.finish()
	return nil
}

// Fail marks the run as failed with reason
func (r *Run) Fail(reason string) error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot fail run with status %s", ErrInvalidStatusTransition, r.Status)
	}
	if reason == "" {
		return ErrEmptyFailureReason
	}

	r.Status = RunStatusFailed
	r.FailureReason = reason
	r.finish()
	return nil
}

func (r *Run) finish() {
	now := time.Now()
	r.FinishedAt = &now
}

// IsRunning returns true while the run has not finished
func (r *Run) IsRunning() bool {
	return r.Status == RunStatusRunning
}

// IsPassed returns true if the run passed
func (r *Run) IsPassed() bool {
	return r.Status == RunStatusPassed
}

// IsFailed returns true if the run failed
func (r *Run) IsFailed() bool {
	return r.Status == RunStatusFailed
}

// Duration returns how long the run took, or zero while it is running
func (r *Run) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
