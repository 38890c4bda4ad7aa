package models

import (
	"errors"
	"testing"
	"time"
)

func TestNewRun(t *testing.T) {
	tests := []struct {
		name     string
		scenario string
		baseURL  string
		wantErr  error
	}{
		{
			name:     "valid run",
			scenario: "search",
			baseURL:  "https://www.thefork.com",
			wantErr:  nil,
		},
		{
			name:     "empty scenario",
			scenario: "",
			baseURL:  "https://www.thefork.com",
			wantErr:  ErrInvalidScenario,
		},
		{
			name:     "blank scenario",
			scenario: "   ",
			baseURL:  "https://www.thefork.com",
			wantErr:  ErrInvalidScenario,
		},
		{
			name:     "empty base url",
			scenario: "search",
			baseURL:  "",
			wantErr:  ErrInvalidBaseURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run, err := NewRun(tt.scenario, tt.baseURL, "playwright")

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("NewRun() error = %v, wantErr %v", err, tt.wantErr)
				}
				if run != nil {
					t.Error("Expected run to be nil when error occurs")
				}
				return
			}

			if err != nil {
				t.Errorf("NewRun() unexpected error = %v", err)
				return
			}

			if run.ID == "" {
				t.Error("Run ID should not be empty")
			}
			if run.Status != RunStatusRunning {
				t.Errorf("Expected status %s, got %s", RunStatusRunning, run.Status)
			}
			if run.FinishedAt != nil {
				t.Error("New run should not be finished")
			}
			if run.Duration() != 0 {
				t.Errorf("Expected zero duration, got %s", run.Duration())
			}
		})
	}
}

func TestRun_Pass(t *testing.T) {
	tests := []struct {
		name         string
		initialState RunStatus
		wantErr      bool
	}{
		{
			name:         "pass running run",
			initialState: RunStatusRunning,
			wantErr:      false,
		},
		{
			name:         "cannot pass passed run",
			initialState: RunStatusPassed,
			wantErr:      true,
		},
		{
			name:         "cannot pass failed run",
			initialState: RunStatusFailed,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := &Run{ID: "test-id", Status: tt.initialState, StartedAt: time.Now()}

			err := run.Pass()

			if (err != nil) != tt.wantErr {
				t.Errorf("Pass() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidStatusTransition) {
					t.Errorf("Expected ErrInvalidStatusTransition, got %v", err)
				}
				return
			}
			if !run.IsPassed() {
				t.Errorf("Expected status %s, got %s", RunStatusPassed, run.Status)
			}
			if run.FinishedAt == nil {
				t.Error("Expected FinishedAt to be set")
			}
		})
	}
}

func TestRun_Fail(t *testing.T) {
	tests := []struct {
		name         string
		initialState RunStatus
		reason       string
		wantErr      error
	}{
		{
			name:         "fail running run",
			initialState: RunStatusRunning,
			reason:       "home page not loaded",
		},
		{
			name:         "empty reason",
			initialState: RunStatusRunning,
			reason:       "",
			wantErr:      ErrEmptyFailureReason,
		},
		{
			name:         "cannot fail passed run",
			initialState: RunStatusPassed,
			reason:       "late failure",
			wantErr:      ErrInvalidStatusTransition,
		},
		{
			name:         "cannot fail failed run",
			initialState: RunStatusFailed,
			reason:       "again",
			wantErr:      ErrInvalidStatusTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := &Run{ID: "test-id", Status: tt.initialState, StartedAt: time.Now()}

			err := run.Fail(tt.reason)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Fail() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fail() unexpected error = %v", err)
			}
			if !run.IsFailed() {
				t.Errorf("Expected status %s, got %s", RunStatusFailed, run.Status)
			}
			if run.FailureReason != tt.reason {
				t.Errorf("Expected reason %q, got %q", tt.reason, run.FailureReason)
			}
		})
	}
}

func TestRun_StatusChecks(t *testing.T) {
	run := &Run{ID: "test-id", Status: RunStatusRunning}

	if !run.IsRunning() {
		t.Error("Expected run to be running")
	}

	run.Status = RunStatusPassed
	if !run.IsPassed() {
		t.Error("Expected run to be passed")
	}

	run.Status = RunStatusFailed
	if !run.IsFailed() {
		t.Error("Expected run to be failed")
	}
}

func TestRun_Duration(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(42 * time.Second)
	run := &Run{StartedAt: start, FinishedAt: &end}

	if got := run.Duration(); got != 42*time.Second {
		t.Errorf("Duration() = %s, want 42s", got)
	}
}

func TestNewStep(t *testing.T) {
	step, err := NewStep("run-1", 3, "Home page is loaded")
	if err != nil {
		t.Fatalf("NewStep() unexpected error = %v", err)
	}
	if step.ID == "" {
		t.Error("Step ID should not be empty")
	}
	if step.RunID != "run-1" || step.Seq != 3 {
		t.Errorf("Unexpected step %+v", step)
	}

	if _, err := NewStep("run-1", 4, ""); err != ErrEmptyStepMessage {
		t.Errorf("Expected ErrEmptyStepMessage, got %v", err)
	}
}
