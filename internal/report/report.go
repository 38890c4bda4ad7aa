// Package report collects the human readable narration of a test run.
package report

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/forkqa/webnextgen/internal/models"
)

// Reporter accepts informational messages describing verification progress
type Reporter interface {
	AddInfo(msg string)
}

// Discard drops every message
var Discard Reporter = discard{}

type discard struct{}

func (discard) AddInfo(string) {}

// LogReporter writes messages to a logrus logger
type LogReporter struct {
	Log logrus.FieldLogger
}

// AddInfo implements Reporter
func (r LogReporter) AddInfo(msg string) {
	r.Log.Info(msg)
}

// Recorder keeps messages in memory
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

// AddInfo implements Reporter
func (r *Recorder) AddInfo(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

// Messages returns a copy of the recorded messages in order
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

// Multi fans messages out to several reporters
func Multi(reporters ...Reporter) Reporter {
	return multi(reporters)
}

type multi []Reporter

func (m multi) AddInfo(msg string) {
	for _, r := range m {
		r.AddInfo(msg)
	}
}

// StepStore persists run steps
type StepStore interface {
	AddStep(step *models.Step) error
}

// DBReporter stores each message as the next step of a run. Storage errors
// are logged; narration never interrupts a run.
type DBReporter struct {
	store StepStore
	runID string
	log   logrus.FieldLogger

	mu  sync.Mutex
	seq int
}

// NewDBReporter returns a reporter appending steps to runID
func NewDBReporter(store StepStore, runID string, log logrus.FieldLogger) *DBReporter {
	return &DBReporter{
		store: store,
		runID: runID,
		log:   log.WithField("run", runID),
	}
}

// AddInfo implements Reporter
func (r *DBReporter) AddInfo(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step, err := models.NewStep(r.runID, r.seq+1, msg)
	if err != nil {
		r.log.WithError(err).Warn("Skipping step")
		return
	}
	if err := r.store.AddStep(step); err != nil {
		r.log.WithError(err).Error("Failed to record step")
		return
	}
	r.seq++
}
