package analysis

import (
	"sync"
	"time"

	"github.com/farhanmaulana/clinicdesk/internal/domain/reports"
)

// State enum
type State string

const (
	StateAnalyzing State = "analyzing"
	StateDone      State = "done"
	StateFailed    State = "failed"
)

// Entry is the last-known analysis outcome for one report.
type Entry struct {
	State     State     `json:"state"`
	Analysis  string    `json:"analysis,omitempty"`
	Message   string    `json:"message,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tracker is the caller-owned map from report ID to its last analysis
// result. The dispatcher itself never touches it. Writes are
// last-writer-wins: a fresh dispatch for the same report overwrites whatever
// was recorded before.
type Tracker struct {
	mu      sync.Mutex
	entries map[reports.ReportID]Entry
}

func NewTracker() *Tracker {
	return &Tracker{entries: make(map[reports.ReportID]Entry)}
}

// Begin marks a dispatch in flight. Returns false when one is already
// running for this report, so callers can refuse the duplicate trigger.
func (t *Tracker) Begin(id reports.ReportID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[id]; ok && e.State == StateAnalyzing {
		return false
	}
	t.entries[id] = Entry{State: StateAnalyzing, UpdatedAt: time.Now()}
	return true
}

func (t *Tracker) Complete(id reports.ReportID, analysis string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[id] = Entry{State: StateDone, Analysis: analysis, UpdatedAt: time.Now()}
}

func (t *Tracker) Fail(id reports.ReportID, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[id] = Entry{State: StateFailed, Message: message, UpdatedAt: time.Now()}
}

// Get returns the last-known entry for a report, if any dispatch was recorded.
func (t *Tracker) Get(id reports.ReportID) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[id]
	return e, ok
}
