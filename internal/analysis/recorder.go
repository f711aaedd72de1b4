package analysis

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// CallRecord captures one vision-analysis call for observability.
type CallRecord struct {
	ID          string
	Model       string
	Instruction int // instruction size in bytes
	Images      int
	Duration    time.Duration
	OK          bool
	Error       string
	At          time.Time
}

// Recorder keeps an in-memory log of analysis calls. Safe for concurrent
// use; bounded so long-lived processes don't grow without limit.
type Recorder struct {
	mu      sync.Mutex
	records []CallRecord
	max     int
}

// NewRecorder creates a recorder keeping at most max records (oldest
// evicted first). max <= 0 means 100.
func NewRecorder(max int) *Recorder {
	if max <= 0 {
		max = 100
	}
	return &Recorder{max: max}
}

// Record stores a call record, assigning ID and timestamp if unset.
func (r *Recorder) Record(rec CallRecord) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.At.IsZero() {
		rec.At = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	if len(r.records) > r.max {
		r.records = r.records[len(r.records)-r.max:]
	}
}

// All returns a copy of the stored records, oldest first.
func (r *Recorder) All() []CallRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]CallRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Last returns the most recent record, or nil when none exist.
func (r *Recorder) Last() *CallRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.records) == 0 {
		return nil
	}
	rec := r.records[len(r.records)-1]
	return &rec
}
