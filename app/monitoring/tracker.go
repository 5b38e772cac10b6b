package monitoring

import "sync"

// Tracker tallies served queries. One instance is created at process start
// and injected where needed; counters reset only on restart and are never
// persisted.
type Tracker struct {
	mu      sync.Mutex
	success int
	failure int
}

type Status struct {
	SuccessCount int `json:"success_count"`
	FailureCount int `json:"failure_count"`
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Record tallies one completed query, exactly once per request.
func (t *Tracker) Record(success bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if success {
		t.success++
	} else {
		t.failure++
	}
}

func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Status{
		SuccessCount: t.success,
		FailureCount: t.failure,
	}
}
