package monitoring

import (
	"sync"
	"testing"
)

func TestTrackerRecord(t *testing.T) {
	tr := NewTracker()
	tr.Record(true)
	tr.Record(true)
	tr.Record(false)

	status := tr.Status()
	if status.SuccessCount != 2 || status.FailureCount != 1 {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestTrackerIsolatedInstances(t *testing.T) {
	a := NewTracker()
	b := NewTracker()
	a.Record(true)

	if b.Status().SuccessCount != 0 {
		t.Fatal("trackers must not share state")
	}
}

func TestTrackerConcurrentRecords(t *testing.T) {
	tr := NewTracker()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(success bool) {
			defer wg.Done()
			tr.Record(success)
		}(i%2 == 0)
	}
	wg.Wait()

	status := tr.Status()
	if status.SuccessCount+status.FailureCount != 100 {
		t.Fatalf("lost updates: %+v", status)
	}
}
