package analysis

import "testing"

func TestTrackerBeginRefusesDuplicate(t *testing.T) {
	tr := NewTracker()
	if !tr.Begin(1) {
		t.Fatal("first Begin must succeed")
	}
	if tr.Begin(1) {
		t.Fatal("Begin must refuse while a dispatch is in flight")
	}
	tr.Complete(1, "done text")
	if !tr.Begin(1) {
		t.Fatal("Begin must succeed again after the dispatch settled")
	}
}

func TestTrackerCompleteAndFail(t *testing.T) {
	tr := NewTracker()
	tr.Begin(2)
	tr.Complete(2, "analysis text")

	e, ok := tr.Get(2)
	if !ok {
		t.Fatal("entry missing")
	}
	if e.State != StateDone || e.Analysis != "analysis text" {
		t.Fatalf("entry = %+v", e)
	}

	tr.Begin(2)
	tr.Fail(2, "model unavailable")
	e, _ = tr.Get(2)
	if e.State != StateFailed || e.Message != "model unavailable" {
		t.Fatalf("entry = %+v", e)
	}
	if e.Analysis != "" {
		t.Fatalf("failed entry must not carry a stale analysis, got %q", e.Analysis)
	}
}

func TestTrackerLastWriterWins(t *testing.T) {
	tr := NewTracker()
	tr.Begin(3)
	tr.Fail(3, "first attempt failed")
	tr.Begin(3)
	tr.Complete(3, "second attempt ok")

	e, _ := tr.Get(3)
	if e.State != StateDone || e.Analysis != "second attempt ok" {
		t.Fatalf("entry = %+v", e)
	}
	if e.Message != "" {
		t.Fatalf("stale failure message survived: %q", e.Message)
	}
}

func TestTrackerGetUnknown(t *testing.T) {
	tr := NewTracker()
	if _, ok := tr.Get(99); ok {
		t.Fatal("unknown report must have no entry")
	}
}
