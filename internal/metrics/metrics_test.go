package metrics

import (
	"testing"
	"time"
)

func TestRecorderSnapshotPercentiles(t *testing.T) {
	rec := NewRecorder(time.Hour)
	rec.Observe(100 * time.Millisecond)
	rec.Observe(200 * time.Millisecond)
	rec.Observe(300 * time.Millisecond)
	rec.Observe(400 * time.Millisecond)
	rec.Observe(500 * time.Millisecond)

	snap := rec.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 {
		t.Fatalf("expected min=100, got %d", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Fatalf("expected max=500, got %d", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
}

func TestRecorderPrunesExpiredSamples(t *testing.T) {
	rec := NewRecorder(10 * time.Millisecond)
	rec.Observe(100 * time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	snap := rec.Snapshot()
	if snap.Count != 0 {
		t.Fatalf("expected count=0 after prune, got %d", snap.Count)
	}

	rec.Observe(200 * time.Millisecond)
	snap = rec.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1 for fresh sample, got %d", snap.Count)
	}
	if snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected min=max=200, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestRecorderEmptySnapshot(t *testing.T) {
	rec := NewRecorder(time.Hour)
	snap := rec.Snapshot()
	if snap.Count != 0 || snap.MinMs != 0 || snap.AvgMs != 0 {
		t.Fatalf("expected zero snapshot, got %+v", snap)
	}
}
