package store

import (
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mwestbrook/prismatic/go-engine/internal/gradient"
)

func tempDB(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSnapshot(offset time.Duration, qOpt float64) gradient.Snapshot {
	return gradient.Snapshot{
		Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(offset),
		Psi:       0.4,
		Rho:       0.6,
		QRaw:      qOpt,
		QOpt:      qOpt,
		F:         0.3,
		Tau:       0.5,
	}
}

func TestCreateAndGetStream(t *testing.T) {
	s := tempDB(t)

	rec, err := s.CreateStream("journal", "modern_poetic")
	if err != nil {
		t.Fatalf("CreateStream: %v", err)
	}
	if rec.StreamID == "" {
		t.Fatal("expected non-empty stream ID")
	}

	got, err := s.GetStream(rec.StreamID)
	if err != nil {
		t.Fatalf("GetStream: %v", err)
	}
	if got.Label != "journal" || got.Calibration != "modern_poetic" {
		t.Fatalf("unexpected stream record: %+v", got)
	}
}

func TestGetStreamUnknownID(t *testing.T) {
	s := tempDB(t)

	if _, err := s.GetStream("no-such-stream"); err == nil {
		t.Fatal("expected error for unknown stream")
	}
}

func TestListStreams(t *testing.T) {
	s := tempDB(t)

	if _, err := s.CreateStream("a", "general"); err != nil {
		t.Fatalf("CreateStream: %v", err)
	}
	if _, err := s.CreateStream("b", "general"); err != nil {
		t.Fatalf("CreateStream: %v", err)
	}

	streams, err := s.ListStreams()
	if err != nil {
		t.Fatalf("ListStreams: %v", err)
	}
	if len(streams) != 2 {
		t.Fatalf("streams = %d, want 2", len(streams))
	}
}

func TestAppendAndListSnapshots(t *testing.T) {
	s := tempDB(t)
	stream, err := s.CreateStream("journal", "general")
	if err != nil {
		t.Fatalf("CreateStream: %v", err)
	}

	for i, q := range []float64{0.40, 0.55, 0.70} {
		snap := sampleSnapshot(time.Duration(i)*10*time.Second, q)
		if _, err := s.AppendSnapshot(stream.StreamID, snap); err != nil {
			t.Fatalf("AppendSnapshot: %v", err)
		}
	}

	records, err := s.ListSnapshots(stream.StreamID, 0)
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	for i := 1; i < len(records); i++ {
		if !records[i].Timestamp.After(records[i-1].Timestamp) {
			t.Fatalf("records not in observation order at %d", i)
		}
	}
	if records[2].QOpt != 0.70 {
		t.Errorf("QOpt = %v, want 0.70", records[2].QOpt)
	}

	limited, err := s.ListSnapshots(stream.StreamID, 2)
	if err != nil {
		t.Fatalf("ListSnapshots limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("limited records = %d, want 2", len(limited))
	}
}

func TestLoadTrackerRebuildsHistory(t *testing.T) {
	s := tempDB(t)
	stream, err := s.CreateStream("journal", "general")
	if err != nil {
		t.Fatalf("CreateStream: %v", err)
	}

	for i, q := range []float64{0.40, 0.55, 0.70} {
		snap := sampleSnapshot(time.Duration(i)*10*time.Second, q)
		if _, err := s.AppendSnapshot(stream.StreamID, snap); err != nil {
			t.Fatalf("AppendSnapshot: %v", err)
		}
	}

	tracker, err := s.LoadTracker(stream.StreamID, gradient.DefaultConfig())
	if err != nil {
		t.Fatalf("LoadTracker: %v", err)
	}
	if tracker.Len() != 3 {
		t.Fatalf("tracker Len = %d, want 3", tracker.Len())
	}

	pred, err := tracker.PredictTrajectory(30 * time.Second)
	if err != nil {
		t.Fatalf("PredictTrajectory: %v", err)
	}
	if !pred.InterventionRecommended {
		t.Fatal("expected intervention from rebuilt history")
	}
}

func TestSnapshotsIsolatedPerStream(t *testing.T) {
	s := tempDB(t)
	a, err := s.CreateStream("a", "general")
	if err != nil {
		t.Fatalf("CreateStream: %v", err)
	}
	b, err := s.CreateStream("b", "general")
	if err != nil {
		t.Fatalf("CreateStream: %v", err)
	}

	if _, err := s.AppendSnapshot(a.StreamID, sampleSnapshot(0, 0.5)); err != nil {
		t.Fatalf("AppendSnapshot: %v", err)
	}

	records, err := s.ListSnapshots(b.StreamID, 0)
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("stream b records = %d, want 0", len(records))
	}
}
