package metrics

import (
	"sync"
	"testing"
)

func TestCollector_IncrementMethods(t *testing.T) {
	c := NewCollector("standard", "exp-001")

	c.IncExportStarted()
	c.IncExportCompleted()
	c.SetFramesSelected(7)
	c.IncFrameRendered()
	c.IncFrameRendered()
	c.IncFrameRendered()
	c.IncFrameFailed()
	c.IncEncodeFailure()
	c.IncStoreWriteSuccess()
	c.IncStoreWriteSuccess()
	c.IncStoreWriteFailure()

	s := c.Snapshot()

	if s.ExportsStarted != 1 {
		t.Errorf("ExportsStarted = %d, want 1", s.ExportsStarted)
	}
	if s.ExportsCompleted != 1 {
		t.Errorf("ExportsCompleted = %d, want 1", s.ExportsCompleted)
	}
	if s.FramesSelected != 7 {
		t.Errorf("FramesSelected = %d, want 7", s.FramesSelected)
	}
	if s.FramesRendered != 3 {
		t.Errorf("FramesRendered = %d, want 3", s.FramesRendered)
	}
	if s.FramesFailed != 1 {
		t.Errorf("FramesFailed = %d, want 1", s.FramesFailed)
	}
	if s.EncodeFailures != 1 {
		t.Errorf("EncodeFailures = %d, want 1", s.EncodeFailures)
	}
	if s.StoreWriteSuccess != 2 {
		t.Errorf("StoreWriteSuccess = %d, want 2", s.StoreWriteSuccess)
	}
	if s.StoreWriteFailure != 1 {
		t.Errorf("StoreWriteFailure = %d, want 1", s.StoreWriteFailure)
	}
	if s.ExportsCancelled != 0 {
		t.Errorf("ExportsCancelled = %d, want 0", s.ExportsCancelled)
	}
	if s.ExportsFailed != 0 {
		t.Errorf("ExportsFailed = %d, want 0", s.ExportsFailed)
	}
}

func TestCollector_Dimensions(t *testing.T) {
	c := NewCollector("high", "exp-42")
	s := c.Snapshot()

	if s.Tier != "high" {
		t.Errorf("Tier = %q, want %q", s.Tier, "high")
	}
	if s.ExportID != "exp-42" {
		t.Errorf("ExportID = %q, want %q", s.ExportID, "exp-42")
	}
}

func TestCollector_NilSafe(t *testing.T) {
	// A nil collector must accept every call without panicking; the
	// pipeline treats nil as "metrics disabled".
	var c *Collector

	c.IncExportStarted()
	c.IncExportCompleted()
	c.IncExportCancelled()
	c.IncExportFailed()
	c.SetFramesSelected(5)
	c.IncFrameRendered()
	c.IncFrameFailed()
	c.IncEncodeFailure()
	c.IncStoreWriteSuccess()
	c.IncStoreWriteFailure()

	s := c.Snapshot()
	if s.FramesRendered != 0 {
		t.Errorf("nil collector snapshot should be zero, got %+v", s)
	}
}

func TestCollector_ConcurrentIncrements(t *testing.T) {
	c := NewCollector("standard", "exp-conc")

	const goroutines = 8
	const perGoroutine = 100

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				c.IncFrameRendered()
			}
		}()
	}
	wg.Wait()

	s := c.Snapshot()
	if want := int64(goroutines * perGoroutine); s.FramesRendered != want {
		t.Errorf("FramesRendered = %d, want %d", s.FramesRendered, want)
	}
}

func TestCollector_SnapshotIsolation(t *testing.T) {
	c := NewCollector("standard", "exp-iso")
	c.IncFrameRendered()

	before := c.Snapshot()
	c.IncFrameRendered()
	after := c.Snapshot()

	if before.FramesRendered != 1 {
		t.Errorf("earlier snapshot mutated: FramesRendered = %d, want 1", before.FramesRendered)
	}
	if after.FramesRendered != 2 {
		t.Errorf("FramesRendered = %d, want 2", after.FramesRendered)
	}
}
