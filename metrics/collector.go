// Package metrics provides per-export metrics collection.
//
// The Collector accumulates counters during a single export request. It is
// a leaf package with no internal dependencies. Frame counters are recorded
// live by the aggregating goroutine; lifecycle counters are recorded at the
// pipeline boundary.
package metrics

import "sync"

// Snapshot is an immutable point-in-time view of all export metrics.
// Returned by Collector.Snapshot(). Safe to read concurrently after creation.
type Snapshot struct {
	// Export lifecycle
	ExportsStarted   int64
	ExportsCompleted int64
	ExportsCancelled int64
	ExportsFailed    int64

	// Rendering
	FramesSelected int64
	FramesRendered int64
	FramesFailed   int64

	// Assembly
	EncodeFailures int64

	// Storage
	StoreWriteSuccess int64
	StoreWriteFailure int64

	// Dimensions (informational, set at construction)
	Tier     string
	ExportID string
}

// Collector accumulates metrics during a single export request.
// Thread-safe via sync.Mutex. All increment methods are nil-receiver safe.
type Collector struct {
	mu sync.Mutex

	// Export lifecycle
	exportsStarted   int64
	exportsCompleted int64
	exportsCancelled int64
	exportsFailed    int64

	// Rendering
	framesSelected int64
	framesRendered int64
	framesFailed   int64

	// Assembly
	encodeFailures int64

	// Storage
	storeWriteSuccess int64
	storeWriteFailure int64

	// Dimensions
	tier     string
	exportID string
}

// NewCollector creates a Collector with dimension labels.
func NewCollector(tier, exportID string) *Collector {
	return &Collector{
		tier:     tier,
		exportID: exportID,
	}
}

// --- Export lifecycle ---

// IncExportStarted records an export start.
func (c *Collector) IncExportStarted() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.exportsStarted++
	c.mu.Unlock()
}

// IncExportCompleted records a successful export completion.
func (c *Collector) IncExportCompleted() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.exportsCompleted++
	c.mu.Unlock()
}

// IncExportCancelled records a user-initiated cancellation.
func (c *Collector) IncExportCancelled() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.exportsCancelled++
	c.mu.Unlock()
}

// IncExportFailed records a terminal export failure (render_failure,
// encoding_error, or config_invalid).
func (c *Collector) IncExportFailed() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.exportsFailed++
	c.mu.Unlock()
}

// --- Rendering ---

// SetFramesSelected records the sampled frame count for the request.
func (c *Collector) SetFramesSelected(n int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.framesSelected = int64(n)
	c.mu.Unlock()
}

// IncFrameRendered records one successfully rasterized frame.
func (c *Collector) IncFrameRendered() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.framesRendered++
	c.mu.Unlock()
}

// IncFrameFailed records one frame that failed to rasterize.
func (c *Collector) IncFrameFailed() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.framesFailed++
	c.mu.Unlock()
}

// --- Assembly ---

// IncEncodeFailure records a rejected assembly attempt.
func (c *Collector) IncEncodeFailure() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.encodeFailures++
	c.mu.Unlock()
}

// --- Storage ---
// Store counters are per-call: one Put of an artifact counts as 1 success
// regardless of artifact size.

// IncStoreWriteSuccess records a successful artifact write.
func (c *Collector) IncStoreWriteSuccess() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.storeWriteSuccess++
	c.mu.Unlock()
}

// IncStoreWriteFailure records a failed artifact write.
func (c *Collector) IncStoreWriteFailure() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.storeWriteFailure++
	c.mu.Unlock()
}

// --- Snapshot ---

// Snapshot returns an immutable point-in-time view of all metrics.
// The returned Snapshot is safe to read concurrently; the Collector can
// continue to be mutated independently.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		ExportsStarted:   c.exportsStarted,
		ExportsCompleted: c.exportsCompleted,
		ExportsCancelled: c.exportsCancelled,
		ExportsFailed:    c.exportsFailed,

		FramesSelected: c.framesSelected,
		FramesRendered: c.framesRendered,
		FramesFailed:   c.framesFailed,

		EncodeFailures: c.encodeFailures,

		StoreWriteSuccess: c.storeWriteSuccess,
		StoreWriteFailure: c.storeWriteFailure,

		Tier:     c.tier,
		ExportID: c.exportID,
	}
}
