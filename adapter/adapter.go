// Package adapter defines the notification boundary for finished exports.
//
// Adapters publish export completion events to downstream systems. The CLI
// owns adapter lifecycle; users provide configuration only.
package adapter

import "context"

// ExportCompletedEvent is the payload published when an export finishes,
// on every terminal outcome including cancellation.
type ExportCompletedEvent struct {
	EventType   string `json:"event_type"` // always "export_completed"
	ExportID    string `json:"export_id"`
	Dataset     string `json:"dataset,omitempty"`
	Tier        string `json:"tier"`
	Outcome     string `json:"outcome"` // completed, cancelled, etc.
	SizeBytes   int64  `json:"size_bytes"`
	FrameCount  int    `json:"frame_count"`
	DurationMs  int64  `json:"duration_ms"`
	StoragePath string `json:"storage_path,omitempty"`
	Timestamp   string `json:"timestamp"` // ISO 8601
	Version     string `json:"version"`
}

// EventTypeExportCompleted is the EventType value for all events.
const EventTypeExportCompleted = "export_completed"

// Adapter publishes export completion events to a downstream system.
// Implementations must be safe for single-use per export.
type Adapter interface {
	// Publish sends an export completion event to the downstream system.
	// Must respect context cancellation and deadlines.
	Publish(ctx context.Context, event *ExportCompletedEvent) error

	// Close releases adapter resources.
	Close() error
}
