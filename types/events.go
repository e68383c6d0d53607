package types

// ProgressEvent reports incremental export progress.
//
// Events are emitted only by the aggregating goroutine, one per observed
// worker result, so consumers may treat the stream as single-threaded.
// Completed counts frames that rendered successfully; a failed frame is
// observed (and an event emitted) without advancing Completed.
type ProgressEvent struct {
	// ExportID identifies the export request.
	ExportID string `json:"export_id"`
	// Completed is the number of frames rendered so far.
	Completed int `json:"completed"`
	// Total is the number of frames selected for rendering.
	Total int `json:"total"`
	// Tier is the quality tier label for display.
	Tier QualityTier `json:"tier"`
}

// ProgressObserver receives progress events. Implementations are never
// called concurrently; all calls come from the aggregating goroutine.
type ProgressObserver func(ProgressEvent)
