package types

// OutcomeStatus classifies the terminal state of an export request.
type OutcomeStatus string

const (
	// OutcomeCompleted indicates the export produced an artifact.
	OutcomeCompleted OutcomeStatus = "completed"
	// OutcomeCancelled indicates a user-initiated cancel. Terminal but not
	// an error; partial work is discarded and no artifact is produced.
	OutcomeCancelled OutcomeStatus = "cancelled"
	// OutcomeRenderFailure indicates zero frames survived rendering.
	OutcomeRenderFailure OutcomeStatus = "render_failure"
	// OutcomeEncodingError indicates the assembly step rejected the
	// surviving frames. Non-retryable for this request.
	OutcomeEncodingError OutcomeStatus = "encoding_error"
	// OutcomeConfigInvalid indicates the request failed validation before
	// any rendering work started.
	OutcomeConfigInvalid OutcomeStatus = "config_invalid"
)

// IsTerminalError reports whether the status is a terminal failure.
// Cancellation is terminal but deliberately not an error.
func (s OutcomeStatus) IsTerminalError() bool {
	return s == OutcomeRenderFailure || s == OutcomeEncodingError || s == OutcomeConfigInvalid
}

// ExportOutcome describes how an export request ended.
type ExportOutcome struct {
	// Status is the outcome classification.
	Status OutcomeStatus `json:"status"`
	// Message is a human-readable description.
	Message string `json:"message"`
}
