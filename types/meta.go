package types

import "errors"

// ExportMeta is the identity of a single export request.
// Created fresh per request and never reused.
type ExportMeta struct {
	// ExportID is the canonical export identifier.
	ExportID string `json:"export_id"`
	// Tier is the requested quality tier.
	Tier QualityTier `json:"tier"`
	// Dataset is an optional label for the source dataset.
	Dataset string `json:"dataset,omitempty"`
}

// Validate checks required identity fields.
func (m *ExportMeta) Validate() error {
	if m == nil {
		return errors.New("export metadata is nil")
	}
	if m.ExportID == "" {
		return errors.New("export_id is required")
	}
	if m.Tier == "" {
		return errors.New("tier is required")
	}
	return nil
}
