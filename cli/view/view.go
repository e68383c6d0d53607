// Package view defines the response payloads produced by CLI commands.
//
// The same payload is handed to every output path (json, table, yaml,
// TUI) so that no mode can expose data the others cannot.
package view

// InspectDatasetResponse is the response for `inspect dataset`.
type InspectDatasetResponse struct {
	Name           string     `json:"name" yaml:"name"`
	Encoding       string     `json:"encoding" yaml:"encoding"`
	Rows           int        `json:"rows" yaml:"rows"`
	Columns        int        `json:"columns" yaml:"columns"`
	ColumnNames    []string   `json:"column_names" yaml:"column_names"`
	NumericColumns []string   `json:"numeric_columns" yaml:"numeric_columns"`
	TimeColumn     string     `json:"time_column,omitempty" yaml:"time_column,omitempty"`
	MissingCells   int        `json:"missing_cells" yaml:"missing_cells"`
	Sample         [][]string `json:"sample" yaml:"sample"`
}

// ColumnSummary holds descriptive statistics for one numeric column.
type ColumnSummary struct {
	Column string  `json:"column" yaml:"column"`
	Count  int     `json:"count" yaml:"count"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Std    float64 `json:"std" yaml:"std"`
	Min    float64 `json:"min" yaml:"min"`
	Median float64 `json:"median" yaml:"median"`
	Max    float64 `json:"max" yaml:"max"`
}

// ColumnOutliers reports IQR outliers for one numeric column.
type ColumnOutliers struct {
	Column   string  `json:"column" yaml:"column"`
	Count    int     `json:"count" yaml:"count"`
	Fraction float64 `json:"fraction" yaml:"fraction"`
}

// CorrelationInfo is a strongly correlated column pair.
type CorrelationInfo struct {
	ColumnA string  `json:"column_a" yaml:"column_a"`
	ColumnB string  `json:"column_b" yaml:"column_b"`
	R       float64 `json:"r" yaml:"r"`
}

// StatsDatasetResponse is the response for `stats dataset`.
type StatsDatasetResponse struct {
	Name         string            `json:"name" yaml:"name"`
	Rows         int               `json:"rows" yaml:"rows"`
	Columns      int               `json:"columns" yaml:"columns"`
	Summaries    []ColumnSummary   `json:"summaries" yaml:"summaries"`
	Outliers     []ColumnOutliers  `json:"outliers,omitempty" yaml:"outliers,omitempty"`
	Correlations []CorrelationInfo `json:"correlations,omitempty" yaml:"correlations,omitempty"`
	Insights     []string          `json:"insights" yaml:"insights"`
}

// TierInfo describes one quality tier for `tiers`.
type TierInfo struct {
	Tier             string  `json:"tier" yaml:"tier"`
	Width            int     `json:"width" yaml:"width"`
	Height           int     `json:"height" yaml:"height"`
	Scale            float64 `json:"scale" yaml:"scale"`
	FrameDelayMs     int     `json:"frame_delay_ms" yaml:"frame_delay_ms"`
	ReducedPalette   bool    `json:"reduced_palette" yaml:"reduced_palette"`
	MaxSampledFrames int     `json:"max_sampled_frames,omitempty" yaml:"max_sampled_frames,omitempty"`
}

// ExportResponse is the response for `export`.
type ExportResponse struct {
	ExportID       string `json:"export_id" yaml:"export_id"`
	Dataset        string `json:"dataset" yaml:"dataset"`
	Tier           string `json:"tier" yaml:"tier"`
	Outcome        string `json:"outcome" yaml:"outcome"`
	FramesSelected int    `json:"frames_selected" yaml:"frames_selected"`
	FramesRendered int    `json:"frames_rendered" yaml:"frames_rendered"`
	SizeBytes      int    `json:"size_bytes" yaml:"size_bytes"`
	DurationMs     int64  `json:"duration_ms" yaml:"duration_ms"`
	StoragePath    string `json:"storage_path,omitempty" yaml:"storage_path,omitempty"`
}
