package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/flightdeck-io/flightdeck/cli/view"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{"json lowercase", "json", FormatJSON, false},
		{"json uppercase", "JSON", FormatJSON, false},
		{"table", "table", FormatTable, false},
		{"yaml", "yaml", FormatYAML, false},
		{"empty", "", "", false},
		{"invalid", "xml", "", true},
		{"invalid csv", "csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat_InvalidErrorMessage(t *testing.T) {
	_, err := ParseFormat("xml")
	if err == nil {
		t.Fatal("expected error for invalid format")
	}
	if !strings.Contains(err.Error(), "json, table, or yaml") {
		t.Errorf("error message should mention valid formats, got: %v", err)
	}
}

func TestRenderer_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatJSON, false, &buf)

	resp := view.ExportResponse{
		ExportID: "exp-1",
		Tier:     "standard",
		Outcome:  "completed",
	}
	if err := r.Render(resp); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, `"export_id"`) || !strings.Contains(got, `"exp-1"`) {
		t.Errorf("JSON output missing expected content: %s", got)
	}
}

func TestRenderer_YAML(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatYAML, false, &buf)

	resp := view.ExportResponse{ExportID: "exp-1", Outcome: "completed"}
	if err := r.Render(resp); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "export_id:") || !strings.Contains(got, "exp-1") {
		t.Errorf("YAML output missing expected content: %s", got)
	}
}

func TestRenderer_Table_Struct(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, false, &buf)

	resp := view.ExportResponse{
		ExportID:       "exp-1",
		Tier:           "high",
		Outcome:        "completed",
		FramesRendered: 61,
	}
	if err := r.Render(resp); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "export_id:") || !strings.Contains(got, "exp-1") {
		t.Errorf("Table output missing export_id field: %s", got)
	}
	if !strings.Contains(got, "frames_rendered:") || !strings.Contains(got, "61") {
		t.Errorf("Table output missing frames_rendered field: %s", got)
	}
}

func TestRenderer_Table_Slice(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, false, &buf)

	tiers := []view.TierInfo{
		{Tier: "fastest", Width: 240, Height: 160},
		{Tier: "standard", Width: 480, Height: 360},
	}
	if err := r.Render(tiers); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "tier") || !strings.Contains(got, "width") {
		t.Errorf("Table output missing headers: %s", got)
	}
	if !strings.Contains(got, "fastest") || !strings.Contains(got, "standard") {
		t.Errorf("Table output missing data rows: %s", got)
	}
}

func TestRenderer_Table_EmptySlice(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, false, &buf)

	if err := r.Render([]view.TierInfo{}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "(no results)") {
		t.Errorf("empty slice should render placeholder, got: %s", buf.String())
	}
}

func TestRenderer_Table_FloatFormatting(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, false, &buf)

	s := view.ColumnSummary{Column: "Altitude", Mean: 1234.567891234}
	if err := r.Render(s); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	got := buf.String()
	if strings.Contains(got, "1234.567891234") {
		t.Errorf("float should be trimmed to 6 significant digits: %s", got)
	}
	if !strings.Contains(got, "1234.57") {
		t.Errorf("expected rounded mean in output: %s", got)
	}
}

func TestRenderer_Table_StringSliceJoined(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, false, &buf)

	resp := view.InspectDatasetResponse{
		Name:           "flight",
		ColumnNames:    []string{"Time", "Altitude"},
		NumericColumns: []string{"Altitude"},
	}
	if err := r.Render(resp); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "Time, Altitude") {
		t.Errorf("string slices should join with commas: %s", got)
	}
}

func TestRenderer_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(Format("xml"), false, &buf)
	if err := r.Render(struct{}{}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRenderer_TUI_UnsupportedView(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, false, &buf)
	if err := r.RenderTUI("tiers", nil); err == nil {
		t.Error("expected error for TUI on unsupported view")
	}
}
