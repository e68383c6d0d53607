package dataset

import (
	"math"
	"testing"
)

func testDataset(rows [][]string) *Dataset {
	return &Dataset{
		Name:    "test",
		Columns: []string{"A", "B"},
		Rows:    rows,
	}
}

func TestClean_TrimsAndNormalizesMissing(t *testing.T) {
	ds := testDataset([][]string{
		{" 1 ", "  "},
		{"nan", "2"},
	})

	out, _, err := Clean(ds, CleanOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if out.Rows[0][0] != "1" {
		t.Errorf("cell not trimmed: %q", out.Rows[0][0])
	}
	if out.Rows[0][1] != "" || out.Rows[1][0] != "" {
		t.Errorf("whitespace and nan cells should be missing: %v", out.Rows)
	}
}

func TestClean_RemoveDuplicates(t *testing.T) {
	ds := testDataset([][]string{
		{"1", "2"},
		{"1", "2"},
		{"3", "4"},
	})

	out, _, err := Clean(ds, CleanOptions{RemoveDuplicates: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Rows) != 2 {
		t.Errorf("got %d rows, want 2", len(out.Rows))
	}
}

func TestClean_FillDrop(t *testing.T) {
	ds := testDataset([][]string{
		{"1", ""},
		{"2", "3"},
	})

	out, _, err := Clean(ds, CleanOptions{Fill: FillDrop})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Rows) != 1 || out.Rows[0][0] != "2" {
		t.Errorf("rows = %v", out.Rows)
	}
}

func TestClean_FillForward(t *testing.T) {
	ds := testDataset([][]string{
		{"1", "a"},
		{"", ""},
		{"3", "c"},
	})

	out, _, err := Clean(ds, CleanOptions{Fill: FillForward})
	if err != nil {
		t.Fatal(err)
	}
	if out.Rows[1][0] != "1" || out.Rows[1][1] != "a" {
		t.Errorf("forward fill: %v", out.Rows)
	}
}

func TestClean_FillBackward(t *testing.T) {
	ds := testDataset([][]string{
		{"", "a"},
		{"2", "b"},
	})

	out, _, err := Clean(ds, CleanOptions{Fill: FillBackward})
	if err != nil {
		t.Fatal(err)
	}
	if out.Rows[0][0] != "2" {
		t.Errorf("backward fill: %v", out.Rows)
	}
}

func TestClean_FillMean(t *testing.T) {
	ds := testDataset([][]string{
		{"1", "x"},
		{"", "y"},
		{"3", "z"},
	})

	out, _, err := Clean(ds, CleanOptions{Fill: FillMean})
	if err != nil {
		t.Fatal(err)
	}

	vals, err := out.NumericColumn("A")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(vals[1]-2.0) > 1e-9 {
		t.Errorf("mean fill = %v, want 2", vals[1])
	}
}

func TestClean_HashColumns(t *testing.T) {
	ds := testDataset([][]string{
		{"1", "apt-PEK"},
		{"2", "apt-SHA"},
		{"3", "apt-PEK"},
		{"4", ""},
	})

	out, mappings, err := Clean(ds, CleanOptions{HashColumns: []string{"B"}})
	if err != nil {
		t.Fatal(err)
	}

	vals, err := out.NumericColumn("B")
	if err != nil {
		t.Fatal(err)
	}

	// Same string, same code; missing codes to zero.
	if vals[0] != vals[2] {
		t.Errorf("same string hashed differently: %v vs %v", vals[0], vals[2])
	}
	if vals[0] == vals[1] {
		t.Errorf("distinct strings collided: %v", vals)
	}
	if vals[3] != 0 {
		t.Errorf("missing cell should code to 0, got %v", vals[3])
	}
	for _, v := range vals[:3] {
		if v < 0 || v > 999999 {
			t.Errorf("code %v outside [0, 999999]", v)
		}
	}

	mapping := mappings["B"]
	if len(mapping) != 2 {
		t.Errorf("mapping = %v, want 2 entries", mapping)
	}
	if code, ok := mapping["apt-PEK"]; !ok || float64(code) != vals[0] {
		t.Errorf("mapping does not round-trip: %v vs %v", code, vals[0])
	}
}

func TestClean_HashUnknownColumn(t *testing.T) {
	ds := testDataset([][]string{{"1", "2"}})

	if _, _, err := Clean(ds, CleanOptions{HashColumns: []string{"missing"}}); err == nil {
		t.Error("expected error for unknown hash column")
	}
}

func TestClean_UnknownFillMethod(t *testing.T) {
	ds := testDataset([][]string{{"1", "2"}})

	if _, _, err := Clean(ds, CleanOptions{Fill: FillMethod("interpolate")}); err == nil {
		t.Error("expected error for unknown fill method")
	}
}
