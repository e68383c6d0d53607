// Package dataset loads decoded flight-parameter tables from CSV, cleans
// them, and computes descriptive statistics. Cells are held as strings
// until a caller asks for a typed column; missing cells are empty strings.
package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Dataset is a loaded table: a header and row-major cells.
type Dataset struct {
	// Name labels the dataset, typically the source filename.
	Name string
	// Encoding is the detected byte encoding of the source file.
	Encoding string
	// Columns is the header in file order.
	Columns []string
	// Rows are the data cells. Every row has len(Columns) cells; missing
	// cells are "".
	Rows [][]string
}

// timeColumnNames are the header names probed by DetectTimeColumn, in
// priority order. Decoded exports from Chinese-market recorders label the
// time axis in Chinese.
var timeColumnNames = []string{
	"Time", "DateTime", "Timestamp", "时间",
	"time", "datetime", "timestamp", "date",
	"Date", "TIME", "DATETIME", "TIMESTAMP",
}

// ColumnIndex returns the position of name in the header, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the raw cells of the named column.
func (d *Dataset) Column(name string) ([]string, error) {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("dataset: no column %q", name)
	}
	out := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// NumericColumn parses the named column as float64. Missing and
// unparseable cells become NaN so row alignment across columns is kept.
func (d *Dataset) NumericColumn(name string) ([]float64, error) {
	cells, err := d.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(cells))
	for i, cell := range cells {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = v
	}
	return out, nil
}

// NumericColumns returns the names of columns whose leading non-missing
// cells all parse as numbers. At most ten cells are probed per column.
func (d *Dataset) NumericColumns() []string {
	var out []string
	for idx, name := range d.Columns {
		probed, numeric := 0, true
		for _, row := range d.Rows {
			if probed >= 10 {
				break
			}
			cell := strings.TrimSpace(row[idx])
			if cell == "" {
				continue
			}
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				numeric = false
				break
			}
			probed++
		}
		if numeric && probed > 0 {
			out = append(out, name)
		}
	}
	return out
}

// DetectTimeColumn returns the first header matching a known time-axis
// name.
func (d *Dataset) DetectTimeColumn() (string, bool) {
	for _, candidate := range timeColumnNames {
		if d.ColumnIndex(candidate) >= 0 {
			return candidate, true
		}
	}
	return "", false
}

// MissingCells counts empty cells per column.
func (d *Dataset) MissingCells() map[string]int {
	out := make(map[string]int, len(d.Columns))
	for idx, name := range d.Columns {
		n := 0
		for _, row := range d.Rows {
			if row[idx] == "" {
				n++
			}
		}
		out[name] = n
	}
	return out
}
