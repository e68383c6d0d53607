package dataset

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// FillMethod selects how missing cells are handled during cleaning.
type FillMethod string

const (
	// FillDrop removes rows with any missing cell.
	FillDrop FillMethod = "drop"
	// FillForward propagates the last seen value downward.
	FillForward FillMethod = "forward"
	// FillBackward propagates the next seen value upward.
	FillBackward FillMethod = "backward"
	// FillMean replaces missing numeric cells with the column mean.
	// Non-numeric cells fall back to backward fill.
	FillMean FillMethod = "mean"
	// FillNone leaves missing cells empty.
	FillNone FillMethod = ""
)

// CleanOptions configures Clean.
type CleanOptions struct {
	// RemoveDuplicates drops exact duplicate rows, keeping the first.
	RemoveDuplicates bool
	// Fill is the missing-cell policy.
	Fill FillMethod
	// HashColumns are string columns to convert into stable numeric codes
	// so they can be plotted. The string-to-code mapping is returned.
	HashColumns []string
}

// HashMappings records, per hashed column, the original string behind each
// numeric code.
type HashMappings map[string]map[string]int

// Clean returns a cleaned copy of ds. Cells are trimmed first, with
// whitespace-only and literal "nan" cells treated as missing, then the
// configured policies are applied in order: dedup, fill, hash conversion.
func Clean(ds *Dataset, opts CleanOptions) (*Dataset, HashMappings, error) {
	rows := make([][]string, len(ds.Rows))
	for i, row := range ds.Rows {
		clean := make([]string, len(row))
		for j, cell := range row {
			cell = strings.TrimSpace(cell)
			if strings.EqualFold(cell, "nan") {
				cell = ""
			}
			clean[j] = cell
		}
		rows[i] = clean
	}

	if opts.RemoveDuplicates {
		rows = dedupRows(rows)
	}

	out := &Dataset{Name: ds.Name, Columns: ds.Columns, Rows: rows}

	switch opts.Fill {
	case FillDrop:
		out.Rows = dropMissing(out.Rows)
	case FillForward:
		fillForward(out.Rows)
	case FillBackward:
		fillBackward(out.Rows)
	case FillMean:
		fillMean(out)
	case FillNone:
	default:
		return nil, nil, fmt.Errorf("clean: unknown fill method %q", opts.Fill)
	}

	mappings := make(HashMappings)
	for _, col := range opts.HashColumns {
		idx := out.ColumnIndex(col)
		if idx < 0 {
			return nil, nil, fmt.Errorf("clean: no column %q to hash", col)
		}
		mappings[col] = hashColumn(out.Rows, idx)
	}

	return out, mappings, nil
}

// hashColumn replaces string cells with stable numeric codes in [0, 999999]
// and returns the string-to-code mapping. Missing cells code to 0.
func hashColumn(rows [][]string, idx int) map[string]int {
	mapping := make(map[string]int)
	for _, row := range rows {
		cell := row[idx]
		if cell == "" {
			row[idx] = "0"
			continue
		}
		code, ok := mapping[cell]
		if !ok {
			h := fnv.New32a()
			h.Write([]byte(cell))
			code = int(h.Sum32() % 1000000)
			mapping[cell] = code
		}
		row[idx] = strconv.Itoa(code)
	}
	return mapping
}

func dedupRows(rows [][]string) [][]string {
	seen := make(map[string]bool, len(rows))
	out := rows[:0]
	for _, row := range rows {
		key := strings.Join(row, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, row)
	}
	return out
}

func dropMissing(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		missing := false
		for _, cell := range row {
			if cell == "" {
				missing = true
				break
			}
		}
		if !missing {
			out = append(out, row)
		}
	}
	return out
}

func fillForward(rows [][]string) {
	if len(rows) == 0 {
		return
	}
	for col := range rows[0] {
		last := ""
		for _, row := range rows {
			if row[col] == "" {
				row[col] = last
			} else {
				last = row[col]
			}
		}
	}
}

func fillBackward(rows [][]string) {
	if len(rows) == 0 {
		return
	}
	for col := range rows[0] {
		next := ""
		for i := len(rows) - 1; i >= 0; i-- {
			if rows[i][col] == "" {
				rows[i][col] = next
			} else {
				next = rows[i][col]
			}
		}
	}
}

// fillMean replaces missing numeric cells with the column mean and falls
// back to backward fill for non-numeric columns.
func fillMean(ds *Dataset) {
	numeric := make(map[int]bool)
	for _, name := range ds.NumericColumns() {
		numeric[ds.ColumnIndex(name)] = true
	}

	for col := range ds.Columns {
		if !numeric[col] {
			continue
		}
		sum, n := 0.0, 0
		for _, row := range ds.Rows {
			if row[col] == "" {
				continue
			}
			if v, err := strconv.ParseFloat(row[col], 64); err == nil {
				sum += v
				n++
			}
		}
		if n == 0 {
			continue
		}
		mean := strconv.FormatFloat(sum/float64(n), 'g', -1, 64)
		for _, row := range ds.Rows {
			if row[col] == "" {
				row[col] = mean
			}
		}
	}

	fillBackward(ds.Rows)
}
