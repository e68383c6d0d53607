package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LoadOptions configures CSV loading.
type LoadOptions struct {
	// HeaderRow is the zero-based row index of the header; rows above it
	// are discarded.
	HeaderRow int
	// SkipRows discards that many data rows after the header.
	SkipRows int
	// Name overrides the dataset label. Defaults to the file basename.
	Name string
}

// Load reads a CSV file into a Dataset, detecting the byte encoding.
func Load(path string, opts LoadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	defer f.Close()

	if opts.Name == "" {
		opts.Name = filepath.Base(path)
	}
	return LoadReader(f, opts)
}

// LoadReader reads CSV from r into a Dataset, detecting the byte encoding.
func LoadReader(r io.Reader, opts LoadOptions) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	decoded, encoding, err := decodeToUTF8(raw)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1 // ragged rows are padded below
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("load dataset: parse csv: %w", err)
	}
	if opts.HeaderRow >= len(records) {
		return nil, fmt.Errorf("load dataset: header row %d beyond %d rows", opts.HeaderRow, len(records))
	}

	header := records[opts.HeaderRow]
	if len(header) == 0 {
		return nil, fmt.Errorf("load dataset: empty header")
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
	}

	body := records[opts.HeaderRow+1:]
	if opts.SkipRows > 0 {
		if opts.SkipRows >= len(body) {
			body = nil
		} else {
			body = body[opts.SkipRows:]
		}
	}

	rows := make([][]string, 0, len(body))
	for _, record := range body {
		row := make([]string, len(header))
		for i := range row {
			if i < len(record) {
				row[i] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("load dataset: no data rows")
	}

	return &Dataset{Name: opts.Name, Encoding: encoding, Columns: header, Rows: rows}, nil
}
