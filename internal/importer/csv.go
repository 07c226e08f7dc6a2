package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCSV means the input had no header or no data lines.
var ErrEmptyCSV = errors.New("empty CSV")

// ReadCSV parses CSV text into header-keyed records. The delimiter is
// auto-detected: ";" when the text contains one, "," otherwise. The first
// line is the header; blank lines are skipped.
func ReadCSV(text string) ([]Record, error) {
	sep := ','
	if strings.Contains(text, ";") {
		sep = ';'
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	lines, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(lines) < 2 {
		return nil, ErrEmptyCSV
	}

	headers := make([]string, len(lines[0]))
	for i, h := range lines[0] {
		headers[i] = strings.TrimSpace(h)
	}

	records := make([]Record, 0, len(lines)-1)
	for _, cols := range lines[1:] {
		if isBlankLine(cols) {
			continue
		}
		r := make(Record, len(headers))
		for i, h := range headers {
			if i < len(cols) {
				r[h] = strings.TrimSpace(cols[i])
			} else {
				r[h] = ""
			}
		}
		records = append(records, r)
	}
	if len(records) == 0 {
		return nil, ErrEmptyCSV
	}
	return records, nil
}

func isBlankLine(cols []string) bool {
	for _, c := range cols {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
