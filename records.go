package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Column names consumed by the reports. Matching is exact and
// case-sensitive; anything else in the file is carried but ignored.
const (
	colLocation = "Location"
	colPayor    = "Payor"
	colPatient  = "Patient"
	colService  = "Service"
)

// Record is one row of the input file keyed by header name. Values are
// stored raw; all access goes through fieldValue so blank handling is
// uniform across every report.
type Record map[string]string

// fieldValue returns the trimmed value of a field. The second return is
// false when the field is missing or blank after trimming; callers treat
// those two cases identically.
func fieldValue(rec Record, field string) (string, bool) {
	value, ok := rec[field]
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

// fieldMatches reports whether a field equals target, case-insensitively,
// after trimming. Absent fields never match.
func fieldMatches(rec Record, field string, target string) bool {
	value, ok := fieldValue(rec, field)
	if !ok {
		return false
	}
	return strings.EqualFold(value, target)
}

// loadRecords reads the input CSV into memory. Exports from the practice
// management system arrive either as UTF-8 or as Latin-1, so invalid
// UTF-8 is re-decoded through Windows-1252 before parsing.
func loadRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read input file: %w", err)
	}

	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("unable to decode input file: %w", err)
		}
		data = decoded
	}

	text := strings.TrimPrefix(string(data), "\uFEFF")

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := rows[0]
	for i, header := range headers {
		headers[i] = strings.TrimSpace(header)
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(headers))
		for i, header := range headers {
			if header == "" || i >= len(row) {
				continue
			}
			rec[header] = row[i]
		}
		records = append(records, rec)
	}
	return records, nil
}
