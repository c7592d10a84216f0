package main

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type sortMode string

const (
	sortAlphabetical sortMode = "alphabetical"
	sortByCount      sortMode = "by-count"
)

func parseSortMode(value string) (sortMode, error) {
	switch sortMode(strings.ToLower(strings.TrimSpace(value))) {
	case sortAlphabetical:
		return sortAlphabetical, nil
	case sortByCount:
		return sortByCount, nil
	default:
		return "", fmt.Errorf("invalid sort mode: %s", value)
	}
}

// Console display budgets. Persisted outputs are never elided.
const (
	maxMatrixConsoleColumns = 5
	maxRatioConsoleLines    = 40
	maxUsageConsoleLines    = 50
	consoleElisionMarker    = "... (see full report in file)"
)

type countRow struct {
	Key   string
	Count int
}

// sortedCountRows orders group counts deterministically: alphabetical
// ascending by key, or count descending with alphabetical ascending as
// the tie-break.
func sortedCountRows(counts map[string]int, mode sortMode) []countRow {
	rows := make([]countRow, 0, len(counts))
	for key, count := range counts {
		rows = append(rows, countRow{Key: key, Count: count})
	}
	if mode == sortByCount {
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Count != rows[j].Count {
				return rows[i].Count > rows[j].Count
			}
			return rows[i].Key < rows[j].Key
		})
	} else {
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].Key < rows[j].Key
		})
	}
	return rows
}

// sortedSetRows orders a value->patient-set breakdown by distinct-patient
// count descending, value ascending on ties.
func sortedSetRows(byValue map[string]map[string]struct{}) []countRow {
	counts := make(map[string]int, len(byValue))
	for value, patients := range byValue {
		counts[value] = len(patients)
	}
	return sortedCountRows(counts, sortByCount)
}

// truncateDisplay shortens a value to fit a display-limited column,
// marking the cut with a two-character ellipsis. Used only for console
// detail columns; persisted files always carry full values. Cuts land on
// rune boundaries so accented names stay valid UTF-8.
func truncateDisplay(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-2]) + ".."
}

// clipRunes caps a value at limit runes with no marker.
func clipRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}

func banner(width int) string {
	return strings.Repeat("=", width)
}

func rule(width int) string {
	return strings.Repeat("-", width)
}

func formatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// ReportTable is the single source for every representation of a tabular
// report section. The console, flat-text, CSV, and workbook renderings
// are all derived from it, never recomputed.
type ReportTable struct {
	Columns []string
	Rows    [][]string
	Totals  []string
}

// CSV returns the full delimited form: header, data rows, and the totals
// row when present.
func (t ReportTable) CSV() [][]string {
	rows := make([][]string, 0, len(t.Rows)+2)
	rows = append(rows, t.Columns)
	rows = append(rows, t.Rows...)
	if len(t.Totals) > 0 {
		rows = append(rows, t.Totals)
	}
	return rows
}

// countTable builds the one-dimension count table with its totals row.
// The total sums emitted row counts, preserving per-group independence.
func countTable(keyHeader string, rows []countRow) ReportTable {
	table := ReportTable{Columns: []string{keyHeader, "Unique_Patients"}}
	total := 0
	for _, row := range rows {
		table.Rows = append(table.Rows, []string{row.Key, fmt.Sprintf("%d", row.Count)})
		total += row.Count
	}
	table.Totals = []string{"TOTAL", fmt.Sprintf("%d", total)}
	return table
}

// matrixTable builds the two-dimension matrix with a totals column and a
// totals row. The grand total is the sum of row totals and equals the sum
// of column totals by construction.
func matrixTable(nested NestedCounts, outerHeader string) ReportTable {
	innerValues := nested.InnerValues()
	outerValues := make([]string, 0, len(nested.Groups))
	for outer := range nested.Groups {
		outerValues = append(outerValues, outer)
	}
	sort.Strings(outerValues)

	table := ReportTable{Columns: append(append([]string{outerHeader}, innerValues...), "Total")}

	columnTotals := make([]int, len(innerValues))
	grandTotal := 0
	for _, outer := range outerValues {
		row := make([]string, 0, len(innerValues)+2)
		row = append(row, outer)
		rowTotal := 0
		for i, inner := range innerValues {
			count := len(nested.Groups[outer][inner])
			row = append(row, fmt.Sprintf("%d", count))
			rowTotal += count
			columnTotals[i] += count
		}
		row = append(row, fmt.Sprintf("%d", rowTotal))
		table.Rows = append(table.Rows, row)
		grandTotal += rowTotal
	}

	totals := make([]string, 0, len(innerValues)+2)
	totals = append(totals, "TOTAL")
	for _, count := range columnTotals {
		totals = append(totals, fmt.Sprintf("%d", count))
	}
	totals = append(totals, fmt.Sprintf("%d", grandTotal))
	table.Totals = totals
	return table
}

// countReportLines renders a one-dimension count table in the fixed-width
// layout shared by console and flat-text output. File output carries the
// generation stamp and sort order; console output does not.
func countReportLines(title string, keyHeader string, table ReportTable, mode sortMode, generatedAt time.Time, forFile bool) []string {
	lines := []string{banner(50), title}
	if forFile {
		lines = append(lines,
			fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02 15:04:05")),
			fmt.Sprintf("Sort Order: %s", sortOrderLabel(mode)),
		)
	}
	lines = append(lines,
		banner(50),
		fmt.Sprintf("%-30s %15s", keyHeader, "Unique Patients"),
		rule(50),
	)
	for _, row := range table.Rows {
		lines = append(lines, fmt.Sprintf("%-30s %15s", row[0], row[1]))
	}
	lines = append(lines,
		rule(50),
		fmt.Sprintf("%-30s %15s", table.Totals[0], table.Totals[1]),
		banner(50),
	)
	return lines
}

func sortOrderLabel(mode sortMode) string {
	if mode == sortByCount {
		return "By Count"
	}
	return "Alphabetical"
}

// matrixConsoleLines renders the matrix for interactive display: at most
// the first maxMatrixConsoleColumns inner columns, inner names cut to 12
// characters, remaining columns replaced by an elision marker.
func matrixConsoleLines(table ReportTable, title string) []string {
	innerCount := len(table.Columns) - 2
	shown := innerCount
	elided := false
	if shown > maxMatrixConsoleColumns {
		shown = maxMatrixConsoleColumns
		elided = true
	}

	lines := []string{"", banner(70), title, banner(70)}

	header := fmt.Sprintf("%-20s", table.Columns[0])
	for _, name := range table.Columns[1 : 1+shown] {
		header += fmt.Sprintf("%13s", clipRunes(name, 12))
	}
	if elided {
		header += "  ..."
	}
	lines = append(lines, header, rule(70))

	for _, row := range table.Rows {
		line := fmt.Sprintf("%-20s", row[0])
		for _, cell := range row[1 : 1+shown] {
			line += fmt.Sprintf("%13s", cell)
		}
		if elided {
			line += "  ..."
		}
		lines = append(lines, line)
	}
	return lines
}

// matrixFileLines renders the full matrix as tab-separated flat text with
// the totals row, never elided.
func matrixFileLines(table ReportTable, title string, generatedAt time.Time) []string {
	lines := []string{
		banner(70),
		title,
		fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02 15:04:05")),
		banner(70),
		strings.Join(table.Columns, "\t"),
		rule(70),
	}
	for _, row := range table.Rows {
		lines = append(lines, strings.Join(row, "\t"))
	}
	lines = append(lines, rule(70), strings.Join(table.Totals, "\t"))
	return lines
}

// elideLines caps interactive output at maxLines, appending the elision
// marker and the closing lines of the document so totals stay visible.
// The closing tail is skipped when it would repeat lines already kept.
func elideLines(lines []string, maxLines int, closing int) []string {
	if len(lines) <= maxLines {
		return lines
	}
	elided := append([]string{}, lines[:maxLines]...)
	elided = append(elided, consoleElisionMarker)
	if closing > 0 && len(lines)-closing >= maxLines {
		elided = append(elided, lines[len(lines)-closing:]...)
	}
	return elided
}

// numberedList renders a sorted entity list with 1-based indexes.
func numberedList(entities []string) []string {
	lines := make([]string, 0, len(entities))
	for i, entity := range entities {
		lines = append(lines, fmt.Sprintf("%4d. %s", i+1, entity))
	}
	return lines
}
