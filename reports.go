package main

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// reportFile is one persisted output: flat text, delimited rows, or both.
type reportFile struct {
	Slug string
	Text []string
	CSV  [][]string
}

type sheet struct {
	Name string
	Rows [][]string
}

// reportDoc bundles every representation of one report. Console honors
// the display budgets; files always carry full data.
type reportDoc struct {
	Console []string
	Files   []reportFile
	Sheets  []sheet
}

// buildGroupCountDoc renders a one-dimension unique-patient count in one
// sort order. An empty grouping produces the explicit no-data report.
func buildGroupCountDoc(grouped GroupedCounts, keyHeader string, title string, slug string, mode sortMode, generatedAt time.Time) reportDoc {
	if len(grouped.Groups) == 0 {
		return reportDoc{Console: []string{"", "No client data found."}}
	}

	rows := sortedCountRows(grouped.Counts(), mode)
	table := countTable(keyHeader, rows)

	sheetTitle := "Patients By " + keyHeader
	if mode == sortByCount {
		sheetTitle += " By Count"
	}
	doc := reportDoc{
		Console: append([]string{""}, countReportLines(title, keyHeader, table, mode, generatedAt, false)...),
		Files: []reportFile{{
			Slug: slug,
			Text: countReportLines(title, keyHeader, table, mode, generatedAt, true),
			CSV:  table.CSV(),
		}},
		Sheets: []sheet{{Name: sheetTitle, Rows: table.CSV()}},
	}
	if grouped.ExcludedRows > 0 {
		doc.Console = append(doc.Console, fmt.Sprintf("Rows excluded for missing fields: %d", grouped.ExcludedRows))
	}
	return doc
}

// buildHierarchicalDoc renders the location/payor nesting for interactive
// display: locations with per-payor unique-patient counts and a grand
// total. Payors within a location sort by count descending, name
// ascending on ties.
func buildHierarchicalDoc(nested NestedCounts, mode sortMode) reportDoc {
	if len(nested.Groups) == 0 {
		return reportDoc{Console: []string{"", "No client data found."}}
	}

	totals := make(map[string]int, len(nested.Groups))
	for outer := range nested.Groups {
		totals[outer] = nested.OuterTotal(outer)
	}
	outerRows := sortedCountRows(totals, mode)

	lines := []string{"", banner(70), "UNIQUE PATIENT COUNT BY LOCATION AND PAYOR REPORT", banner(70)}

	grandTotal := 0
	for _, outer := range outerRows {
		lines = append(lines,
			"",
			fmt.Sprintf("%s (Total: %d unique patients)", outer.Key, outer.Count),
			rule(60),
			fmt.Sprintf("  %-35s %20s", "Payor", "Unique Patients"),
			"  "+rule(55),
		)
		innerCounts := make(map[string]int, len(nested.Groups[outer.Key]))
		for inner, patients := range nested.Groups[outer.Key] {
			innerCounts[inner] = len(patients)
		}
		for _, inner := range sortedCountRows(innerCounts, sortByCount) {
			lines = append(lines, fmt.Sprintf("  %-35s %20d", inner.Key, inner.Count))
		}
		grandTotal += outer.Count
	}

	lines = append(lines,
		"",
		banner(70),
		fmt.Sprintf("%-45s %20d", "GRAND TOTAL (All Locations)", grandTotal),
		banner(70),
	)

	doc := reportDoc{Console: lines}
	if nested.ExcludedRows > 0 {
		doc.Console = append(doc.Console, fmt.Sprintf("Rows excluded for missing fields: %d", nested.ExcludedRows))
	}
	return doc
}

// buildMatrixDoc renders the location-by-payor summary matrix. Console
// shows at most the first five payor columns; the flat-text and CSV files
// carry the full matrix with its totals row and column.
func buildMatrixDoc(nested NestedCounts, generatedAt time.Time) reportDoc {
	if len(nested.Groups) == 0 {
		return reportDoc{Console: []string{"", "No client data found."}}
	}

	table := matrixTable(nested, "Location")
	title := "SUMMARY MATRIX: Unique Patients by Location and Payor"

	return reportDoc{
		Console: matrixConsoleLines(table, title),
		Files: []reportFile{{
			Slug: "location_payor_summary",
			Text: matrixFileLines(table, title, generatedAt),
			CSV:  table.CSV(),
		}},
		Sheets: []sheet{{Name: "Location x Payor", Rows: table.CSV()}},
	}
}

// gapsTable is the tabular form of a completeness analysis: one row per
// presence partition plus a totals row. Partition counts are row counts;
// the patient column carries distinct patients for the partial
// partitions.
func gapsTable(comp Completeness) ReportTable {
	table := ReportTable{
		Columns: []string{"Partition", "Rows", "Percent", "Unique_Patients"},
		Rows: [][]string{
			{"both_present", fmt.Sprintf("%d", comp.BothRows), fmt.Sprintf("%.1f", comp.Percent(comp.BothRows)), ""},
			{"payor_only", fmt.Sprintf("%d", comp.SecondOnlyRows), fmt.Sprintf("%.1f", comp.Percent(comp.SecondOnlyRows)), fmt.Sprintf("%d", len(comp.SecondOnlyPatients))},
			{"location_only", fmt.Sprintf("%d", comp.FirstOnlyRows), fmt.Sprintf("%.1f", comp.Percent(comp.FirstOnlyRows)), fmt.Sprintf("%d", len(comp.FirstOnlyPatients))},
			{"neither", fmt.Sprintf("%d", comp.NeitherRows), fmt.Sprintf("%.1f", comp.Percent(comp.NeitherRows)), ""},
		},
		Totals: []string{"TOTAL", fmt.Sprintf("%d", comp.TotalRows), fmt.Sprintf("%.1f", comp.Percent(comp.TotalRows)), ""},
	}
	return table
}

func gapsSummaryLines(comp Completeness) []string {
	return []string{
		fmt.Sprintf("Total Records: %d", comp.TotalRows),
		fmt.Sprintf("Records with both Location and Payor: %d (%s)", comp.BothRows, formatPercent(comp.Percent(comp.BothRows))),
		fmt.Sprintf("Records with Payor but NO Location: %d (%s)", comp.SecondOnlyRows, formatPercent(comp.Percent(comp.SecondOnlyRows))),
		fmt.Sprintf("Records with Location but NO Payor: %d (%s)", comp.FirstOnlyRows, formatPercent(comp.Percent(comp.FirstOnlyRows))),
		fmt.Sprintf("Records with neither: %d (%s)", comp.NeitherRows, formatPercent(comp.Percent(comp.NeitherRows))),
	}
}

type gapsFocus string

const (
	gapsLocationFocus gapsFocus = "location"
	gapsPayorFocus    gapsFocus = "payor"
	gapsCombinedFocus gapsFocus = "combined"
)

// buildGapsDoc renders the data-quality analysis in one of three flavors:
// location focus lists patients missing a location, payor focus lists
// patients missing a payor, and the combined flavor breaks both partial
// partitions down by the value that is present.
func buildGapsDoc(comp Completeness, focus gapsFocus, generatedAt time.Time) reportDoc {
	summary := gapsSummaryLines(comp)
	table := gapsTable(comp)

	var consoleTitle, fileTitle, slug string
	switch focus {
	case gapsPayorFocus:
		consoleTitle = "DATA QUALITY ANALYSIS - PAYOR REPORT"
		fileTitle = "DATA QUALITY ANALYSIS - PAYOR FOCUS"
		slug = "data_gaps_payor"
	case gapsCombinedFocus:
		consoleTitle = "DATA QUALITY ANALYSIS - COMPREHENSIVE REPORT"
		fileTitle = "DATA QUALITY ANALYSIS - LOCATION AND PAYOR COMBINED"
		slug = "data_gaps_combined"
	default:
		consoleTitle = "DATA QUALITY ANALYSIS - LOCATION REPORT"
		fileTitle = "DATA QUALITY ANALYSIS - LOCATION FOCUS"
		slug = "data_gaps_location"
	}

	width := 50
	if focus == gapsCombinedFocus {
		width = 70
	}
	console := append([]string{"", banner(width), consoleTitle, banner(width)}, summary...)

	text := []string{
		fileTitle,
		fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02 15:04:05")),
		banner(70),
		"",
		"SUMMARY",
		rule(50),
	}
	text = append(text, summary...)

	switch focus {
	case gapsLocationFocus:
		missing := sortedKeys(comp.SecondOnlyPatients)
		if len(missing) > 0 {
			console = append(console, "", fmt.Sprintf("Unique patients with Payor but no Location: %d", len(missing)))
			if len(missing) <= 10 {
				for _, patient := range missing {
					console = append(console, fmt.Sprintf("  - %s", patient))
				}
			}
			text = append(text, "", "PATIENTS WITH PAYOR BUT NO LOCATION", rule(50))
			text = append(text, missing...)
		}
	case gapsPayorFocus:
		missing := sortedKeys(comp.FirstOnlyPatients)
		if len(missing) > 0 {
			console = append(console, "", fmt.Sprintf("Unique patients with Location but no Payor: %d", len(missing)))
			if len(missing) <= 10 {
				for _, patient := range missing {
					console = append(console, fmt.Sprintf("  - %s", patient))
				}
			}
			text = append(text, "", "PATIENTS WITH LOCATION BUT NO PAYOR", rule(50))
			text = append(text, missing...)
		}
	case gapsCombinedFocus:
		payorRows := sortedSetRows(comp.SecondOnlyByValue)
		if len(payorRows) > 0 {
			console = append(console, "", "Payors with patients missing location data:")
			for i, row := range payorRows {
				if i >= 5 {
					break
				}
				console = append(console, fmt.Sprintf("  %s: %d patients", row.Key, row.Count))
			}
			text = append(text, "", "BREAKDOWN: PAYORS WITH PATIENTS MISSING LOCATION", rule(50))
			text = append(text, breakdownLines(comp.SecondOnlyByValue, payorRows)...)
		}
		locationRows := sortedSetRows(comp.FirstOnlyByValue)
		if len(locationRows) > 0 {
			console = append(console, "", "Locations with patients missing payor data:")
			for i, row := range locationRows {
				if i >= 5 {
					break
				}
				console = append(console, fmt.Sprintf("  %s: %d patients", row.Key, row.Count))
			}
			text = append(text, "", "BREAKDOWN: LOCATIONS WITH PATIENTS MISSING PAYOR", rule(50))
			text = append(text, breakdownLines(comp.FirstOnlyByValue, locationRows)...)
		}
	}

	console = append(console, banner(width))

	return reportDoc{
		Console: console,
		Files:   []reportFile{{Slug: slug, Text: text, CSV: table.CSV()}},
		Sheets:  []sheet{{Name: "Data Gaps " + titleWord(string(focus)), Rows: table.CSV()}},
	}
}

func breakdownLines(byValue map[string]map[string]struct{}, rows []countRow) []string {
	var lines []string
	for _, row := range rows {
		lines = append(lines, "", fmt.Sprintf("%s (%d patients):", row.Key, row.Count))
		for _, patient := range sortedKeys(byValue[row.Key]) {
			lines = append(lines, fmt.Sprintf("  - %s", patient))
		}
	}
	return lines
}

// buildClientListDoc renders the deduplicated patient roster matching the
// given predicates, as a numbered interactive list.
func buildClientListDoc(records []Record, location string, payor string) reportDoc {
	predicates := map[string]string{}
	heading := "UNIQUE CLIENTS"
	switch {
	case location != "" && payor != "":
		predicates[colLocation] = location
		predicates[colPayor] = payor
		heading = fmt.Sprintf("UNIQUE CLIENTS FROM %s - %s", strings.ToUpper(location), strings.ToUpper(payor))
	case location != "":
		predicates[colLocation] = location
		heading = fmt.Sprintf("UNIQUE CLIENTS FROM %s - ALL PAYORS", strings.ToUpper(location))
	case payor != "":
		predicates[colPayor] = payor
		heading = fmt.Sprintf("UNIQUE CLIENTS/PATIENTS FROM %s", strings.ToUpper(payor))
	}

	patients := filterEntities(records, predicates, colPatient)

	lines := []string{"", "", banner(50), heading, banner(50)}
	if len(patients) == 0 {
		lines = append(lines, "No patients found with specified criteria.")
	} else {
		lines = append(lines, numberedList(patients)...)
	}
	lines = append(lines,
		rule(50),
		fmt.Sprintf("Total unique clients: %d", len(patients)),
		banner(50),
	)
	return reportDoc{Console: lines}
}

// buildUsageDoc renders the keyword usage survey: matching-row counts by
// location and payor, and the per-patient detail. Console output caps the
// location/payor columns at the display budget and the whole report at
// fifty lines; the files carry everything in full.
func buildUsageDoc(usage KeywordUsage, keyword string, generatedAt time.Time) reportDoc {
	upperKeyword := strings.ToUpper(keyword)

	lines := []string{
		banner(70),
		fmt.Sprintf("%s SERVICE REPORT", upperKeyword),
		fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02 15:04:05")),
		banner(70),
		"",
		fmt.Sprintf("TOTAL %s SERVICES: %d", upperKeyword, usage.TotalMatches),
		fmt.Sprintf("UNIQUE PATIENTS USING %s: %d", upperKeyword, len(usage.Patients)),
	}

	locationTable := ReportTable{Columns: []string{"Location", "Matching_Visits"}}
	for _, row := range sortedCountRows(usage.ByLocation, sortByCount) {
		locationTable.Rows = append(locationTable.Rows, []string{row.Key, fmt.Sprintf("%d", row.Count)})
	}
	payorTable := ReportTable{Columns: []string{"Payor", "Matching_Visits"}}
	for _, row := range sortedCountRows(usage.ByPayor, sortByCount) {
		payorTable.Rows = append(payorTable.Rows, []string{row.Key, fmt.Sprintf("%d", row.Count)})
	}

	lines = append(lines, "", rule(50), fmt.Sprintf("%s BY LOCATION", upperKeyword), rule(50),
		fmt.Sprintf("%-30s %15s", "Location", "Count"), rule(50))
	for _, row := range locationTable.Rows {
		lines = append(lines, fmt.Sprintf("%-30s %15s", row[0], row[1]))
	}

	lines = append(lines, "", rule(50), fmt.Sprintf("%s BY PAYOR", upperKeyword), rule(50),
		fmt.Sprintf("%-30s %15s", "Payor", "Count"), rule(50))
	for _, row := range payorTable.Rows {
		lines = append(lines, fmt.Sprintf("%-30s %15s", row[0], row[1]))
	}

	detail := usageDetailTable(usage)

	lines = append(lines, "", rule(50), fmt.Sprintf("PATIENT %s USAGE DETAILS", upperKeyword), rule(50),
		fmt.Sprintf("%-25s %8s %-20s %-20s", "Patient", "Count", "Location(s)", "Payor(s)"), rule(70))

	// Console truncates the set columns to the display budget; the
	// persisted text carries the full values.
	consoleLines := append([]string{}, lines...)
	fileLines := lines
	for _, row := range detail.Rows {
		consoleLines = append(consoleLines, fmt.Sprintf("%-25s %8s %-20s %-20s",
			row[0], row[1], truncateDisplay(row[2], 20), truncateDisplay(row[3], 20)))
		fileLines = append(fileLines, fmt.Sprintf("%-25s %8s %-20s %-20s",
			row[0], row[1], row[2], row[3]))
	}
	consoleLines = append(consoleLines, rule(70), banner(70))
	fileLines = append(fileLines, rule(70), banner(70))

	return reportDoc{
		Console: elideLines(consoleLines, maxUsageConsoleLines, 0),
		Files: []reportFile{{
			Slug: slugify(keyword) + "_usage",
			Text: fileLines,
			CSV:  detail.CSV(),
		}},
		Sheets: []sheet{
			{Name: "Usage By Location", Rows: locationTable.CSV()},
			{Name: "Usage By Payor", Rows: payorTable.CSV()},
			{Name: "Usage Patients", Rows: detail.CSV()},
		},
	}
}

// usageDetailTable orders patients by matching-visit count descending,
// name ascending on ties. The Locations and Payors cells carry the full
// comma-joined sets; display truncation happens only at render time.
func usageDetailTable(usage KeywordUsage) ReportTable {
	type patientRow struct {
		Name   string
		Detail *PatientUsage
	}
	rows := make([]patientRow, 0, len(usage.Patients))
	for name, detail := range usage.Patients {
		rows = append(rows, patientRow{Name: name, Detail: detail})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Detail.Count != rows[j].Detail.Count {
			return rows[i].Detail.Count > rows[j].Detail.Count
		}
		return rows[i].Name < rows[j].Name
	})

	table := ReportTable{Columns: []string{"Patient", "Matching_Visits", "Locations", "Payors"}}
	for _, row := range rows {
		table.Rows = append(table.Rows, []string{
			row.Name,
			fmt.Sprintf("%d", row.Detail.Count),
			strings.Join(sortedKeys(row.Detail.Locations), ", "),
			strings.Join(sortedKeys(row.Detail.Payors), ", "),
		})
	}
	return table
}

// buildUsageSummaryDoc is the short interactive companion to the usage
// survey: totals, the per-patient average, and the top five users.
func buildUsageSummaryDoc(usage KeywordUsage, keyword string) reportDoc {
	upperKeyword := strings.ToUpper(keyword)
	lines := []string{
		"",
		banner(50),
		fmt.Sprintf("%s SERVICE SUMMARY", upperKeyword),
		banner(50),
		fmt.Sprintf("Total %s Services: %d", titleWord(keyword), usage.TotalMatches),
		fmt.Sprintf("Unique Patients: %d", len(usage.Patients)),
	}

	if len(usage.Patients) > 0 {
		average := float64(usage.TotalMatches) / float64(len(usage.Patients))
		lines = append(lines, fmt.Sprintf("Average Services per Patient: %.1f", average))

		counts := make(map[string]int, len(usage.Patients))
		for name, detail := range usage.Patients {
			counts[name] = detail.Count
		}
		lines = append(lines, "", "Top 5 Users:", rule(50))
		for i, row := range sortedCountRows(counts, sortByCount) {
			if i >= 5 {
				break
			}
			lines = append(lines, fmt.Sprintf("  %s: %d services", row.Key, row.Count))
		}
	}
	lines = append(lines, banner(50))
	return reportDoc{Console: lines}
}

// buildRatioDoc renders the per-patient ratio report for the scoped
// location: overall summary, tier distribution, and the detail table
// sorted by percentage descending, matching visits descending, then
// name. Console output is capped at forty lines with the closing totals
// kept visible.
func buildRatioDoc(stats map[string]*RatioStat, keyword string, location string, generatedAt time.Time) reportDoc {
	upperKeyword := strings.ToUpper(keyword)
	upperLocation := strings.ToUpper(location)

	if len(stats) == 0 {
		return reportDoc{Console: []string{
			"",
			fmt.Sprintf("No patients found at %s location.", upperLocation),
			fmt.Sprintf("Please check that '%s' exists in your Location column.", location),
		}}
	}

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := stats[names[i]], stats[names[j]]
		if a.Percentage != b.Percentage {
			return a.Percentage > b.Percentage
		}
		if a.MatchingVisits != b.MatchingVisits {
			return a.MatchingVisits > b.MatchingVisits
		}
		return names[i] < names[j]
	})

	totalVisits := 0
	totalMatching := 0
	tierCounts := map[string]int{}
	for _, stat := range stats {
		totalVisits += stat.TotalVisits
		totalMatching += stat.MatchingVisits
		tierCounts[stat.Tier]++
	}
	overall := percent(totalMatching, totalVisits)

	lines := []string{
		banner(80),
		fmt.Sprintf("%s USAGE PERCENTAGE REPORT - %s LOCATION", upperKeyword, upperLocation),
		fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02 15:04:05")),
		banner(80),
		"",
		fmt.Sprintf("Total %s Patients: %d", upperLocation, len(stats)),
		fmt.Sprintf("Total %s Visits: %d", upperLocation, totalVisits),
		fmt.Sprintf("Total %s Visits: %d", titleWord(keyword), totalMatching),
		fmt.Sprintf("Overall %s Usage: %s", titleWord(keyword), formatPercent(overall)),
		"",
		"Usage Distribution:",
		fmt.Sprintf("  High (>=75%%): %d patients", tierCounts[tierHigh]),
		fmt.Sprintf("  Medium (25-74%%): %d patients", tierCounts[tierMedium]),
		fmt.Sprintf("  Low (1-24%%): %d patients", tierCounts[tierLow]),
		fmt.Sprintf("  None (0%%): %d patients", tierCounts[tierNone]),
		"",
		rule(80),
		"PATIENT DETAILS",
		rule(80),
		fmt.Sprintf("%-30s %8s %8.8s %12s %-20s", "Patient", "Total", titleWord(keyword), "Percentage", "Payors"),
		rule(80),
	}

	table := ReportTable{Columns: []string{"Patient", "Total_Visits", "Matching_Visits", "Percentage", "Tier", "Payors"}}
	consoleLines := append([]string{}, lines...)
	fileLines := lines
	for _, name := range names {
		stat := stats[name]
		payors := strings.Join(sortedKeys(stat.Payors), ", ")
		consoleLines = append(consoleLines, fmt.Sprintf("%-30s %8d %8d %11.1f%% %-20s",
			name, stat.TotalVisits, stat.MatchingVisits, stat.Percentage, truncateDisplay(payors, 20)))
		fileLines = append(fileLines, fmt.Sprintf("%-30s %8d %8d %11.1f%% %-20s",
			name, stat.TotalVisits, stat.MatchingVisits, stat.Percentage, payors))
		table.Rows = append(table.Rows, []string{
			name,
			fmt.Sprintf("%d", stat.TotalVisits),
			fmt.Sprintf("%d", stat.MatchingVisits),
			fmt.Sprintf("%.1f", stat.Percentage),
			stat.Tier,
			payors,
		})
	}
	consoleLines = append(consoleLines, rule(80), banner(80))
	fileLines = append(fileLines, rule(80), banner(80))

	return reportDoc{
		Console: elideLines(consoleLines, maxRatioConsoleLines, 2),
		Files: []reportFile{{
			Slug: slugify(location) + "_" + slugify(keyword) + "_percentage",
			Text: fileLines,
			CSV:  table.CSV(),
		}},
		Sheets: []sheet{{Name: "Usage Percentage", Rows: table.CSV()}},
	}
}

// buildRatioInsightsDoc is the interactive companion to the ratio report:
// exclusive users and high-volume users, five of each.
func buildRatioInsightsDoc(stats map[string]*RatioStat, keyword string, location string) reportDoc {
	if len(stats) == 0 {
		return reportDoc{Console: []string{"", fmt.Sprintf("No %s patients found in the data.", strings.ToUpper(location))}}
	}

	lines := []string{
		"",
		banner(50),
		fmt.Sprintf("%s USAGE INSIGHTS - %s", strings.ToUpper(keyword), strings.ToUpper(location)),
		banner(50),
	}

	var exclusive []string
	for name, stat := range stats {
		if stat.Percentage == 100 && stat.TotalVisits > 0 {
			exclusive = append(exclusive, name)
		}
	}
	sort.Strings(exclusive)
	if len(exclusive) > 0 {
		lines = append(lines, "", fmt.Sprintf("Patients using ONLY %s: %d", keyword, len(exclusive)))
		for i, name := range exclusive {
			if i >= 5 {
				break
			}
			visits := stats[name].TotalVisits
			plural := ""
			if visits > 1 {
				plural = "s"
			}
			lines = append(lines, fmt.Sprintf("  - %s: %d visit%s", name, visits, plural))
		}
	}

	highVolume := map[string]int{}
	for name, stat := range stats {
		if stat.MatchingVisits >= 5 {
			highVolume[name] = stat.MatchingVisits
		}
	}
	if len(highVolume) > 0 {
		lines = append(lines, "", fmt.Sprintf("High-volume %s users (>=5 matching visits):", keyword))
		for i, row := range sortedCountRows(highVolume, sortByCount) {
			if i >= 5 {
				break
			}
			lines = append(lines, fmt.Sprintf("  - %s: %d %s visits (%s)",
				row.Key, row.Count, keyword, formatPercent(stats[row.Key].Percentage)))
		}
	}

	lines = append(lines, banner(50))
	return reportDoc{Console: lines}
}

func titleWord(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}

func slugify(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = strings.ReplaceAll(value, " ", "_")
	return value
}
