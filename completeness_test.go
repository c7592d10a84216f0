package main

import "testing"

func TestAnalyzeCompletenessPartitionsSumToTotal(t *testing.T) {
	records := []Record{
		visitRow("OKC", "Medicare", "Smith, A", ""),
		visitRow("OKC", "", "Reed, B", ""),
		visitRow("", "BCBS", "Lane, C", ""),
		visitRow("", "", "Hale, D", ""),
		visitRow("ARDMORE", "Medicare", "Smith, A", ""),
	}

	comp := analyzeCompleteness(records, colLocation, colPayor, colPatient)
	if comp.TotalRows != 5 {
		t.Fatalf("expected 5 total rows, got %d", comp.TotalRows)
	}
	sum := comp.BothRows + comp.FirstOnlyRows + comp.SecondOnlyRows + comp.NeitherRows
	if sum != comp.TotalRows {
		t.Fatalf("partitions sum to %d, want %d", sum, comp.TotalRows)
	}
	if comp.BothRows != 2 || comp.FirstOnlyRows != 1 || comp.SecondOnlyRows != 1 || comp.NeitherRows != 1 {
		t.Fatalf("unexpected partition counts: both=%d firstOnly=%d secondOnly=%d neither=%d",
			comp.BothRows, comp.FirstOnlyRows, comp.SecondOnlyRows, comp.NeitherRows)
	}
}

func TestAnalyzeCompletenessEmptyInput(t *testing.T) {
	comp := analyzeCompleteness(nil, colLocation, colPayor, colPatient)
	if comp.TotalRows != 0 {
		t.Fatalf("expected 0 total rows, got %d", comp.TotalRows)
	}
	if got := comp.Percent(comp.BothRows); got != 0 {
		t.Errorf("expected 0 percent on empty input, got %g", got)
	}
}

func TestAnalyzeCompletenessBlankIsAbsent(t *testing.T) {
	records := []Record{
		visitRow("  ", "Medicare", "Smith, A", ""),
		visitRow("OKC", "\t", "Reed, B", ""),
	}

	comp := analyzeCompleteness(records, colLocation, colPayor, colPatient)
	if comp.SecondOnlyRows != 1 {
		t.Errorf("whitespace location should count as absent, secondOnly=%d", comp.SecondOnlyRows)
	}
	if comp.FirstOnlyRows != 1 {
		t.Errorf("whitespace payor should count as absent, firstOnly=%d", comp.FirstOnlyRows)
	}
}

func TestAnalyzeCompletenessBreakdowns(t *testing.T) {
	records := []Record{
		visitRow("OKC", "", "Smith, A", ""),
		visitRow("OKC", "", "Smith, A", ""),
		visitRow("OKC", "", "Reed, B", ""),
		visitRow("ARDMORE", "", "Reed, B", ""),
		visitRow("", "Medicare", "Lane, C", ""),
		visitRow("OKC", "", "", ""),
	}

	comp := analyzeCompleteness(records, colLocation, colPayor, colPatient)
	if comp.FirstOnlyRows != 5 {
		t.Fatalf("expected 5 location-only rows, got %d", comp.FirstOnlyRows)
	}
	if got := len(comp.FirstOnlyPatients); got != 2 {
		t.Errorf("expected 2 distinct location-only patients, got %d", got)
	}
	if got := len(comp.FirstOnlyByValue["OKC"]); got != 2 {
		t.Errorf("expected 2 patients under OKC, got %d", got)
	}
	if got := len(comp.SecondOnlyByValue["Medicare"]); got != 1 {
		t.Errorf("expected 1 patient under Medicare, got %d", got)
	}
}

func TestCompletenessPercent(t *testing.T) {
	comp := Completeness{TotalRows: 4, BothRows: 2, FirstOnlyRows: 2}
	if got := comp.Percent(comp.BothRows); !floatEqual(got, 50.0) {
		t.Errorf("expected 50.0, got %g", got)
	}
	if got := comp.Percent(0); got != 0 {
		t.Errorf("expected 0, got %g", got)
	}
}
