package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempCSV(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "visits.csv")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestBuildRunResult(t *testing.T) {
	csvData := "Location,Payor,Patient,Service\n" +
		"OKC,Medicare,\"Smith, A\",Telemedicine Visit\n" +
		"OKC,Medicare,\"Smith, A\",Office Visit\n" +
		"OKC,Medicare,\"Smith, A\",Telemedicine Visit\n" +
		"ARDMORE,BCBS,\"Reed, B\",Office Visit\n" +
		",Medicare,\"Lane, C\",Office Visit\n"

	path := writeTempCSV(t, csvData)
	records, err := loadRecords(path)
	if err != nil {
		t.Fatalf("load records: %v", err)
	}

	result := buildRunResult(records, path, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), "telemedicine", "OKC")

	if result.TotalRows != 5 {
		t.Fatalf("expected 5 rows, got %d", result.TotalRows)
	}
	if got := result.ByLocation.Counts()["OKC"]; got != 1 {
		t.Errorf("expected 1 unique OKC patient, got %d", got)
	}
	if result.ByLocation.ExcludedRows != 1 {
		t.Errorf("expected 1 excluded row for location grouping, got %d", result.ByLocation.ExcludedRows)
	}
	if got := result.ByPayor.Counts()["Medicare"]; got != 2 {
		t.Errorf("expected 2 unique Medicare patients, got %d", got)
	}

	stat, ok := result.Ratios["Smith, A"]
	if !ok {
		t.Fatal("expected ratio stat for Smith, A")
	}
	if stat.TotalVisits != 3 || stat.MatchingVisits != 2 {
		t.Errorf("expected 3 total / 2 matching, got %d / %d", stat.TotalVisits, stat.MatchingVisits)
	}
	if stat.Tier != tierMedium {
		t.Errorf("expected medium tier, got %s", stat.Tier)
	}

	if result.Completeness.SecondOnlyRows != 1 {
		t.Errorf("expected 1 payor-only row, got %d", result.Completeness.SecondOnlyRows)
	}
}

func TestApplyConfig(t *testing.T) {
	location := "ARDMORE"
	payor := "Medicare"
	keyword := "telemedicine"
	ratioLocation := "OKC"
	sortFlag := "alphabetical"
	outDir := "."
	dbSchema := "demographics_report"
	dbTag := ""

	cfg := Config{
		TargetLocation: "TULSA",
		Sort:           "by-count",
		DBTag:          "weekly",
	}
	setFlags := map[string]bool{"sort": true}

	applyConfig(cfg, setFlags, &location, &payor, &keyword, &ratioLocation, &sortFlag, &outDir, &dbSchema, &dbTag)

	if location != "TULSA" {
		t.Errorf("expected config location to apply, got %s", location)
	}
	if sortFlag != "alphabetical" {
		t.Errorf("expected explicit flag to win over config, got %s", sortFlag)
	}
	if dbTag != "weekly" {
		t.Errorf("expected config tag to apply, got %s", dbTag)
	}
	if payor != "Medicare" {
		t.Errorf("expected default payor to survive empty config, got %s", payor)
	}
}

func floatEqual(a float64, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 0.01
}
