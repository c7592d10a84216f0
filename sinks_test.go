package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestOutputPath(t *testing.T) {
	when := time.Date(2026, 3, 14, 9, 30, 5, 0, time.UTC)
	got := outputPath("/tmp/out", "/data/visits.csv", "patients_by_location", when, "txt")
	want := filepath.Join("/tmp/out", "visits_patients_by_location_20260314_093005.txt")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriteTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	if err := writeTextFile(path, []string{"line one", "line two"}); err != nil {
		t.Fatalf("writeTextFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "line one\nline two\n" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	rows := [][]string{
		{"Location", "Unique_Patients"},
		{"OKC, West", "3"},
	}
	if err := writeCSVFile(path, rows); err != nil {
		t.Fatalf("writeCSVFile: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()
	parsed, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(parsed) != 2 || parsed[1][0] != "OKC, West" {
		t.Fatalf("embedded comma lost: %v", parsed)
	}
}

func TestEmitDocNoFiles(t *testing.T) {
	dir := t.TempDir()
	doc := reportDoc{
		Console: []string{"hello"},
		Files:   []reportFile{{Slug: "s", Text: []string{"x"}, CSV: [][]string{{"a"}}}},
	}
	emitDoc(doc, dir, "visits.csv", time.Now(), false)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files with writeFiles=false, got %d", len(entries))
	}
}

func TestEmitDocSinkFailureDoesNotAbort(t *testing.T) {
	// A regular file where the output directory should be makes every
	// sink write fail; the call must still return normally.
	notADir := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(notADir, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	doc := reportDoc{
		Console: []string{"summary line"},
		Files: []reportFile{
			{Slug: "first", Text: []string{"a"}, CSV: [][]string{{"a"}}},
			{Slug: "second", Text: []string{"b"}},
		},
	}
	emitDoc(doc, notADir, "visits.csv", time.Now(), true)

	info, err := os.Stat(notADir)
	if err != nil || info.IsDir() {
		t.Fatal("blocking file should be untouched")
	}
}

func TestEmitDocWritesBothSinks(t *testing.T) {
	dir := t.TempDir()
	when := time.Date(2026, 3, 14, 9, 30, 5, 0, time.UTC)
	doc := reportDoc{
		Files: []reportFile{{
			Slug: "patients_by_location",
			Text: []string{"REPORT"},
			CSV:  [][]string{{"Location", "Unique_Patients"}, {"OKC", "3"}},
		}},
	}
	emitDoc(doc, dir, "visits.csv", when, true)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	joined := strings.Join(names, " ")
	if !strings.Contains(joined, "visits_patients_by_location_20260314_093005.txt") {
		t.Errorf("missing txt file, got %v", names)
	}
	if !strings.Contains(joined, "visits_patients_by_location_20260314_093005.csv") {
		t.Errorf("missing csv file, got %v", names)
	}
}
