package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFieldValue(t *testing.T) {
	rec := Record{
		"Location": "  OKC  ",
		"Payor":    "   ",
		"Patient":  "Smith, A",
	}

	value, ok := fieldValue(rec, "Location")
	if !ok || value != "OKC" {
		t.Errorf("expected trimmed OKC, got %q (ok=%v)", value, ok)
	}
	if _, ok := fieldValue(rec, "Payor"); ok {
		t.Error("expected blank field to be absent")
	}
	if _, ok := fieldValue(rec, "Service"); ok {
		t.Error("expected missing field to be absent")
	}
}

func TestFieldMatches(t *testing.T) {
	rec := Record{"Location": " okc "}
	if !fieldMatches(rec, "Location", "OKC") {
		t.Error("expected case-insensitive match after trim")
	}
	if fieldMatches(rec, "Payor", "Medicare") {
		t.Error("expected absent field to never match")
	}
}

func TestLoadRecords(t *testing.T) {
	path := writeTempCSV(t, "Location,Payor,Patient\nOKC,Medicare,\"Smith, A\"\nARDMORE,,\"Reed, B\"\n")

	records, err := loadRecords(path)
	if err != nil {
		t.Fatalf("load records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["Patient"] != "Smith, A" {
		t.Errorf("expected quoted patient to survive, got %q", records[0]["Patient"])
	}
	if value, ok := fieldValue(records[1], "Payor"); ok {
		t.Errorf("expected empty payor cell to be absent, got %q", value)
	}
}

func TestLoadRecordsLatin1Fallback(t *testing.T) {
	// "José" with an ISO-8859-1 e-acute byte; invalid as UTF-8.
	data := append([]byte("Location,Patient\nOKC,Jos"), 0xE9)
	data = append(data, '\n')

	path := filepath.Join(t.TempDir(), "latin1.csv")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	records, err := loadRecords(path)
	if err != nil {
		t.Fatalf("load records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0]["Patient"] != "José" {
		t.Errorf("expected decoded name José, got %q", records[0]["Patient"])
	}
}

func TestLoadRecordsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.csv")
	if err := os.WriteFile(path, []byte("\uFEFFLocation,Patient\nOKC,\"Smith, A\"\n"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	records, err := loadRecords(path)
	if err != nil {
		t.Fatalf("load records: %v", err)
	}
	if _, ok := fieldValue(records[0], "Location"); !ok {
		t.Error("expected BOM-prefixed header to be recognized")
	}
}

func TestLoadRecordsMissingFile(t *testing.T) {
	if _, err := loadRecords(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing input file")
	}
}

func TestLoadRecordsShortRow(t *testing.T) {
	path := writeTempCSV(t, "Location,Payor,Patient\nOKC\n")

	records, err := loadRecords(path)
	if err != nil {
		t.Fatalf("load records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if _, ok := fieldValue(records[0], "Payor"); ok {
		t.Error("expected missing trailing cell to be absent")
	}
}
