package main

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	sheets := []sheet{
		{Name: "Patients By Location", Rows: [][]string{
			{"Location", "Unique_Patients"},
			{"OKC", "3"},
			{"TOTAL", "3"},
		}},
		{Name: "Location x Payor", Rows: [][]string{
			{"Location", "Medicare", "Total"},
			{"OKC", "3", "3"},
		}},
	}

	if err := writeWorkbook(path, sheets); err != nil {
		t.Fatalf("writeWorkbook: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	names := f.GetSheetList()
	if len(names) != 2 || names[0] != "Patients By Location" || names[1] != "Location x Payor" {
		t.Fatalf("unexpected sheets: %v", names)
	}

	value, err := f.GetCellValue("Patients By Location", "B2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if value != "3" {
		t.Errorf("expected 3 in B2, got %q", value)
	}
}

func TestWriteWorkbookEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := writeWorkbook(path, nil); err != nil {
		t.Fatalf("expected nil error for no sheets, got %v", err)
	}
}

func TestWriteWorkbookLongSheetName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	long := "A Sheet Name Longer Than Thirty-One Characters"
	sheets := []sheet{{Name: long, Rows: [][]string{{"x"}}}}

	if err := writeWorkbook(path, sheets); err != nil {
		t.Fatalf("writeWorkbook: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	names := f.GetSheetList()
	if len(names) != 1 || len(names[0]) != 31 {
		t.Fatalf("expected one 31-char sheet name, got %v", names)
	}
}
