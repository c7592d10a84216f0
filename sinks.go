package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// writeTextFile persists report lines as a flat-text document.
func writeTextFile(path string, lines []string) error {
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}

// writeCSVFile persists delimited rows, header first.
func writeCSVFile(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// outputPath builds the timestamped filename for one persisted output:
// <input-base>_<slug>_<YYYYMMDD_HHMMSS>.<ext> inside outDir.
func outputPath(outDir string, inputPath string, slug string, generatedAt time.Time, ext string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	name := fmt.Sprintf("%s_%s_%s.%s", base, slug, generatedAt.Format("20060102_150405"), ext)
	return filepath.Join(outDir, name)
}

// emitDoc prints a report's interactive view and persists its files.
// Each sink failure is reported and isolated: a failed text file does not
// stop the CSV, and no sink failure aborts the run.
func emitDoc(doc reportDoc, outDir string, inputPath string, generatedAt time.Time, writeFiles bool) {
	for _, line := range doc.Console {
		fmt.Println(line)
	}
	if !writeFiles {
		return
	}
	for _, file := range doc.Files {
		if len(file.Text) > 0 {
			path := outputPath(outDir, inputPath, file.Slug, generatedAt, "txt")
			if err := writeTextFile(path, file.Text); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing txt file: %v\n", err)
			} else {
				fmt.Printf("\nReport written to: %s\n", path)
			}
		}
		if len(file.CSV) > 0 {
			path := outputPath(outDir, inputPath, file.Slug, generatedAt, "csv")
			if err := writeCSVFile(path, file.CSV); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing csv file: %v\n", err)
			} else {
				fmt.Printf("CSV report written to: %s\n", path)
			}
		}
	}
}
