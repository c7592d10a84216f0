package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"
)

const (
	defaultTargetLocation = "ARDMORE"
	defaultTargetPayor    = "Medicare"
	defaultKeyword        = "telemedicine"
	defaultRatioLocation  = "OKC"
)

// runResult is every aggregation for one invocation, built once from the
// input snapshot and shared by the report renderers and the DB sink so
// all outputs agree on every number.
type runResult struct {
	InputFile    string
	GeneratedAt  time.Time
	TotalRows    int
	ByLocation   GroupedCounts
	ByPayor      GroupedCounts
	Matrix       NestedCounts
	Completeness Completeness
	Usage        KeywordUsage
	Ratios       map[string]*RatioStat
}

func buildRunResult(records []Record, inputPath string, generatedAt time.Time, keyword string, ratioLocation string) runResult {
	return runResult{
		InputFile:    inputPath,
		GeneratedAt:  generatedAt,
		TotalRows:    len(records),
		ByLocation:   groupByField(records, colLocation, colPatient),
		ByPayor:      groupByField(records, colPayor, colPatient),
		Matrix:       groupByTwoFields(records, colLocation, colPayor, colPatient),
		Completeness: analyzeCompleteness(records, colLocation, colPayor, colPatient),
		Usage:        surveyKeywordUsage(records, keyword),
		Ratios:       classifyRatios(records, colLocation, ratioLocation, keyword),
	}
}

func main() {
	inputPath := flag.String("input", "", "Path to visit export CSV")
	reportName := flag.String("report", "all", "Report to run: location, payor, location-payor, keyword, keyword-percentage, all")
	location := flag.String("location", defaultTargetLocation, "Target location for unique-client lists")
	payor := flag.String("payor", defaultTargetPayor, "Target payor for unique-client lists")
	keyword := flag.String("keyword", defaultKeyword, "Service keyword for usage and percentage reports")
	ratioLocation := flag.String("ratio-location", defaultRatioLocation, "Location scope for the percentage report")
	sortFlag := flag.String("sort", string(sortAlphabetical), "Sort mode: alphabetical or by-count")
	outDir := flag.String("out-dir", ".", "Directory for persisted report files")
	noFiles := flag.Bool("no-files", false, "Console output only; skip txt and csv files")
	xlsxPath := flag.String("xlsx", "", "Optional Excel workbook output path")
	configPath := flag.String("config", "", "Optional YAML config file")
	dbEnabled := flag.Bool("db", false, "Store this run in Postgres (requires DEMOGRAPHICS_REPORT_DB_URL or DATABASE_URL)")
	initDB := flag.Bool("init-db", false, "Initialize database schema without storing a run")
	dbSchema := flag.String("db-schema", "demographics_report", "Postgres schema for report tables")
	dbTag := flag.String("db-tag", "", "Optional label for this run")
	flag.Parse()

	setFlags := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	cfg, err := loadConfig(*configPath)
	if err != nil {
		exitWithError(err)
	}
	applyConfig(cfg, setFlags, location, payor, keyword, ratioLocation, sortFlag, outDir, dbSchema, dbTag)

	if *inputPath == "" {
		exitWithError(errors.New("--input is required"))
	}
	mode, err := parseSortMode(*sortFlag)
	if err != nil {
		exitWithError(err)
	}

	records, err := loadRecords(*inputPath)
	if err != nil {
		exitWithError(err)
	}

	generatedAt := time.Now()
	result := buildRunResult(records, *inputPath, generatedAt, *keyword, *ratioLocation)

	listPayor := ""
	if setFlags["payor"] {
		listPayor = *payor
	}

	var sheets []sheet
	emit := func(doc reportDoc) {
		emitDoc(doc, *outDir, *inputPath, generatedAt, !*noFiles)
		sheets = append(sheets, doc.Sheets...)
	}

	runLocation := func() {
		emit(buildGroupCountDoc(result.ByLocation, "Location", "UNIQUE PATIENT COUNT BY LOCATION REPORT", "location_summary", mode, generatedAt))
		if mode == sortAlphabetical {
			fmt.Println("\n\nSame data sorted by unique patient count:")
			emit(buildGroupCountDoc(result.ByLocation, "Location", "UNIQUE PATIENT COUNT BY LOCATION REPORT", "location_summary_by_count", sortByCount, generatedAt))
		}
		emit(buildGapsDoc(result.Completeness, gapsLocationFocus, generatedAt))
		emit(buildClientListDoc(records, *location, ""))
	}
	runPayor := func() {
		emit(buildGroupCountDoc(result.ByPayor, "Payor", "UNIQUE PATIENT COUNT BY PAYOR REPORT", "payor_summary", mode, generatedAt))
		if mode == sortAlphabetical {
			fmt.Println("\n\nSame data sorted by unique patient count:")
			emit(buildGroupCountDoc(result.ByPayor, "Payor", "UNIQUE PATIENT COUNT BY PAYOR REPORT", "payor_summary_by_count", sortByCount, generatedAt))
		}
		emit(buildGapsDoc(result.Completeness, gapsPayorFocus, generatedAt))
		emit(buildClientListDoc(records, "", *payor))
	}
	runMatrix := func() {
		emit(buildHierarchicalDoc(result.Matrix, mode))
		emit(buildMatrixDoc(result.Matrix, generatedAt))
		emit(buildGapsDoc(result.Completeness, gapsCombinedFocus, generatedAt))
		emit(buildClientListDoc(records, *location, listPayor))
	}
	runUsage := func() {
		emit(buildUsageDoc(result.Usage, *keyword, generatedAt))
		emit(buildUsageSummaryDoc(result.Usage, *keyword))
	}
	runRatio := func() {
		emit(buildRatioDoc(result.Ratios, *keyword, *ratioLocation, generatedAt))
		emit(buildRatioInsightsDoc(result.Ratios, *keyword, *ratioLocation))
	}

	switch *reportName {
	case "location":
		runLocation()
	case "payor":
		runPayor()
	case "location-payor":
		runMatrix()
	case "keyword":
		runUsage()
	case "keyword-percentage":
		runRatio()
	case "all":
		runLocation()
		runPayor()
		runMatrix()
		runUsage()
		runRatio()
	default:
		exitWithError(fmt.Errorf("unknown report: %s", *reportName))
	}

	if *xlsxPath != "" {
		if err := writeWorkbook(*xlsxPath, sheets); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing workbook: %v\n", err)
		} else {
			fmt.Printf("\nWorkbook written to: %s\n", *xlsxPath)
		}
	}

	if *dbEnabled || *initDB {
		dbURL := dbURLFromEnv()
		if dbURL == "" {
			exitWithError(errors.New("database URL missing; set DEMOGRAPHICS_REPORT_DB_URL or DATABASE_URL"))
		}
		dbCfg := DBConfig{URL: dbURL, Schema: *dbSchema, Tag: *dbTag}
		if *initDB {
			if err := initSchema(dbCfg); err != nil {
				exitWithError(err)
			}
			fmt.Println("\nDatabase schema initialized.")
		}
		if *dbEnabled {
			runID, err := storeRun(result, dbCfg)
			if err != nil {
				exitWithError(err)
			}
			fmt.Printf("\nStored report run in Postgres (run_id=%s)\n", runID)
		}
	}
}

// applyConfig fills in options from the config file for any flag the
// user did not set explicitly. Flags win over config, config over
// built-in defaults.
func applyConfig(cfg Config, setFlags map[string]bool, location, payor, keyword, ratioLocation, sortFlag, outDir, dbSchema, dbTag *string) {
	apply := func(name string, target *string, value string) {
		if !setFlags[name] && value != "" {
			*target = value
		}
	}
	apply("location", location, cfg.TargetLocation)
	apply("payor", payor, cfg.TargetPayor)
	apply("keyword", keyword, cfg.Keyword)
	apply("ratio-location", ratioLocation, cfg.RatioLocation)
	apply("sort", sortFlag, cfg.Sort)
	apply("out-dir", outDir, cfg.OutDir)
	apply("db-schema", dbSchema, cfg.DBSchema)
	apply("db-tag", dbTag, cfg.DBTag)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
