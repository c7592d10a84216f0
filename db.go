package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type DBConfig struct {
	URL    string
	Schema string
	Tag    string
}

func dbURLFromEnv() string {
	if value := strings.TrimSpace(os.Getenv("DEMOGRAPHICS_REPORT_DB_URL")); value != "" {
		return value
	}
	return strings.TrimSpace(os.Getenv("DATABASE_URL"))
}

var validSchema = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func sanitizeSchema(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.New("db schema is required")
	}
	if !validSchema.MatchString(value) {
		return "", fmt.Errorf("invalid schema name: %s", value)
	}
	return value, nil
}

var dbBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// storeRun persists one report run: the run summary, every group count,
// the completeness partitions, and the per-patient ratio stats.
func storeRun(result runResult, cfg DBConfig) (string, error) {
	schema, err := sanitizeSchema(cfg.Schema)
	if err != nil {
		return "", err
	}

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return "", err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return "", err
	}

	if err := ensureSchema(ctx, db, schema); err != nil {
		return "", err
	}

	return storeRunTx(ctx, db, result, schema, cfg.Tag)
}

// initSchema creates the audit schema and tables without storing a run.
func initSchema(cfg DBConfig) error {
	schema, err := sanitizeSchema(cfg.Schema)
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return err
	}
	return ensureSchema(ctx, db, schema)
}

func storeRunTx(ctx context.Context, db *sql.DB, result runResult, schema string, tag string) (string, error) {
	runID := uuid.New()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query, args, err := runInsert(schema, runID, result, tag)
	if err != nil {
		return "", err
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return "", err
	}

	for _, insert := range groupCountInserts(schema, runID, result) {
		query, args, err = insert.ToSql()
		if err != nil {
			return "", err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return "", err
		}
	}

	query, args, err = completenessInsert(schema, runID, result.Completeness).ToSql()
	if err != nil {
		return "", err
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return "", err
	}

	for _, insert := range ratioInserts(schema, runID, result.Ratios) {
		query, args, err = insert.ToSql()
		if err != nil {
			return "", err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return "", err
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return runID.String(), nil
}

func runInsert(schema string, runID uuid.UUID, result runResult, tag string) (string, []interface{}, error) {
	return dbBuilder.
		Insert(schema + ".report_runs").
		Columns("id", "input_file", "generated_at", "total_rows",
			"location_excluded_rows", "payor_excluded_rows", "matrix_excluded_rows", "run_tag").
		Values(runID, result.InputFile, result.GeneratedAt, result.TotalRows,
			result.ByLocation.ExcludedRows, result.ByPayor.ExcludedRows, result.Matrix.ExcludedRows,
			nullString(tag)).
		ToSql()
}

func groupCountInserts(schema string, runID uuid.UUID, result runResult) []sq.InsertBuilder {
	var inserts []sq.InsertBuilder

	for _, row := range sortedCountRows(result.ByLocation.Counts(), sortAlphabetical) {
		inserts = append(inserts, dbBuilder.
			Insert(schema+".group_counts").
			Columns("id", "run_id", "grouping", "dimension", "inner_dimension", "unique_patients").
			Values(uuid.New(), runID, "location", row.Key, nil, row.Count))
	}
	for _, row := range sortedCountRows(result.ByPayor.Counts(), sortAlphabetical) {
		inserts = append(inserts, dbBuilder.
			Insert(schema+".group_counts").
			Columns("id", "run_id", "grouping", "dimension", "inner_dimension", "unique_patients").
			Values(uuid.New(), runID, "payor", row.Key, nil, row.Count))
	}

	outerValues := make([]string, 0, len(result.Matrix.Groups))
	for outer := range result.Matrix.Groups {
		outerValues = append(outerValues, outer)
	}
	sort.Strings(outerValues)
	for _, outer := range outerValues {
		innerCounts := make(map[string]int, len(result.Matrix.Groups[outer]))
		for inner, patients := range result.Matrix.Groups[outer] {
			innerCounts[inner] = len(patients)
		}
		for _, row := range sortedCountRows(innerCounts, sortAlphabetical) {
			inserts = append(inserts, dbBuilder.
				Insert(schema+".group_counts").
				Columns("id", "run_id", "grouping", "dimension", "inner_dimension", "unique_patients").
				Values(uuid.New(), runID, "location_payor", outer, row.Key, row.Count))
		}
	}
	return inserts
}

func completenessInsert(schema string, runID uuid.UUID, comp Completeness) sq.InsertBuilder {
	return dbBuilder.
		Insert(schema + ".completeness_summary").
		Columns("id", "run_id", "total_rows", "both_rows", "location_only_rows",
			"payor_only_rows", "neither_rows", "location_only_patients", "payor_only_patients").
		Values(uuid.New(), runID, comp.TotalRows, comp.BothRows, comp.FirstOnlyRows,
			comp.SecondOnlyRows, comp.NeitherRows, len(comp.FirstOnlyPatients), len(comp.SecondOnlyPatients))
}

func ratioInserts(schema string, runID uuid.UUID, stats map[string]*RatioStat) []sq.InsertBuilder {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	inserts := make([]sq.InsertBuilder, 0, len(names))
	for _, name := range names {
		stat := stats[name]
		inserts = append(inserts, dbBuilder.
			Insert(schema+".ratio_stats").
			Columns("id", "run_id", "patient", "total_visits", "matching_visits", "percentage", "tier").
			Values(uuid.New(), runID, name, stat.TotalVisits, stat.MatchingVisits,
				fmt.Sprintf("%.1f", stat.Percentage), stat.Tier))
	}
	return inserts
}

func ensureSchema(ctx context.Context, db *sql.DB, schema string) error {
	if _, err := db.ExecContext(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, schema)); err != nil {
		return err
	}

	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.report_runs (
			id uuid PRIMARY KEY,
			input_file text NOT NULL,
			generated_at timestamptz NOT NULL,
			total_rows integer NOT NULL,
			location_excluded_rows integer NOT NULL,
			payor_excluded_rows integer NOT NULL,
			matrix_excluded_rows integer NOT NULL,
			run_tag text,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.group_counts (
			id uuid PRIMARY KEY,
			run_id uuid NOT NULL REFERENCES %s.report_runs(id) ON DELETE CASCADE,
			grouping text NOT NULL,
			dimension text NOT NULL,
			inner_dimension text,
			unique_patients integer NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, schema, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.completeness_summary (
			id uuid PRIMARY KEY,
			run_id uuid NOT NULL REFERENCES %s.report_runs(id) ON DELETE CASCADE,
			total_rows integer NOT NULL,
			both_rows integer NOT NULL,
			location_only_rows integer NOT NULL,
			payor_only_rows integer NOT NULL,
			neither_rows integer NOT NULL,
			location_only_patients integer NOT NULL,
			payor_only_patients integer NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, schema, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.ratio_stats (
			id uuid PRIMARY KEY,
			run_id uuid NOT NULL REFERENCES %s.report_runs(id) ON DELETE CASCADE,
			patient text NOT NULL,
			total_visits integer NOT NULL,
			matching_visits integer NOT NULL,
			percentage numeric(5,1) NOT NULL,
			tier text NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, schema, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_group_counts_run_idx ON %s.group_counts (run_id)`, schema, schema))
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_ratio_stats_run_idx ON %s.ratio_stats (run_id)`, schema, schema))
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_ratio_stats_tier_idx ON %s.ratio_stats (tier)`, schema, schema))
	return err
}

func nullString(value string) sql.NullString {
	if strings.TrimSpace(value) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
