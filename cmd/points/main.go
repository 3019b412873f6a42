// Command points runs one batch computation: it reads transaction records
// from a file or Postgres, recomputes every account's points up to the
// configured cutoff, writes the leaderboard files atomically, and optionally
// publishes the tables to ClickHouse.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"veswap-points/internal/config"
	"veswap-points/internal/domain"
	"veswap-points/internal/engine"
	"veswap-points/internal/ingest"
	"veswap-points/internal/observability"
	"veswap-points/internal/reporting"
	"veswap-points/internal/storage"
	chstore "veswap-points/internal/storage/clickhouse"
	"veswap-points/internal/storage/migrations"
	pgstore "veswap-points/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "", "Path to TOML config file (required)")
	inputPath := flag.String("input", "", "Record source file, .json or .csv")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string for the record store")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string for publishing tables")
	outputDir := flag.String("output-dir", "out", "Output directory for generated files")
	resume := flag.Bool("resume", false, "Resume file ingestion from the persisted cursor (requires --postgres-dsn)")
	metricsAddr := flag.String("metrics-addr", "", "Optional address to serve Prometheus metrics during the run")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --config is required")
		os.Exit(1)
	}
	if *inputPath == "" && *postgresDSN == "" {
		fmt.Fprintln(os.Stderr, "Error: one of --input or --postgres-dsn is required")
		os.Exit(1)
	}
	if *resume && (*inputPath == "" || *postgresDSN == "") {
		fmt.Fprintln(os.Stderr, "Error: --resume requires both --input and --postgres-dsn")
		os.Exit(1)
	}

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	metrics := observability.NewMetrics("")
	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr, log)
	}

	records, skipped, err := loadRecords(ctx, cfg, log, *inputPath, *postgresDSN, *resume)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading records: %v\n", err)
		os.Exit(1)
	}
	metrics.RecordsIngested.Add(float64(len(records)))
	if skipped > 0 {
		metrics.MalformedSkipped.WithLabelValues("malformed").Add(float64(skipped))
	}

	eng, err := engine.New(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating engine: %v\n", err)
		os.Exit(1)
	}
	result, err := eng.WithMetrics(metrics).Run(records)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running batch: %v\n", err)
		os.Exit(1)
	}

	if err := writeOutputs(*outputDir, cfg, result, skipped); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing outputs: %v\n", err)
		os.Exit(1)
	}

	if *clickhouseDSN != "" {
		if err := publish(ctx, *clickhouseDSN, result); err != nil {
			fmt.Fprintf(os.Stderr, "Error publishing tables: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("Points batch complete:")
	fmt.Printf("  - %s/%s\n", *outputDir, reporting.FileTotalCSV)
	fmt.Printf("  - %s/%s\n", *outputDir, reporting.FileWeeklyCSV)
	fmt.Printf("  - %s/%s\n", *outputDir, reporting.FileAccountLogCSV)
	fmt.Printf("  - %s/%s\n", *outputDir, reporting.FileTablesJSON)
	fmt.Printf("  - %s/%s\n", *outputDir, reporting.FileRunReport)
}

// loadRecords assembles the full record set for the run. With a Postgres DSN
// the store is the source of truth: file input (if any) is appended first,
// advancing the ingest cursor, then the complete stream is read back.
func loadRecords(ctx context.Context, cfg config.Config, log *zap.Logger, inputPath, postgresDSN string, resume bool) ([]domain.TransactionRecord, int, error) {
	reader := ingest.NewReader(cfg, log)

	var fileRecords []domain.TransactionRecord
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return nil, 0, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()

		switch strings.ToLower(filepath.Ext(inputPath)) {
		case ".json":
			fileRecords, err = reader.ReadJSON(f)
		case ".csv":
			fileRecords, err = reader.ReadCSV(f)
		default:
			err = fmt.Errorf("unsupported input extension %q", filepath.Ext(inputPath))
		}
		if err != nil {
			return nil, 0, err
		}
	}

	if postgresDSN == "" {
		return fileRecords, reader.Skipped(), nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, 0, err
	}
	defer pool.Close()
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		return nil, 0, err
	}

	recordStore := pgstore.NewRecordStore(pool)
	if inputPath != "" {
		toInsert := fileRecords
		source := "file:" + filepath.Base(inputPath)
		cursorStore := pgstore.NewCursorStore(pool)

		if resume {
			cursor, err := cursorStore.Get(ctx, source)
			if err != nil && !errors.Is(err, storage.ErrNotFound) {
				return nil, 0, err
			}
			toInsert = nil
			for _, rec := range fileRecords {
				if rec.Seq >= cursor {
					toInsert = append(toInsert, rec)
				}
			}
		}
		if len(toInsert) > 0 {
			if err := recordStore.InsertBulk(ctx, toInsert); err != nil {
				return nil, 0, fmt.Errorf("store records: %w", err)
			}
		}
		if n := len(fileRecords); n > 0 {
			if err := cursorStore.Set(ctx, source, fileRecords[n-1].Seq+1); err != nil {
				return nil, 0, err
			}
		}
	}

	records, err := recordStore.GetAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	return records, reader.Skipped(), nil
}

// writeOutputs renders every output format and publishes the files
// atomically.
func writeOutputs(outputDir string, cfg config.Config, result *engine.Result, skipped int) error {
	tablesJSON, err := reporting.RenderJSON(result.Tables)
	if err != nil {
		return err
	}

	info := reporting.RunInfo{
		GeneratedAt:     time.Now().UTC(),
		Strategy:        result.Summary.Strategy,
		EndTime:         cfg.EndTime,
		Records:         result.Summary.Records,
		SkippedRecords:  skipped,
		LiquidityPoints: result.Summary.LiquidityPoints,
		SwapPoints:      result.Summary.SwapPoints,
		CappedPoints:    result.Summary.CappedPoints,
	}

	return reporting.WriteFiles(outputDir, map[string]string{
		reporting.FileTotalCSV:      reporting.RenderTotalCSV(result.Tables),
		reporting.FileWeeklyCSV:     reporting.RenderWeeklyCSV(result.Tables),
		reporting.FileAccountLogCSV: reporting.RenderAccountLogCSV(result.Tables),
		reporting.FileTablesJSON:    tablesJSON,
		reporting.FileRunReport:     reporting.RenderMarkdown(info, result.Tables),
	})
}

func publish(ctx context.Context, dsn string, result *engine.Result) error {
	conn, err := chstore.NewConn(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
		return err
	}
	return reporting.Publish(ctx, chstore.NewLeaderboardStore(conn), time.Now().UTC().Unix(), result.Tables)
}

func serveMetrics(addr string, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Warn("metrics server stopped", zap.Error(err))
	}
}
