// Command verify checks run determinism: it executes the engine twice over
// the same input file and configuration and compares SHA-256 hashes of the
// rendered output tables. Any divergence means a nondeterminism bug.
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"veswap-points/internal/config"
	"veswap-points/internal/domain"
	"veswap-points/internal/engine"
	"veswap-points/internal/ingest"
	"veswap-points/internal/reporting"
)

func main() {
	configPath := flag.String("config", "", "Path to TOML config file (required)")
	inputPath := flag.String("input", "", "Record source file, .json or .csv (required)")
	flag.Parse()

	if *configPath == "" || *inputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --config and --input are required")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	first, err := runOnce(cfg, *inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error on first run: %v\n", err)
		os.Exit(1)
	}
	second, err := runOnce(cfg, *inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error on second run: %v\n", err)
		os.Exit(1)
	}

	if first != second {
		fmt.Fprintf(os.Stderr, "DIVERGED: run1=%s run2=%s\n", first, second)
		os.Exit(1)
	}
	fmt.Printf("OK: both runs produced %s\n", first)
}

// runOnce reads the input, runs the engine, and hashes every rendered table.
func runOnce(cfg config.Config, inputPath string) (string, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return "", fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	reader := ingest.NewReader(cfg, zap.NewNop())
	var records []domain.TransactionRecord
	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".json":
		records, err = reader.ReadJSON(f)
	case ".csv":
		records, err = reader.ReadCSV(f)
	default:
		err = fmt.Errorf("unsupported input extension %q", filepath.Ext(inputPath))
	}
	if err != nil {
		return "", err
	}

	eng, err := engine.New(cfg, zap.NewNop())
	if err != nil {
		return "", err
	}
	result, err := eng.Run(records)
	if err != nil {
		return "", err
	}

	tablesJSON, err := reporting.RenderJSON(result.Tables)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	h.Write([]byte(reporting.RenderTotalCSV(result.Tables)))
	h.Write([]byte(reporting.RenderWeeklyCSV(result.Tables)))
	h.Write([]byte(reporting.RenderAccountLogCSV(result.Tables)))
	h.Write([]byte(tablesJSON))
	return hex.EncodeToString(h.Sum(nil)), nil
}
