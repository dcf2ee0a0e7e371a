// Package main benchmarks the thermolog CLI against generated spreadsheets.
// It serves datasets of increasing size from an in-process fake endpoint,
// runs each read command online a few times and then offline from the
// snapshot the online runs saved, and writes the averages to a CSV file.
//
// Prerequisites:
// - thermolog binary installed and available in PATH
//
// Usage: go run benchmark/main.go [rows,rows,...]
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/thermolog/schema"
)

// BenchmarkResult holds the averages of one command over one dataset.
type BenchmarkResult struct {
	Rows        int
	Command     string
	OnlineTime  string
	OfflineTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Sizes       []int
	Timeout     time.Duration
	OnlineRuns  int
	OfflineRuns int
	Commands    []string
}

func main() {
	config := BenchmarkConfig{
		Sizes:       []int{100, 1_000, 10_000, 50_000},
		Timeout:     2 * time.Minute,
		OnlineRuns:  3,
		OfflineRuns: 4,
		Commands:    []string{"report", "records", "export"},
	}
	if len(os.Args) == 2 {
		sizes, err := parseSizes(os.Args[1])
		if err != nil {
			fmt.Printf("Invalid sizes: %v\n", err)
			os.Exit(1)
		}
		config.Sizes = sizes
	}

	if _, err := exec.LookPath("thermolog"); err != nil {
		fmt.Printf("Prerequisites check failed: thermolog binary not found in PATH\n")
		os.Exit(1)
	}

	workDir, err := os.MkdirTemp("", "thermolog-benchmark-*")
	if err != nil {
		fmt.Printf("Failed to create work dir: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	results := runBenchmarks(config, workDir)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}
	printSummary(config, results)
}

func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("'%s' is not a positive row count", part)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// generateRows spreads n readings over every zone, both shifts and the
// months of 2024, alternating temperature and humidity.
func generateRows(n int) []schema.RawRecord {
	rows := make([]schema.RawRecord, n)
	for i := range rows {
		kind, current := "Temperatura", 15+float64(i%20)
		if i%2 == 1 {
			kind, current = "Humedad", 30+float64(i%50)
		}
		shift := "Mañana"
		if i%4 >= 2 {
			shift = "Tarde"
		}
		rows[i] = schema.RawRecord{
			"Fecha":       fmt.Sprintf("2024-%02d-%02d", i%12+1, i%28+1),
			"Jornada":     shift,
			"Area":        schema.Zones[i%len(schema.Zones)],
			"Responsable": "bench",
			"Tipo":        kind,
			"Actual":      strconv.FormatFloat(current, 'f', 1, 64),
		}
	}
	return rows
}

// runBenchmarks executes every command against every dataset size.
func runBenchmarks(config BenchmarkConfig, workDir string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d sizes, %v timeout, online: %d runs, offline: %d runs\n",
		len(config.Sizes), config.Timeout, config.OnlineRuns, config.OfflineRuns)

	for _, size := range config.Sizes {
		fmt.Printf("Benchmarking %d rows\n", size)
		payload, err := json.Marshal(generateRows(size))
		if err != nil {
			fmt.Printf("  Failed to generate dataset: %v\n", err)
			continue
		}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(payload)
		}))

		env := []string{
			"THERMOLOG_ENDPOINT=" + server.URL,
			"THERMOLOG_CACHE_DB_CONNECT=" + filepath.Join(workDir, fmt.Sprintf("cache-%d.db", size)),
			"THERMOLOG_LEDGER_BACKEND=none",
			"THERMOLOG_OUTPUT_FILE=" + filepath.Join(workDir, "out"),
			"THERMOLOG_YEAR=2024",
			"THERMOLOG_MONTH=3",
		}
		for _, command := range config.Commands {
			results = append(results, runBenchmarkSuite(config, size, command, env))
		}
		server.Close()
	}
	return results
}

// runBenchmarkSuite runs the online phase and then the offline phase of one command.
func runBenchmarkSuite(config BenchmarkConfig, size int, command string, env []string) BenchmarkResult {
	fmt.Printf("Running %s on %d rows\n", command, size)

	runPhase := func(extraArgs []string, numRuns int, phaseName string) string {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		times := runBenchmark(config, command, extraArgs, env, numRuns)
		if len(times) == 0 {
			return "TIMEOUT"
		}
		var sum float64
		for _, t := range times {
			sum += t
		}
		return fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	online := runPhase(nil, config.OnlineRuns, "Online")
	offline := runPhase([]string{"--offline"}, config.OfflineRuns, "Offline")
	fmt.Printf("  Online average: %s, Offline average: %s\n", online, offline)

	return BenchmarkResult{
		Rows:        size,
		Command:     command,
		OnlineTime:  online,
		OfflineTime: offline,
	}
}

// runBenchmark executes a thermolog command numRuns times and returns the
// durations of the runs that succeeded within the timeout.
func runBenchmark(config BenchmarkConfig, command string, extraArgs, env []string, numRuns int) []float64 {
	args := append([]string{command}, extraArgs...)

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("thermolog", args...)
		cmd.Env = append(os.Environ(), env...)

		done := make(chan error, 1)
		go func() {
			_, err := cmd.CombinedOutput()
			done <- err
		}()

		select {
		case err := <-done:
			if err == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}
	return times
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("thermolog_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"rows", "cmd", "online_avg", "offline_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{strconv.Itoa(result.Rows), result.Command, result.OnlineTime, result.OfflineTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results per command.
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range config.Commands {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %8d rows: Online: %s, Offline: %s\n", result.Rows, result.OnlineTime, result.OfflineTime)
			}
		}
	}
}
