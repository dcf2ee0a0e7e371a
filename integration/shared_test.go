//go:build basic || database

// Package integration runs the thermolog binary end to end.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// Database backends need Docker: go test -tags database ./integration
package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/huangsam/thermolog/schema"
)

var (
	// sharedBinaryPath holds the path to a thermolog binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}
	os.Exit(code)
}

// getBinary returns the path to the thermolog binary, building it once if needed.
func getBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "thermolog-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binaryPath := filepath.Join(tempDir, "thermolog")
		buildCmd := exec.Command("go", "build", "-o", binaryPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build thermolog: %v", err))
		}
		sharedBinaryPath = binaryPath
	})

	return sharedBinaryPath
}

// runCommand runs the binary with env added to the process environment and
// returns its stdout and stderr together.
func runCommand(t *testing.T, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getBinary(), args...)
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(), env...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
	}
	return string(output), err
}

// fakeSheet stands in for the spreadsheet web app: GET lists rows, POST appends one.
type fakeSheet struct {
	mu   sync.Mutex
	rows []schema.RawRecord
}

func newFakeSheet(t *testing.T, rows ...schema.RawRecord) *httptest.Server {
	t.Helper()
	sheet := &fakeSheet{rows: rows}
	server := httptest.NewServer(sheet)
	t.Cleanup(server.Close)
	return server
}

func (f *fakeSheet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(f.rows)
	case http.MethodPost:
		var row schema.RawRecord
		if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.rows = append(f.rows, row)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// sampleRows returns two March readings of OPTICA, one of them too warm.
func sampleRows() []schema.RawRecord {
	return []schema.RawRecord{
		{"Fecha": "2024-03-15", "Jornada": "Mañana", "Area": "OPTICA", "Responsable": "Ana", "Tipo": "Temperatura", "Actual": "24,5"},
		{"Fecha": "2024-03-16", "Jornada": "Tarde", "Area": "OPTICA", "Responsable": "Ana", "Tipo": "Temperatura", "Actual": 31},
	}
}

// exerciseBackends runs the commands that touch both stores against env.
func exerciseBackends(t *testing.T, env []string) error {
	t.Helper()
	sheet := newFakeSheet(t, sampleRows()...)
	env = append(env, "THERMOLOG_ENDPOINT="+sheet.URL, "THERMOLOG_CONFIRM_INTERVAL=50ms")

	steps := [][]string{
		{"cache", "clear"},
		{"submissions", "clear"},
		{"submissions", "migrate"},
		{"report", "--zone", "OPTICA", "--year", "2024", "--month", "3"},
		{"submit", "--zone", "OPTICA", "--shift", "tarde", "--date", "2024-03-20", "--by", "Eva", "--current", "22"},
		{"report", "--offline", "--zone", "OPTICA", "--year", "2024", "--month", "3", "--output", "json"},
		{"cache", "status"},
		{"submissions", "status"},
		{"submissions", "list"},
	}
	for _, args := range steps {
		if _, err := runCommand(t, env, args...); err != nil {
			return fmt.Errorf("%v: %w", args, err)
		}
	}
	return nil
}
