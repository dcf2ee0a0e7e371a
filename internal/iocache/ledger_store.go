package iocache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/thermolog/internal/contract"
	"github.com/huangsam/thermolog/schema"
)

// submissionsTable holds one row per submission.
const submissionsTable = "thermolog_submissions"

// LedgerStoreImpl implements the LedgerStore interface.
type LedgerStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.LedgerStore = &LedgerStoreImpl{} // Compile-time check

// NewLedgerStore creates a new LedgerStore with the specified backend.
func NewLedgerStore(backend schema.DatabaseBackend, connStr string) (contract.LedgerStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &LedgerStoreImpl{backend: backend}, nil
	}

	db, err := openDatabase(backend, connStr, GetLedgerDBFilePath())
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(getCreateSubmissionsQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", submissionsTable, err)
	}

	return &LedgerStoreImpl{db: db, backend: backend}, nil
}

// getCreateSubmissionsQuery returns the CREATE TABLE query for the submissions table.
// It matches the first embedded migration.
func getCreateSubmissionsQuery(backend schema.DatabaseBackend) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			submission_id VARCHAR(64) NOT NULL PRIMARY KEY,
			fingerprint VARCHAR(255) NOT NULL,
			status VARCHAR(16) NOT NULL,
			record_json TEXT NOT NULL,
			submitted_at BIGINT NOT NULL,
			resolved_at BIGINT,
			last_error TEXT
		);
	`, quoteTableName(submissionsTable, backend))
}

// getUpsertSubmissionQuery returns the UPSERT query for the backend.
func (ls *LedgerStoreImpl) getUpsertSubmissionQuery() string {
	quoted := quoteTableName(submissionsTable, ls.backend)
	columns := "submission_id, fingerprint, status, record_json, submitted_at, resolved_at, last_error"
	switch ls.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE fingerprint = new.fingerprint, status = new.status, record_json = new.record_json,
			submitted_at = new.submitted_at, resolved_at = new.resolved_at, last_error = new.last_error`, quoted, columns)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (submission_id) DO UPDATE SET fingerprint = EXCLUDED.fingerprint, status = EXCLUDED.status,
			record_json = EXCLUDED.record_json, submitted_at = EXCLUDED.submitted_at, resolved_at = EXCLUDED.resolved_at,
			last_error = EXCLUDED.last_error`, quoted, columns)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?)`, quoted, columns)
	}
}

// Save inserts or updates a submission by ID.
func (ls *LedgerStoreImpl) Save(sub schema.Submission) error {
	if ls.backend == schema.NoneBackend || ls.db == nil {
		return nil
	}
	if sub.ID == "" {
		return errors.New("submission ID cannot be empty")
	}

	recordJSON, err := json.Marshal(sub.Record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	var resolved sql.NullInt64
	if sub.ResolvedAt != nil {
		resolved = sql.NullInt64{Int64: sub.ResolvedAt.UnixMilli(), Valid: true}
	}
	var lastError sql.NullString
	if sub.LastError != "" {
		lastError = sql.NullString{String: sub.LastError, Valid: true}
	}

	_, err = ls.db.Exec(ls.getUpsertSubmissionQuery(),
		sub.ID, sub.Fingerprint, string(sub.Status), string(recordJSON),
		sub.SubmittedAt.UnixMilli(), resolved, lastError)
	if err != nil {
		return fmt.Errorf("failed to save submission %s: %w", sub.ID, err)
	}
	return nil
}

// selectColumns is shared by Get and List.
const selectColumns = "submission_id, fingerprint, status, record_json, submitted_at, resolved_at, last_error"

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (schema.Submission, error) {
	var (
		sub        schema.Submission
		status     string
		recordJSON string
		submitted  int64
		resolved   sql.NullInt64
		lastError  sql.NullString
	)
	if err := row.Scan(&sub.ID, &sub.Fingerprint, &status, &recordJSON, &submitted, &resolved, &lastError); err != nil {
		return sub, err
	}
	sub.Status = schema.SubmissionStatus(status)
	sub.SubmittedAt = time.UnixMilli(submitted)
	if resolved.Valid {
		t := time.UnixMilli(resolved.Int64)
		sub.ResolvedAt = &t
	}
	sub.LastError = lastError.String
	if err := json.Unmarshal([]byte(recordJSON), &sub.Record); err != nil {
		return sub, fmt.Errorf("failed to decode record of submission %s: %w", sub.ID, err)
	}
	return sub, nil
}

// Get returns one submission by ID.
func (ls *LedgerStoreImpl) Get(id string) (schema.Submission, error) {
	if ls.backend == schema.NoneBackend || ls.db == nil {
		return schema.Submission{}, fmt.Errorf("%w: %s", schema.ErrSubmissionNotFound, id)
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE submission_id = %s",
		selectColumns, quoteTableName(submissionsTable, ls.backend), placeholder(ls.backend, 1))
	sub, err := scanSubmission(ls.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return sub, fmt.Errorf("%w: %s", schema.ErrSubmissionNotFound, id)
	}
	return sub, err
}

// List returns submissions newest first. An empty status lists all of them.
func (ls *LedgerStoreImpl) List(status schema.SubmissionStatus, limit int) ([]schema.Submission, error) {
	out := make([]schema.Submission, 0)
	if ls.backend == schema.NoneBackend || ls.db == nil {
		return out, nil
	}
	if limit <= 0 {
		limit = contract.DefaultListLimit
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", selectColumns, quoteTableName(submissionsTable, ls.backend))
	var args []any
	if status != "" {
		fmt.Fprintf(&b, " WHERE status = %s", placeholder(ls.backend, 1))
		args = append(args, string(status))
	}
	fmt.Fprintf(&b, " ORDER BY submitted_at DESC LIMIT %d", limit)

	rows, err := ls.db.Query(b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// GetStatus returns status information about the ledger store.
func (ls *LedgerStoreImpl) GetStatus() (schema.LedgerStatus, error) {
	status := schema.LedgerStatus{
		Backend:   string(ls.backend),
		Connected: ls.db != nil,
		ByStatus:  make(map[schema.SubmissionStatus]int),
	}
	if ls.backend == schema.NoneBackend || ls.db == nil {
		return status, nil
	}

	quoted := quoteTableName(submissionsTable, ls.backend)
	rows, err := ls.db.Query(fmt.Sprintf("SELECT status, COUNT(*) FROM %s GROUP BY status", quoted))
	if err != nil {
		return status, fmt.Errorf("failed to count submissions: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var s string
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return status, fmt.Errorf("failed to count submissions: %w", err)
		}
		status.ByStatus[schema.SubmissionStatus(s)] = n
		status.TotalSubmissions += n
	}
	if err := rows.Err(); err != nil {
		return status, err
	}

	if status.TotalSubmissions > 0 {
		var last int64
		if err := ls.db.QueryRow(fmt.Sprintf("SELECT MAX(submitted_at) FROM %s", quoted)).Scan(&last); err != nil {
			return status, fmt.Errorf("failed to get last submission time: %w", err)
		}
		status.LastSubmitted = time.UnixMilli(last)
	}
	return status, nil
}

// Clear removes every submission.
func (ls *LedgerStoreImpl) Clear() error {
	if ls.backend == schema.NoneBackend || ls.db == nil {
		return nil
	}
	_, err := ls.db.Exec(fmt.Sprintf("DELETE FROM %s", quoteTableName(submissionsTable, ls.backend)))
	return err
}

// Close closes the underlying connection.
func (ls *LedgerStoreImpl) Close() error {
	if ls.db != nil {
		return ls.db.Close()
	}
	return nil
}
