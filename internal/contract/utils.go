package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/thermolog/schema"
)

// Range label constants.
const (
	InRangeValue    = "OK"  // InRangeValue marks a reading inside its zone's range
	OutOfRangeValue = "OUT" // OutOfRangeValue marks a reading outside its zone's range
)

// Color variables for console output.
var (
	AlertColor   = color.New(color.FgRed, color.Bold)     // AlertColor represents standard danger.
	OKColor      = color.New(color.FgGreen)               // OKColor represents a reading within limits.
	PendingColor = color.New(color.FgYellow)              // PendingColor represents standard caution, not bold.
	StaleColor   = color.New(color.FgMagenta, color.Bold) // StaleColor represents strong, distinct warning.
	InfoColor    = color.New(color.FgCyan)                // InfoColor represents informational signal.
)

// GetPlainLabel returns the range label for CSV, JSON and plain table output.
func GetPlainLabel(outOfRange bool) string {
	if outOfRange {
		return OutOfRangeValue
	}
	return InRangeValue
}

// GetColorLabel returns a colored range label for console output (table).
func GetColorLabel(outOfRange bool) string {
	if outOfRange {
		return AlertColor.Sprint(OutOfRangeValue)
	}
	return OKColor.Sprint(InRangeValue)
}

// GetStatusLabel returns a colored submission status for console output.
func GetStatusLabel(status schema.SubmissionStatus) string {
	text := string(status)
	switch status {
	case schema.ConfirmedStatus:
		return OKColor.Sprint(text)
	case schema.PendingStatus:
		return PendingColor.Sprint(text)
	case schema.StaleStatus:
		return StaleColor.Sprint(text)
	case schema.FailedStatus:
		return AlertColor.Sprint(text)
	default:
		return InfoColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for snapshot storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".thermolog_cache.db"
	}
	return filepath.Join(homeDir, ".thermolog_cache.db")
}

// GetLedgerDBFilePath returns the path to the SQLite DB file for the submission ledger.
func GetLedgerDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".thermolog_ledger.db"
	}
	return filepath.Join(homeDir, ".thermolog_ledger.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and some content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
