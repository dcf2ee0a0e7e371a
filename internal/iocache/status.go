package iocache

import (
	"fmt"

	"github.com/huangsam/thermolog/schema"
)

// PrintCacheStatus prints cache status information.
func PrintCacheStatus(status schema.CacheStatus) {
	fmt.Printf("Cache Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		fmt.Printf("Last Entry: %s\n", status.LastEntryTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Entry: %s\n", status.OldestEntryTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Table Size: %d bytes\n", status.TableSizeBytes)
}

// PrintLedgerStatus prints submission ledger status information.
func PrintLedgerStatus(status schema.LedgerStatus) {
	fmt.Printf("Ledger Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Submissions: %d\n", status.TotalSubmissions)
	if status.TotalSubmissions == 0 {
		return
	}
	fmt.Printf("Last Submitted: %s\n", status.LastSubmitted.Format("2006-01-02 15:04:05"))
	fmt.Println("By Status:")
	for _, s := range []schema.SubmissionStatus{schema.PendingStatus, schema.ConfirmedStatus, schema.StaleStatus, schema.FailedStatus} {
		fmt.Printf("  %s: %d\n", s, status.ByStatus[s])
	}
}
