package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/thermolog/internal/contract"
	"github.com/huangsam/thermolog/schema"
	"github.com/olekukonko/tablewriter"
)

// PrintSubmissions outputs ledger entries, dispatching based on the output format configured.
func PrintSubmissions(subs []schema.Submission, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, subs)
		}, "Wrote JSON submissions")
	case schema.CSVOut:
		header := []string{"id", "status", "fingerprint", "submitted_at", "resolved_at", "last_error"}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, s := range subs {
					if err := cw.Write([]string{
						s.ID,
						string(s.Status),
						s.Fingerprint,
						s.SubmittedAt.Format(contract.DateTimeFormat),
						formatResolved(s),
						s.LastError,
					}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV submissions")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSubmissionsTable(w, subs, cfg)
		}, "Wrote submissions")
	}
}

func formatResolved(s schema.Submission) string {
	if s.ResolvedAt == nil {
		return ""
	}
	return s.ResolvedAt.Format(contract.DateTimeFormat)
}

// writeSubmissionsTable renders one row per submission.
func writeSubmissionsTable(w io.Writer, subs []schema.Submission, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Estado", "Fecha", "Area", "Tipo", "Actual", "Enviado", "Error"})

	fmtValue := createFormatter(cfg.Precision)
	textWidth := getMaxTableTextWidth(cfg)
	var data [][]string
	for _, s := range subs {
		data = append(data, []string{
			s.ID,
			statusLabel(s.Status, cfg),
			s.Record.Date,
			contract.TruncateText(s.Record.Zone, textWidth),
			schema.KindLabel(s.Record.Kind),
			fmtValue(s.Record.Current()),
			s.SubmittedAt.Format("2006-01-02 15:04:05"),
			contract.TruncateText(s.LastError, textWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d submissions\n", len(subs))
	return err
}
