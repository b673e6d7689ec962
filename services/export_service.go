package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"antrian-fm/internal/status"
	"antrian-fm/models"
)

// Export formats offered to the admin.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// The recap's header row. The service desk keeps its recap sheets in
// Indonesian, so the labels are too.
var exportHeaders = []string{
	"Nomor Tiket",
	"Nama Customer",
	"Keperluan",
	"Status",
	"Prioritas",
	"Waktu Dibuat",
	"Dipanggil",
	"Selesai",
	"Counter",
	"Estimasi Tunggu (menit)",
}

// id-ID timestamp style used on the recap sheet.
const exportTimeLayout = "02/01/2006 15.04.05"

// Export renders the ticket collection in the requested download format.
func Export(tickets []models.QueueTicket, format string) ([]byte, string, error) {
	switch format {
	case FormatCSV:
		data, err := exportCSV(tickets)
		return data, "text/csv", err
	case FormatJSON:
		data, err := json.MarshalIndent(tickets, "", "  ")
		return data, "application/json", err
	}
	return nil, "", fmt.Errorf("%w: unsupported export format %q", status.ErrValidation, format)
}

// ExportFilename names the download: tiket-rekap-<period>-<date>.<ext>.
func ExportFilename(format, period string, now time.Time) string {
	return fmt.Sprintf("tiket-rekap-%s-%s.%s", period, now.Format("2006-01-02"), format)
}

func exportCSV(tickets []models.QueueTicket) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, t := range tickets {
		row := []string{
			t.Number,
			t.CustomerName,
			t.Purpose,
			t.Status,
			t.Priority,
			t.CreatedAt.Format(exportTimeLayout),
			formatOptionalTime(t.CalledAt),
			formatOptionalTime(t.CompletedAt),
			t.CounterAssigned,
			strconv.Itoa(t.EstimatedWaitTime),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(exportTimeLayout)
}
