package services

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"antrian-fm/internal/status"
	"antrian-fm/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV_HeaderRow(t *testing.T) {
	data, contentType, err := Export(nil, FormatCSV)

	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Equal(t,
		"Nomor Tiket,Nama Customer,Keperluan,Status,Prioritas,Waktu Dibuat,Dipanggil,Selesai,Counter,Estimasi Tunggu (menit)\n",
		string(data))
}

func TestExportCSV_Rows(t *testing.T) {
	created := time.Date(2026, 8, 28, 9, 5, 30, 0, time.Local)
	called := created.Add(12 * time.Minute)

	tickets := []models.QueueTicket{
		{
			Number:            "FM20260828001",
			CustomerName:      "Budi, Jr.", // comma forces CSV quoting
			Purpose:           "Facility Maintenance",
			Status:            models.StatusCalled,
			Priority:          models.PriorityUrgent,
			CreatedAt:         created,
			CalledAt:          &called,
			CounterAssigned:   "counter-1",
			EstimatedWaitTime: 25,
		},
	}

	data, _, err := Export(tickets, FormatCSV)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	row := rows[1]
	assert.Equal(t, "FM20260828001", row[0])
	assert.Equal(t, "Budi, Jr.", row[1])
	assert.Equal(t, "28/08/2026 09.05.30", row[5])
	assert.Equal(t, "28/08/2026 09.17.30", row[6])
	assert.Equal(t, "", row[7], "open tickets leave Selesai blank")
	assert.Equal(t, "25", row[9])
}

func TestExportJSON_PrettyPrinted(t *testing.T) {
	tickets := []models.QueueTicket{
		{Number: "FM20260828001", CustomerName: "Siti", Status: models.StatusWaiting},
	}

	data, contentType, err := Export(tickets, FormatJSON)

	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.True(t, strings.HasPrefix(string(data), "[\n  {"))

	var decoded []models.QueueTicket
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "FM20260828001", decoded[0].Number)
}

func TestExport_UnknownFormat(t *testing.T) {
	_, _, err := Export(nil, "xlsx")

	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrValidation)
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 8, 28, 16, 45, 0, 0, time.Local)

	assert.Equal(t, "tiket-rekap-week-2026-08-28.csv", ExportFilename(FormatCSV, PeriodWeek, now))
	assert.Equal(t, "tiket-rekap-all-2026-08-28.json", ExportFilename(FormatJSON, PeriodAll, now))
}
