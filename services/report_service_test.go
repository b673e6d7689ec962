package services

import (
	"testing"
	"time"

	"antrian-fm/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportNow = time.Date(2026, 8, 28, 15, 0, 0, 0, time.Local)

func completedTicket(id string, created, called, completed time.Time) models.QueueTicket {
	return models.QueueTicket{
		ID:          id,
		Status:      models.StatusCompleted,
		CreatedAt:   created,
		CalledAt:    &called,
		CompletedAt: &completed,
	}
}

func TestAverages_EmptyCollection(t *testing.T) {
	assert.Equal(t, float64(0), AverageWaitMinutes(nil))
	assert.Equal(t, float64(0), AverageServiceMinutes(nil))
}

func TestAverages_IgnoreTicketsWithoutTimestamps(t *testing.T) {
	called := reportNow.Add(-30 * time.Minute)
	tickets := []models.QueueTicket{
		{ID: "t1", Status: models.StatusCompleted, CreatedAt: reportNow.Add(-time.Hour)}, // no called_at
		{ID: "t2", Status: models.StatusServing, CreatedAt: reportNow.Add(-time.Hour), CalledAt: &called},
	}

	assert.Equal(t, float64(0), AverageWaitMinutes(tickets))
	assert.Equal(t, float64(0), AverageServiceMinutes(tickets))
}

func TestAverages_WaitIsTimeToCall(t *testing.T) {
	created := reportNow.Add(-60 * time.Minute)
	tickets := []models.QueueTicket{
		completedTicket("t1", created, created.Add(10*time.Minute), created.Add(25*time.Minute)),
		completedTicket("t2", created, created.Add(20*time.Minute), created.Add(50*time.Minute)),
	}

	// Wait averages call delay, not total turnaround.
	assert.Equal(t, 15.0, AverageWaitMinutes(tickets))
	assert.Equal(t, 22.5, AverageServiceMinutes(tickets))
}

func TestCountByStatus_ReportsExplicitZeroes(t *testing.T) {
	counts := CountByStatus([]models.QueueTicket{
		{Status: models.StatusWaiting},
		{Status: models.StatusWaiting},
		{Status: models.StatusCompleted},
	})

	assert.Equal(t, 2, counts[models.StatusWaiting])
	assert.Equal(t, 0, counts[models.StatusCalled])
	assert.Equal(t, 0, counts[models.StatusServing])
	assert.Equal(t, 1, counts[models.StatusCompleted])
}

func TestFilterByPeriod(t *testing.T) {
	today := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)
	yesterday := today.AddDate(0, 0, -1)
	lastWeek := today.AddDate(0, 0, -6)
	longAgo := today.AddDate(0, -2, 0)

	tickets := []models.QueueTicket{
		{ID: "today", CreatedAt: today},
		{ID: "yesterday", CreatedAt: yesterday},
		{ID: "lastWeek", CreatedAt: lastWeek},
		{ID: "longAgo", CreatedAt: longAgo},
	}

	ids := func(tickets []models.QueueTicket) []string {
		out := make([]string, 0, len(tickets))
		for _, t := range tickets {
			out = append(out, t.ID)
		}
		return out
	}

	assert.Equal(t, []string{"today"}, ids(FilterByPeriod(tickets, PeriodToday, reportNow)))
	assert.Equal(t, []string{"yesterday"}, ids(FilterByPeriod(tickets, PeriodYesterday, reportNow)))
	assert.Equal(t, []string{"today", "yesterday", "lastWeek"}, ids(FilterByPeriod(tickets, PeriodWeek, reportNow)))
	assert.Equal(t, []string{"today", "yesterday", "lastWeek"}, ids(FilterByPeriod(tickets, PeriodMonth, reportNow)))
	assert.Equal(t, []string{"today", "yesterday", "lastWeek", "longAgo"}, ids(FilterByPeriod(tickets, PeriodAll, reportNow)))
}

func TestHourlyHistogram_OmitsEmptyHours(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2026, 8, 28, hour, 15, 0, 0, time.Local)
	}
	tickets := []models.QueueTicket{
		{ID: "a", CreatedAt: at(9)},
		{ID: "b", CreatedAt: at(9)},
		{ID: "c", CreatedAt: at(14)},
		{ID: "d", CreatedAt: at(14).AddDate(0, 0, -1)}, // yesterday, excluded
	}

	buckets := HourlyHistogram(tickets, reportNow)

	require.Len(t, buckets, 2)
	assert.Equal(t, models.HourlyBucket{Hour: 9, Label: "09:00", Count: 2}, buckets[0])
	assert.Equal(t, models.HourlyBucket{Hour: 14, Label: "14:00", Count: 1}, buckets[1])
}

func TestSortForQueue_PriorityThenNewestThenID(t *testing.T) {
	base := time.Date(2026, 8, 28, 8, 0, 0, 0, time.Local)
	tickets := []models.QueueTicket{
		{ID: "n", Priority: models.PriorityNormal, CreatedAt: base.Add(5 * time.Minute)},
		{ID: "u", Priority: models.PriorityUrgent, CreatedAt: base.Add(1 * time.Minute)},
		{ID: "e", Priority: models.PriorityEmergency, CreatedAt: base.Add(2 * time.Minute)},
	}

	sorted := SortForQueue(tickets)

	require.Len(t, sorted, 3)
	assert.Equal(t, "e", sorted[0].ID)
	assert.Equal(t, "u", sorted[1].ID)
	assert.Equal(t, "n", sorted[2].ID)
}

func TestSortForQueue_Determinism(t *testing.T) {
	base := time.Date(2026, 8, 28, 8, 0, 0, 0, time.Local)
	tickets := []models.QueueTicket{
		{ID: "b", Priority: models.PriorityNormal, CreatedAt: base},
		{ID: "a", Priority: models.PriorityNormal, CreatedAt: base},
		{ID: "z", Priority: "", CreatedAt: base.Add(time.Hour)}, // unknown priority sorts last
	}

	sorted := SortForQueue(tickets)

	assert.Equal(t, "a", sorted[0].ID)
	assert.Equal(t, "b", sorted[1].ID)
	assert.Equal(t, "z", sorted[2].ID)

	// Input order untouched.
	assert.Equal(t, "b", tickets[0].ID)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, reportNow)

	assert.Equal(t, 0, summary.TotalToday)
	assert.Equal(t, float64(0), summary.AvgWaitMinutes)
	assert.Equal(t, float64(0), summary.AvgServiceMinutes)
	assert.Empty(t, summary.Hourly)
	assert.Equal(t, 0, summary.StatusCounts[models.StatusWaiting])
}
