package services

import (
	"fmt"
	"sort"
	"time"

	"antrian-fm/models"

	"github.com/shopspring/decimal"
)

// Report periods accepted by FilterByPeriod.
const (
	PeriodToday     = "today"
	PeriodYesterday = "yesterday"
	PeriodWeek      = "week"
	PeriodMonth     = "month"
	PeriodAll       = "all"
)

// FilterByPeriod scopes a ticket collection by creation date. Unknown periods
// fall through to the full collection, matching the export filter's behavior.
func FilterByPeriod(tickets []models.QueueTicket, period string, now time.Time) []models.QueueTicket {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var from, until time.Time
	switch period {
	case PeriodToday:
		from = today
	case PeriodYesterday:
		from = today.AddDate(0, 0, -1)
		until = today
	case PeriodWeek:
		from = today.AddDate(0, 0, -7)
	case PeriodMonth:
		from = today.AddDate(0, -1, 0)
	default:
		return tickets
	}

	filtered := make([]models.QueueTicket, 0, len(tickets))
	for _, t := range tickets {
		if t.CreatedAt.Before(from) {
			continue
		}
		if !until.IsZero() && !t.CreatedAt.Before(until) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// CountByStatus tallies tickets per lifecycle status. All four statuses are
// present in the result so empty collections report explicit zeroes.
func CountByStatus(tickets []models.QueueTicket) map[string]int {
	counts := map[string]int{
		models.StatusWaiting:   0,
		models.StatusCalled:    0,
		models.StatusServing:   0,
		models.StatusCompleted: 0,
	}
	for _, t := range tickets {
		counts[t.Status]++
	}
	return counts
}

// AverageWaitMinutes is the mean of (called_at - created_at) over completed
// tickets carrying both call and completion timestamps. This is deliberately
// time-to-call, not time-to-completion, matching the reporting screen's
// long-standing definition of "wait time".
func AverageWaitMinutes(tickets []models.QueueTicket) float64 {
	var total float64
	var n int
	for _, t := range completedWithTimes(tickets) {
		total += t.CalledAt.Sub(t.CreatedAt).Minutes()
		n++
	}
	return roundMinutes(total, n)
}

// AverageServiceMinutes is the mean of (completed_at - called_at) over the
// same completed-ticket set.
func AverageServiceMinutes(tickets []models.QueueTicket) float64 {
	var total float64
	var n int
	for _, t := range completedWithTimes(tickets) {
		total += t.CompletedAt.Sub(*t.CalledAt).Minutes()
		n++
	}
	return roundMinutes(total, n)
}

// HourlyHistogram buckets today's tickets by hour of creation, ascending,
// with empty hours omitted.
func HourlyHistogram(tickets []models.QueueTicket, now time.Time) []models.HourlyBucket {
	todays := FilterByPeriod(tickets, PeriodToday, now)

	counts := make(map[int]int)
	for _, t := range todays {
		counts[t.CreatedAt.In(now.Location()).Hour()]++
	}

	buckets := make([]models.HourlyBucket, 0, len(counts))
	for hour := 0; hour < 24; hour++ {
		if counts[hour] == 0 {
			continue
		}
		buckets = append(buckets, models.HourlyBucket{
			Hour:  hour,
			Label: fmt.Sprintf("%02d:00", hour),
			Count: counts[hour],
		})
	}
	return buckets
}

// Summarize builds the reporting view for the current day.
func Summarize(tickets []models.QueueTicket, now time.Time) models.ReportSummary {
	todays := FilterByPeriod(tickets, PeriodToday, now)
	return models.ReportSummary{
		TotalToday:        len(todays),
		StatusCounts:      CountByStatus(todays),
		AvgWaitMinutes:    AverageWaitMinutes(todays),
		AvgServiceMinutes: AverageServiceMinutes(todays),
		Hourly:            HourlyHistogram(tickets, now),
	}
}

// SortForQueue orders tickets for the admin queue view: priority first
// (emergency > urgent > normal, unknown last), newest created_at second,
// then id ascending so ties are fully deterministic.
func SortForQueue(tickets []models.QueueTicket) []models.QueueTicket {
	sorted := make([]models.QueueTicket, len(tickets))
	copy(sorted, tickets)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if ra, rb := priorityRank(a.Priority), priorityRank(b.Priority); ra != rb {
			return ra < rb
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return sorted
}

func priorityRank(priority string) int {
	switch priority {
	case models.PriorityEmergency:
		return 0
	case models.PriorityUrgent:
		return 1
	case models.PriorityNormal:
		return 2
	}
	return 3
}

func completedWithTimes(tickets []models.QueueTicket) []models.QueueTicket {
	completed := make([]models.QueueTicket, 0, len(tickets))
	for _, t := range tickets {
		if t.Status == models.StatusCompleted && t.CalledAt != nil && t.CompletedAt != nil {
			completed = append(completed, t)
		}
	}
	return completed
}

func roundMinutes(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	avg := decimal.NewFromFloat(total / float64(n))
	return avg.Round(1).InexactFloat64()
}
