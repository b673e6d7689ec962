package models

type HourlyBucket struct {
	Hour  int    `json:"hour"`
	Label string `json:"label"` // "08:00"
	Count int    `json:"count"`
}

type ReportSummary struct {
	TotalToday        int            `json:"total_today"`
	StatusCounts      map[string]int `json:"status_counts"`
	AvgWaitMinutes    float64        `json:"avg_wait_minutes"`
	AvgServiceMinutes float64        `json:"avg_service_minutes"`
	Hourly            []HourlyBucket `json:"hourly"`
}
