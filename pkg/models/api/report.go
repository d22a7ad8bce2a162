package api

import "time"

// GenerateReportRequest carries the raw source exports for one run.
// Empty fields mean the source is absent for this business.
type GenerateReportRequest struct {
	Business       string `json:"business"`
	QuicksightData string `json:"quicksight_data"`
	IgniteData     string `json:"ignite_data"`
	ZyloData       string `json:"zylo_data"`
	MSPData        string `json:"msp_data"`
}

// ReportRun is a finished run: classification outcome, generated
// sections, and the report payload keyed by section name.
type ReportRun struct {
	ID        string         `json:"id"`
	Business  string         `json:"business"`
	Cohort    string         `json:"cohort"`
	Trend     string         `json:"trend"`
	Sections  []string       `json:"sections"`
	Report    map[string]any `json:"report"`
	CreatedAt time.Time      `json:"created_at"`
}

// ReportRunSummary is the listing shape; the report payload stays out.
type ReportRunSummary struct {
	ID        string    `json:"id"`
	Cohort    string    `json:"cohort"`
	Trend     string    `json:"trend"`
	CreatedAt time.Time `json:"created_at"`
}
