package store

import (
	"encoding/json"
	"time"
)

// ReportRun is one archived pipeline run: classification outcome, the
// planned sections, and the final report payload.
type ReportRun struct {
	ID        string
	Business  string
	Cohort    string
	Trend     string
	Plan      []string
	Report    json.RawMessage
	CreatedAt time.Time
}
