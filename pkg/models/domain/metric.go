package domain

type PeriodType string

const (
	PeriodWeek  PeriodType = "week"
	PeriodMonth PeriodType = "month"
	PeriodYear  PeriodType = "year"
)

// RawPeriod is one observation as it comes out of source extraction,
// before value parsing. Value nil means the source had no figure at all;
// the string may carry thousands separators or the "-" placeholder.
type RawPeriod struct {
	PeriodType  PeriodType `json:"period_type"`
	PeriodLabel string     `json:"period_label"`
	Value       *string    `json:"value"`
}

// TimeSeries holds one metric's observations, earliest first. Ordering is
// positional; labels are display strings only.
type TimeSeries struct {
	Periods []RawPeriod `json:"periods"`
}

// MetricPeriod is a parsed observation. Value nil = unknown, 0 = confirmed
// zero; the two are never conflated.
type MetricPeriod struct {
	PeriodType  PeriodType `json:"period_type"`
	PeriodLabel string     `json:"period_label"`
	Value       *float64   `json:"value"`
}

type PeriodPoint struct {
	Label string   `json:"label"`
	Value *float64 `json:"value"`
}

// ChangeInsufficientData is the change string reported when either
// endpoint of a series is unknown. It is a first-class state, not an
// error; consumers branch on it.
const ChangeInsufficientData = "Insufficient data"

// NormalizedMetric is a time series reduced to rounded per-period values
// plus a first-to-last change summary. Change is computed from the
// endpoints only; intermediate periods do not affect it.
type NormalizedMetric struct {
	Periods     []MetricPeriod `json:"periods"`
	FirstPeriod PeriodPoint    `json:"first_period"`
	LastPeriod  PeriodPoint    `json:"last_period"`
	Change      string         `json:"change"`
	RawChange   *float64       `json:"raw_change"`
	PeriodCount int            `json:"period_count"`
}
