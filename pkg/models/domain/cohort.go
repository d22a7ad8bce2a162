package domain

// CohortCode classifies which combination of data sources is available
// for a business. Derived once per run, never mutated afterwards; it is
// the lookup key for slide planning.
type CohortCode string

const (
	Cohort0  CohortCode = "0"
	Cohort1  CohortCode = "1"
	Cohort2  CohortCode = "2"
	Cohort4  CohortCode = "4"
	Cohort5  CohortCode = "5"
	Cohort6  CohortCode = "6"
	Cohort6a CohortCode = "6a"
	Cohort6b CohortCode = "6b"
	Cohort7  CohortCode = "7"
	Cohort7a CohortCode = "7a"
	Cohort7b CohortCode = "7b"
	Cohort8  CohortCode = "8"
)

// SourcePresence records which raw analytics sources a run received.
type SourcePresence struct {
	Quicksight bool
	Ignite     bool
	Zylo       bool
	MSP        bool
}

const (
	AdsFlagInactive = 0
	AdsFlagActive   = 1
)

// AdsScore classifies which paid-advertising platforms have reportable
// fields. Score: 1 = both Facebook and Google Ads fields present,
// 2 = Facebook only or none, 5 = Google only. Flag is AdsFlagActive when
// at least one counted field carries a non-zero, non-null value.
type AdsScore struct {
	Score  int    `json:"score"`
	Flag   int    `json:"flag"`
	Reason string `json:"reason"`
}

type TrendCategory string

const (
	TrendUp   TrendCategory = "uptrend"
	TrendDown TrendCategory = "downtrend"
)

// TrendCall is the trajectory classification for a run plus the rationale
// behind it.
type TrendCall struct {
	Category TrendCategory `json:"category"`
	Reason   string        `json:"reason_selected"`
}
