package llm

import "fmt"

// Slide schemas. Field constraints mirror the slide layout the rendered
// deck uses: the character limits are column widths, the cardinalities are
// row counts. Validation runs locally after each completion.

// SlideBusinessInfo is the business block of the intro slide.
type SlideBusinessInfo struct {
	BusinessName string `json:"business_name"`
	Website      string `json:"website"`
	Category     string `json:"category"`
	Address      string `json:"address"`
	Facebook     string `json:"facebook"`
	Instagram    string `json:"instagram"`
}

// IntroReport is the intro slide: report title, covered period, business
// identity.
type IntroReport struct {
	ReportTitle  string            `json:"report_title"`
	ReportPeriod string            `json:"report_period"`
	BusinessInfo SlideBusinessInfo `json:"business_info"`
}

func (r *IntroReport) Validate() error {
	if r.ReportTitle == "" {
		return fmt.Errorf("report_title is required")
	}
	if r.ReportPeriod == "" {
		return fmt.Errorf("report_period is required")
	}
	return nil
}

// RangeStats is a start/end pair for a count metric.
type RangeStats struct {
	StartValue  int    `json:"start_value"`
	EndValue    int    `json:"end_value"`
	StartPeriod string `json:"start_period"`
	EndPeriod   string `json:"end_period"`
}

// PlatformWins is one platform's block on the big-wins slide.
type PlatformWins struct {
	Posts          *RangeStats `json:"posts"`
	Impressions    *RangeStats `json:"impressions"`
	OneLineSummary *string     `json:"one_line_summary"`
}

func (p *PlatformWins) validate(platform string) error {
	return maxLenPtr(platform+".one_line_summary", p.OneLineSummary, 94)
}

// AdsWins is a paid-platform block on the big-wins slide: efficiency
// metrics at the endpoints plus a one-liner.
type AdsWins struct {
	ClickThroughRateStart *float64 `json:"click_through_rate_start"`
	ClickThroughRateEnd   *float64 `json:"click_through_rate_end"`
	CostPerClickStart     *float64 `json:"cost_per_click_start"`
	CostPerClickEnd       *float64 `json:"cost_per_click_end"`
	StartPeriod           *string  `json:"start_period"`
	EndPeriod             *string  `json:"end_period"`
	OneLineSummary        *string  `json:"one_line_summary"`
}

// BigWinsReport highlights positive performance across platforms.
type BigWinsReport struct {
	Facebook       *PlatformWins `json:"facebook"`
	Instagram      *PlatformWins `json:"instagram"`
	FacebookAds    *AdsWins      `json:"facebook_ads"`
	GoogleAds      *AdsWins      `json:"google_ads"`
	WhatDoesItMean string        `json:"what_does_it_mean"`
}

func (r *BigWinsReport) Validate() error {
	if r.Facebook != nil {
		if err := r.Facebook.validate("facebook"); err != nil {
			return err
		}
	}
	if r.Instagram != nil {
		if err := r.Instagram.validate("instagram"); err != nil {
			return err
		}
	}
	var errs []error
	if r.FacebookAds != nil {
		errs = append(errs, maxLenPtr("facebook_ads.one_line_summary", r.FacebookAds.OneLineSummary, 94))
	}
	if r.GoogleAds != nil {
		errs = append(errs, maxLenPtr("google_ads.one_line_summary", r.GoogleAds.OneLineSummary, 94))
	}
	errs = append(errs, maxLen("what_does_it_mean", r.WhatDoesItMean, 235))
	return firstErr(errs...)
}

// MetricRow is one line of the growth-at-a-glance table.
type MetricRow struct {
	MetricName       string `json:"metric_name"`
	StartValue       string `json:"start_value"`
	EndValue         string `json:"end_value"`
	ChangePercentage string `json:"change_percentage"`
	StartPeriod      string `json:"start_period"`
	EndPeriod        string `json:"end_period"`
}

// GrowthAtGlanceReport is the full metric table slide.
type GrowthAtGlanceReport struct {
	Rows           []MetricRow `json:"rows"`
	WhatDoesItMean string      `json:"what_does_it_mean"`
}

func (r *GrowthAtGlanceReport) Validate() error {
	if len(r.Rows) == 0 {
		return fmt.Errorf("rows must not be empty")
	}
	return maxLen("what_does_it_mean", r.WhatDoesItMean, 235)
}

// AdPerformanceRow is one campaign line on the ads slide.
type AdPerformanceRow struct {
	AdLabel            string `json:"ad_label"`
	PerformanceSummary string `json:"performance_summary"`
	MetricsLine        string `json:"metrics_line"`
}

type AdsPerformanceReport struct {
	ReportTitle    *string            `json:"report_title"`
	Rows           []AdPerformanceRow `json:"rows"`
	WhatDoesItMean *string            `json:"what_does_it_mean"`
}

func (r *AdsPerformanceReport) Validate() error {
	for i, row := range r.Rows {
		if err := firstErr(
			maxLen(fmt.Sprintf("rows[%d].ad_label", i), row.AdLabel, 68),
			maxLen(fmt.Sprintf("rows[%d].performance_summary", i), row.PerformanceSummary, 71),
			maxLen(fmt.Sprintf("rows[%d].metrics_line", i), row.MetricsLine, 90),
		); err != nil {
			return err
		}
	}
	return firstErr(
		maxLenPtr("report_title", r.ReportTitle, 80),
		maxLenPtr("what_does_it_mean", r.WhatDoesItMean, 235),
	)
}

// PerformanceOverviewReport is the downtrend counterpart of big-wins.
type PerformanceOverviewReport struct {
	Facebook       *PlatformWins `json:"facebook"`
	Instagram      *PlatformWins `json:"instagram"`
	FacebookAds    *AdsWins      `json:"facebook_ads"`
	GoogleAds      *AdsWins      `json:"google_ads"`
	WhatDoesItMean *string       `json:"what_does_it_mean"`
}

func (r *PerformanceOverviewReport) Validate() error {
	return maxLenPtr("what_does_it_mean", r.WhatDoesItMean, 235)
}

// AttentionPeriod is one period cell on the attention-areas slide.
type AttentionPeriod struct {
	PeriodLabel string  `json:"period_label"`
	Value       float64 `json:"value"`
}

// AttentionMetricRow is a declining metric plus how to fix it.
type AttentionMetricRow struct {
	MetricName string            `json:"metric_name"`
	Periods    []AttentionPeriod `json:"periods"`
	HowToFix   string            `json:"how_to_fix"`
}

type AreasNeedingAttentionReport struct {
	ReportTitle    string               `json:"report_title"`
	Rows           []AttentionMetricRow `json:"rows"`
	WhatDoesItMean *string              `json:"what_does_it_mean"`
}

func (r *AreasNeedingAttentionReport) Validate() error {
	if len(r.Rows) > 6 {
		return fmt.Errorf("rows must hold at most 6 entries, got %d", len(r.Rows))
	}
	for i, row := range r.Rows {
		if err := firstErr(
			maxLen(fmt.Sprintf("rows[%d].metric_name", i), row.MetricName, 32),
			maxLen(fmt.Sprintf("rows[%d].how_to_fix", i), row.HowToFix, 94),
		); err != nil {
			return err
		}
	}
	return firstErr(
		maxLen("report_title", r.ReportTitle, 80),
		maxLenPtr("what_does_it_mean", r.WhatDoesItMean, 235),
	)
}

// DriversSection is one grouped explanation on the results-drivers slide.
type DriversSection struct {
	SectionTitle string `json:"section_title"`
	Bullet1      string `json:"bullet_1"`
	Bullet2      string `json:"bullet_2"`
}

type ResultsDriversReport struct {
	ReportTitle string           `json:"report_title"`
	Sections    []DriversSection `json:"sections"`
}

func (r *ResultsDriversReport) Validate() error {
	for i, s := range r.Sections {
		if err := firstErr(
			maxLen(fmt.Sprintf("sections[%d].section_title", i), s.SectionTitle, 22),
			maxLen(fmt.Sprintf("sections[%d].bullet_1", i), s.Bullet1, 78),
			maxLen(fmt.Sprintf("sections[%d].bullet_2", i), s.Bullet2, 78),
		); err != nil {
			return err
		}
	}
	return maxLen("report_title", r.ReportTitle, 80)
}

// DeliverySegment is one delivered-content group.
type DeliverySegment struct {
	SegmentLabel *string `json:"segment_label"`
	Title        *string `json:"title"`
	Summary      *string `json:"summary"`
	PostTypes    *string `json:"post_types"`
}

type DeliverySegmentsReport struct {
	ReportTitle *string           `json:"report_title"`
	Segments    []DeliverySegment `json:"segments"`
}

func (r *DeliverySegmentsReport) Validate() error {
	for i, s := range r.Segments {
		if err := firstErr(
			maxLenPtr(fmt.Sprintf("segments[%d].segment_label", i), s.SegmentLabel, 30),
			maxLenPtr(fmt.Sprintf("segments[%d].title", i), s.Title, 30),
			maxLenPtr(fmt.Sprintf("segments[%d].summary", i), s.Summary, 148),
			maxLenPtr(fmt.Sprintf("segments[%d].post_types", i), s.PostTypes, 30),
		); err != nil {
			return err
		}
	}
	return maxLenPtr("report_title", r.ReportTitle, 60)
}

// ActionPlanRow is one row of the next-month action table.
type ActionPlanRow struct {
	FocusArea string `json:"focus_area"`
	Action    string `json:"action"`
	Goal      string `json:"goal"`
	Execution string `json:"execution"`
}

type ActionPlanReport struct {
	ReportTitle    string          `json:"report_title"`
	Rows           []ActionPlanRow `json:"rows"`
	WhatDoesItMean *string         `json:"what_does_it_mean"`
}

func (r *ActionPlanReport) Validate() error {
	for i, row := range r.Rows {
		if err := firstErr(
			maxLen(fmt.Sprintf("rows[%d].focus_area", i), row.FocusArea, 24),
			maxLen(fmt.Sprintf("rows[%d].action", i), row.Action, 78),
			maxLen(fmt.Sprintf("rows[%d].goal", i), row.Goal, 71),
			maxLen(fmt.Sprintf("rows[%d].execution", i), row.Execution, 78),
		); err != nil {
			return err
		}
	}
	return firstErr(
		maxLen("report_title", r.ReportTitle, 80),
		maxLenPtr("what_does_it_mean", r.WhatDoesItMean, 235),
	)
}

// QuickActionsReport closes the deck with exactly four action bullets.
type QuickActionsReport struct {
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
}

func (r *QuickActionsReport) Validate() error {
	if len(r.Bullets) != 4 {
		return fmt.Errorf("bullets must hold exactly 4 entries, got %d", len(r.Bullets))
	}
	for i, b := range r.Bullets {
		if err := maxLen(fmt.Sprintf("bullets[%d]", i), b, 157); err != nil {
			return err
		}
	}
	return nil
}

// ClosingStatementReport is the final narrative slide.
type ClosingStatementReport struct {
	Headline       string `json:"headline"`
	SupportingText string `json:"supporting_text"`
}

func (r *ClosingStatementReport) Validate() error {
	return firstErr(
		maxLen("headline", r.Headline, 220),
		maxLen("supporting_text", r.SupportingText, 500),
	)
}
