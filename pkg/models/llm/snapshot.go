package llm

import (
	"fmt"

	"github.com/mkt-tools/pulse-report/pkg/models/domain"
)

// BusinessInfo carries the basic identity fields extracted for a business.
type BusinessInfo struct {
	BusinessName *string `json:"business_name"`
	BusinessURL  *string `json:"business_url"`
	Facebook     *string `json:"facebook"`
	Instagram    *string `json:"instagram"`
}

// BusinessSnapshot is the structured result of source extraction: every
// raw analytics blob reduced to one canonical object. Social stats are
// keyed by metric name (facebook_posts, google_ads_clicks, ...); values
// stay strings here, parsing is the normalizer's job.
type BusinessSnapshot struct {
	BusinessInfo      BusinessInfo                 `json:"business_info"`
	AboutThisBusiness *string                      `json:"about_this_business"`
	SocialStats       map[string]domain.TimeSeries `json:"social_stats"`
	DeliveryDates     []domain.RawDelivery         `json:"delivery_dates"`
	RecentPostContent []string                     `json:"recent_post_content"`
}

func (s *BusinessSnapshot) Validate() error {
	for name, series := range s.SocialStats {
		var pt domain.PeriodType
		for i, p := range series.Periods {
			switch p.PeriodType {
			case domain.PeriodWeek, domain.PeriodMonth, domain.PeriodYear:
			default:
				return fmt.Errorf("metric %q period %d: unknown period type %q", name, i, p.PeriodType)
			}
			if pt == "" {
				pt = p.PeriodType
			} else if p.PeriodType != pt {
				return fmt.Errorf("metric %q mixes period types %q and %q", name, pt, p.PeriodType)
			}
		}
	}
	return nil
}

// TrendVerdict is the trend classifier's wire contract.
type TrendVerdict struct {
	Category       string `json:"category"`
	ReasonSelected string `json:"reason_selected"`
}

func (t *TrendVerdict) Validate() error {
	switch domain.TrendCategory(t.Category) {
	case domain.TrendUp, domain.TrendDown:
		return nil
	}
	return fmt.Errorf("category must be %q or %q, got %q", domain.TrendUp, domain.TrendDown, t.Category)
}

// AdsVerdict is the wire contract for the delegated variant of the
// ads-presence scorer. The local scorer in pkg/services/ads is
// authoritative for cohort resolution.
type AdsVerdict struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
	Flag   int    `json:"flag"`
}

func (a *AdsVerdict) Validate() error {
	switch a.Score {
	case 1, 2, 5:
	default:
		return fmt.Errorf("score must be 1, 2 or 5, got %d", a.Score)
	}
	if a.Flag != 0 && a.Flag != 1 {
		return fmt.Errorf("flag must be 0 or 1, got %d", a.Flag)
	}
	return nil
}
