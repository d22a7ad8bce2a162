// Package ads scores paid-advertising presence from normalized metrics.
// The decision table feeds the cohort resolver, so it runs locally and
// deterministically rather than through the completion service.
package ads

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mkt-tools/pulse-report/pkg/models/domain"
)

// Only fields naming the platform followed by "Ad"/"Ads" count as
// advertising data. General platform metrics (posts, impressions, likes,
// site/call clicks) are excluded.
var (
	facebookAds = regexp.MustCompile(`(?i)facebook[ _-]*ads?(?:[ _-]|$)`)
	googleAds   = regexp.MustCompile(`(?i)google[ _-]*ads?(?:[ _-]|$)`)
)

// Score classifies which ad platforms have reportable fields and whether
// any carry activity. Presence is purely name-based: a counted field with
// all-zero values is still present. Flag is AdsFlagActive only when some
// counted field holds a non-nil, non-zero period value.
func Score(stats map[string]domain.NormalizedMetric) domain.AdsScore {
	var fbFields, googleFields []string
	active := false

	for name, metric := range stats {
		isFB := facebookAds.MatchString(name)
		isGoogle := googleAds.MatchString(name)
		if !isFB && !isGoogle {
			continue
		}

		if isFB {
			fbFields = append(fbFields, name)
		}
		if isGoogle {
			googleFields = append(googleFields, name)
		}

		if !active {
			for _, p := range metric.Periods {
				if p.Value != nil && *p.Value != 0 {
					active = true
					break
				}
			}
		}
	}

	sort.Strings(fbFields)
	sort.Strings(googleFields)

	score := domain.AdsScore{Flag: domain.AdsFlagInactive}
	if active {
		score.Flag = domain.AdsFlagActive
	}

	switch {
	case len(fbFields) > 0 && len(googleFields) > 0:
		score.Score = 1
		score.Reason = fmt.Sprintf("both Facebook Ads (%s) and Google Ads (%s) fields present",
			strings.Join(fbFields, ", "), strings.Join(googleFields, ", "))
	case len(googleFields) > 0:
		score.Score = 5
		score.Reason = fmt.Sprintf("only Google Ads fields present (%s)", strings.Join(googleFields, ", "))
	case len(fbFields) > 0:
		score.Score = 2
		score.Reason = fmt.Sprintf("only Facebook Ads fields present (%s)", strings.Join(fbFields, ", "))
	default:
		score.Score = 2
		score.Reason = "no advertising fields present"
	}

	return score
}
