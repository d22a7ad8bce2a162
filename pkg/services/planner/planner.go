// Package planner decides which report sections a run generates and what
// inputs each needs, given the cohort code and trend category.
package planner

import (
	"slices"

	"github.com/mkt-tools/pulse-report/pkg/models/domain"
)

// Policy configures planner behavior where two revisions of the slide map
// disagree. DeliverySummaryCohorts lists the cohorts that get a
// delivery-summary section inserted right after the intro, on both trend
// branches; empty (the default) keeps the base slide map, where only the
// cohort-8 plan carries a delivery summary.
type Policy struct {
	DeliverySummaryCohorts []domain.CohortCode
}

var (
	adsPerformanceCohorts = []domain.CohortCode{
		domain.Cohort1, domain.Cohort5, domain.Cohort6a, domain.Cohort7a,
	}
	resultsDriversCohorts = []domain.CohortCode{
		domain.Cohort1, domain.Cohort2, domain.Cohort5,
		domain.Cohort6a, domain.Cohort6b, domain.Cohort7a, domain.Cohort7b,
	}
)

// Plan returns the ordered sections for a (cohort, trend) pair. It is a
// pure function of its arguments: same inputs, same plan. It neither
// fetches nor validates the declared inputs — that is the assembler's job.
func Plan(cohort domain.CohortCode, trend domain.TrendCategory, policy Policy) domain.SlidePlan {
	// Cohort 8 is a hard override: a fixed three-section plan, trend and
	// policy notwithstanding.
	if cohort == domain.Cohort8 {
		return domain.SlidePlan{
			{Section: domain.SectionIntro, Requires: []domain.InputKey{domain.InputIgnitePayload, domain.InputSocialStats}},
			{Section: domain.SectionDeliverySummary, Requires: []domain.InputKey{domain.InputZyloData}},
			{Section: domain.SectionActionPlan, Requires: []domain.InputKey{domain.InputSocialStats}},
		}
	}

	plan := domain.SlidePlan{
		{Section: domain.SectionIntro, Requires: []domain.InputKey{domain.InputIgnitePayload, domain.InputSocialStats}},
	}

	if slices.Contains(policy.DeliverySummaryCohorts, cohort) {
		plan = append(plan, domain.SlideSpec{
			Section:  domain.SectionDeliverySummary,
			Requires: []domain.InputKey{domain.InputDeliveryLog, domain.InputPostContent},
		})
	}

	switch trend {
	case domain.TrendUp:
		plan = append(plan,
			domain.SlideSpec{Section: domain.SectionBigWins, Requires: []domain.InputKey{domain.InputSocialStats}},
			domain.SlideSpec{Section: domain.SectionGrowthAtAGlance, Requires: []domain.InputKey{domain.InputSocialStats}},
		)
		if slices.Contains(adsPerformanceCohorts, cohort) {
			plan = append(plan, domain.SlideSpec{
				Section:  domain.SectionAdsPerformance,
				Requires: []domain.InputKey{domain.InputSocialStats},
			})
		}
		if slices.Contains(resultsDriversCohorts, cohort) {
			plan = append(plan, domain.SlideSpec{
				Section:  domain.SectionResultsDrivers,
				Requires: []domain.InputKey{domain.InputSocialStats, domain.InputIgnitePayload},
			})
		}
		plan = append(plan, domain.SlideSpec{
			Section:  domain.SectionActionPlan,
			Requires: []domain.InputKey{domain.InputSocialStats},
		})

	case domain.TrendDown:
		plan = append(plan,
			domain.SlideSpec{Section: domain.SectionPerformanceSummary, Requires: []domain.InputKey{domain.InputSocialStats}},
			domain.SlideSpec{Section: domain.SectionAttentionAreas, Requires: []domain.InputKey{domain.InputSocialStats}},
			domain.SlideSpec{Section: domain.SectionAdsPerformance, Requires: []domain.InputKey{domain.InputSocialStats}},
			domain.SlideSpec{Section: domain.SectionActionPlan, Requires: []domain.InputKey{domain.InputSocialStats}},
		)
	}

	return plan
}
