package domain

// SectionName identifies one unit of the final report.
type SectionName string

const (
	SectionIntro              SectionName = "intro"
	SectionDeliverySummary    SectionName = "delivery-summary"
	SectionBigWins            SectionName = "big-wins"
	SectionGrowthAtAGlance    SectionName = "growth-at-a-glance"
	SectionAdsPerformance     SectionName = "ads-performance"
	SectionResultsDrivers     SectionName = "results-drivers"
	SectionPerformanceSummary SectionName = "performance-summary"
	SectionAttentionAreas     SectionName = "attention-areas"
	SectionActionPlan         SectionName = "action-plan"
	SectionQuickActions       SectionName = "quick-actions"
	SectionClosingStatement   SectionName = "closing-statement"
)

// InputKey names a canonical input a section generator reads. The planner
// declares them; the assembler resolves them from the run's bindings.
type InputKey string

const (
	InputIgnitePayload InputKey = "ignite_payload"
	InputSocialStats   InputKey = "social_stats"
	InputZyloData      InputKey = "zylo_data"
	InputDeliveryLog   InputKey = "delivery_log"
	InputPostContent   InputKey = "post_content"
)

// SlideSpec declares one planned section and the inputs its generator
// needs. The planner does not fetch or validate those inputs.
type SlideSpec struct {
	Section  SectionName `json:"section"`
	Requires []InputKey  `json:"requires"`
}

// SlidePlan is the ordered list of sections to generate for one
// (cohort, trend) pair. Purely a function of that pair and the planner
// policy.
type SlidePlan []SlideSpec

func (p SlidePlan) Sections() []SectionName {
	names := make([]SectionName, len(p))
	for i, s := range p {
		names[i] = s.Section
	}
	return names
}
