package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mkt-tools/pulse-report/pkg/llm"
	"github.com/mkt-tools/pulse-report/pkg/models/domain"
	modelsllm "github.com/mkt-tools/pulse-report/pkg/models/llm"
)

// Generator produces one section's payload from its declared inputs.
// Inputs arrive already resolved by the assembler; an input the run could
// not provide is bound to the MissingInput sentinel.
type Generator func(ctx context.Context, inputs map[domain.InputKey]any) (any, error)

// Registry maps section names to their generators.
type Registry map[domain.SectionName]Generator

// NewGenerators wires the full slide-generator set against the completion
// service.
func NewGenerators(completer llm.Completer) Registry {
	return Registry{
		domain.SectionIntro:              generate[modelsllm.IntroReport](completer, introPrompt),
		domain.SectionDeliverySummary:    generate[modelsllm.DeliverySegmentsReport](completer, deliverySummaryPrompt),
		domain.SectionBigWins:            generate[modelsllm.BigWinsReport](completer, bigWinsPrompt),
		domain.SectionGrowthAtAGlance:    generate[modelsllm.GrowthAtGlanceReport](completer, growthAtGlancePrompt),
		domain.SectionAdsPerformance:     generate[modelsllm.AdsPerformanceReport](completer, adsPerformancePrompt),
		domain.SectionResultsDrivers:     generate[modelsllm.ResultsDriversReport](completer, resultsDriversPrompt),
		domain.SectionPerformanceSummary: generate[modelsllm.PerformanceOverviewReport](completer, performanceSummaryPrompt),
		domain.SectionAttentionAreas:     generate[modelsllm.AreasNeedingAttentionReport](completer, attentionAreasPrompt),
		domain.SectionActionPlan:         generate[modelsllm.ActionPlanReport](completer, actionPlanPrompt),
	}
}

// generate builds a Generator that embeds the section's inputs into the
// prompt and decodes the completion into T, enforcing T's constraints.
func generate[T any](completer llm.Completer, prompt sectionPrompt) Generator {
	return func(ctx context.Context, inputs map[domain.InputKey]any) (any, error) {
		payload, err := json.MarshalIndent(inputs, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode section inputs: %w", err)
		}

		user := fmt.Sprintf("%s\n\n<inputs>\n%s\n</inputs>\n\nReturn the JSON object.", prompt.user, payload)
		out, err := llm.Invoke[T](ctx, completer, prompt.system, user)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
}

type sectionPrompt struct {
	system string
	user   string
}

var (
	introPrompt = sectionPrompt{
		system: `You write the opening slide of a monthly marketing report for a small
business. Extract the business identity and the covered period from the
inputs. Return JSON:
{"report_title", "report_period", "business_info": {"business_name",
"website", "category", "address", "facebook", "instagram"}}`,
		user: "Build the intro slide from these inputs.",
	}

	deliverySummaryPrompt = sectionPrompt{
		system: `You summarize what was delivered for a small business this period.
Group delivered content into segments. Return JSON:
{"report_title" (<=60 chars), "segments": [{"segment_label" (<=30),
"title" (<=30), "summary" (<=148), "post_types" (<=30)}]}
Use the terms "Ongoing Social Media Post" and "On-Demand Post" exactly.`,
		user: "Build the delivery summary from these inputs.",
	}

	bigWinsPrompt = sectionPrompt{
		system: `You highlight this period's wins from social media statistics. Only
include platforms with data; use null for absent blocks. Return JSON:
{"facebook": {"posts": {"start_value","end_value","start_period","end_period"},
 "impressions": {...}, "one_line_summary" (<=94 chars)},
 "instagram": {...}, "facebook_ads": {"click_through_rate_start",
 "click_through_rate_end", "cost_per_click_start", "cost_per_click_end",
 "start_period", "end_period", "one_line_summary" (<=94)},
 "google_ads": {...}, "what_does_it_mean" (<=235 chars, required)}
Expand acronyms on first use (CTR = Click Through Rate).`,
		user: "Build the big-wins slide from these inputs.",
	}

	growthAtGlancePrompt = sectionPrompt{
		system: `You build a growth-at-a-glance metric table from social media
statistics. One row per metric with start/end values and the change
string. Return JSON:
{"rows": [{"metric_name", "start_value", "end_value", "change_percentage",
"start_period", "end_period"}], "what_does_it_mean" (<=235 chars)}
Show 0 where a metric is confirmed zero; keep the provided arrows.`,
		user: "Build the growth-at-a-glance table from these inputs.",
	}

	adsPerformancePrompt = sectionPrompt{
		system: `You report how paid advertising performed. One row per campaign or
platform. Return JSON:
{"report_title" (<=80 chars), "rows": [{"ad_label" (<=68),
"performance_summary" (<=71), "metrics_line" (<=90)}],
"what_does_it_mean" (<=235)}
If ads are paused, state "No active ads this month; only On-Demand
boosted posts were run."`,
		user: "Build the ads-performance slide from these inputs.",
	}

	resultsDriversPrompt = sectionPrompt{
		system: `You explain what drove this period's results, grouped into short
sections. Return JSON:
{"report_title" (<=80 chars), "sections": [{"section_title" (<=22),
"bullet_1" (<=78), "bullet_2" (<=78)}]}`,
		user: "Build the results-drivers slide from these inputs.",
	}

	performanceSummaryPrompt = sectionPrompt{
		system: `You summarize overall performance for a period where metrics
declined. Be factual, not alarmist. Only include platforms with data.
Return JSON with the same shape as the big-wins slide:
{"facebook", "instagram", "facebook_ads", "google_ads",
"what_does_it_mean" (<=235 chars)}`,
		user: "Build the performance-summary slide from these inputs.",
	}

	attentionAreasPrompt = sectionPrompt{
		system: `You list the metrics that need attention (declining or flat) with a
fix for each. At most 6 rows. Return JSON:
{"report_title" (<=80 chars), "rows": [{"metric_name" (<=32),
"periods": [{"period_label", "value"}], "how_to_fix" (<=94)}],
"what_does_it_mean" (<=235)}
Phrase fixes as customer instruction -> fulfillment action, e.g.
"Request edits -> Fulfillment updates ad visuals."`,
		user: "Build the attention-areas slide from these inputs.",
	}

	actionPlanPrompt = sectionPrompt{
		system: `You build next month's action plan table. Return JSON:
{"report_title" (<=80 chars), "rows": [{"focus_area" (<=24),
"action" (<=78), "goal" (<=71), "execution" (<=78)}],
"what_does_it_mean" (<=235)}
Every action maps to something Fulfillment can deliver (On-Demand Post
requests, Ad edits, Ongoing Social Media Posts).`,
		user: "Build the action-plan slide from these inputs.",
	}
)

// Final narrative prompts. These run after assembly over the whole
// report, not as planned sections.
var (
	quickActionsPrompt = sectionPrompt{
		system: `You write the "Quick Actions for You" closing slide. Exactly 4
bullets (<=157 chars each) telling the business what to share or which
request type (Ad edit, On-Demand, Ongoing Post) to submit. Return JSON:
{"title": "Quick Actions for You", "bullets": ["...", "...", "...", "..."]}`,
		user: "Derive the quick actions from the generated report and the preprocessed input.",
	}

	closingStatementPrompt = sectionPrompt{
		system: `You write the closing statement slide. Return JSON:
{"headline" (<=220 chars, starts with the brand name, summarizes what
the brand achieved this period), "supporting_text" (<=500 chars, 1-2
sentences highlighting a key result)}`,
		user: "Derive the closing statement from the generated report and the preprocessed input.",
	}
)
