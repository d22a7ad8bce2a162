// Package extract turns the raw source blobs a run receives into one
// structured BusinessSnapshot via the completion service. The core never
// parses the source text itself; it consumes the extraction's output.
package extract

import (
	"context"
	"fmt"

	"github.com/mkt-tools/pulse-report/pkg/llm"
	"github.com/mkt-tools/pulse-report/pkg/models/domain"
	modelsllm "github.com/mkt-tools/pulse-report/pkg/models/llm"
)

// SourceData carries the raw analytics text for one run. Empty string
// means the source is absent for this business.
type SourceData struct {
	Quicksight string
	Zylo       string
	Ignite     string
	MSP        string
}

type Extractor interface {
	Snapshot(ctx context.Context, sources SourceData) (*modelsllm.BusinessSnapshot, error)
}

type extractor struct {
	completer llm.Completer
}

func NewExtractor(completer llm.Completer) Extractor {
	return &extractor{completer: completer}
}

const systemPrompt = `You are a data transformation specialist. Extract and structure
business performance data from multiple sources into a standardized JSON format.

Rules:
- Extract values exactly as they appear; use null for missing fields.
- Never invent data that is not present.
- For each metric build a chronological "periods" list of
  {"period_type": "week"|"month"|"year", "period_label": "<short label>", "value": "<string or null>"}.
- All periods of one metric share the same period_type; prefer the most
  specific granularity the source offers.
- Keep metric values as strings, preserving commas and percent formatting.
- Delivery entries need "social_post_type" and an ISO-8601 "resolved" timestamp when present.
- URLs must include the protocol.

Return a JSON object:
{"business_info": {"business_name", "business_url", "facebook", "instagram"},
 "about_this_business": <string|null>,
 "social_stats": {"<metric_name>": {"periods": [...]}, ...},
 "delivery_dates": [{"social_post_type", "resolved"}, ...],
 "recent_post_content": [<string>, ...] | null}

Use snake_case metric names such as facebook_posts, facebook_impressions,
facebook_ads_clicks, facebook_ads_ctr, google_search_impressions,
google_ads_clicks, google_ads_cpm, on_demand_post_requests,
ongoing_post_requests.`

func (e *extractor) Snapshot(ctx context.Context, sources SourceData) (*modelsllm.BusinessSnapshot, error) {
	user := fmt.Sprintf(`Structure the following data sources:

**QuickSight Data:**
<quicksight_data>
%s
</quicksight_data>

**Zylo V6 Data:**
<zylo_v6_data>
%s
</zylo_v6_data>

**MSP Data:**
<msp_data>
%s
</msp_data>

**Ignite API Data:**
<ignite_api_data>
%s
</ignite_api_data>

Return the BusinessSnapshot JSON object.`, sources.Quicksight, sources.Zylo, sources.MSP, sources.Ignite)

	snapshot, err := llm.Invoke[modelsllm.BusinessSnapshot](ctx, e.completer, systemPrompt, user)
	if err != nil {
		return nil, fmt.Errorf("extract snapshot: %w", err)
	}
	return snapshot, nil
}

// Presence reports which sources carry data, the way the cohort resolver
// expects it.
func (s SourceData) Presence() domain.SourcePresence {
	return domain.SourcePresence{
		Quicksight: s.Quicksight != "",
		Zylo:       s.Zylo != "",
		Ignite:     s.Ignite != "",
		MSP:        s.MSP != "",
	}
}
