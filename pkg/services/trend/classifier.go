// Package trend classifies an account's trajectory over the reporting
// window. The judgment is delegated to the completion service; this
// package owns the contract, the prompt, and validation of the verdict.
package trend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mkt-tools/pulse-report/pkg/llm"
	"github.com/mkt-tools/pulse-report/pkg/models/domain"
	modelsllm "github.com/mkt-tools/pulse-report/pkg/models/llm"
)

type Classifier interface {
	Classify(ctx context.Context, stats map[string]domain.NormalizedMetric) (domain.TrendCall, error)
}

type classifier struct {
	completer llm.Completer
}

func NewClassifier(completer llm.Completer) Classifier {
	return &classifier{completer: completer}
}

const systemPrompt = `You are a marketing analytics classifier. Analyze social media
statistics and classify the account's overall trajectory.

Classification rules:
1. Compare each metric's first period against its last period.
2. Ignore metrics where any period is null.
3. Determine the overall trend by majority: UPTREND if the majority of
   metrics increased, DOWNTREND if the majority decreased.
4. If increases and decreases are exactly equal, break the tie using the
   more significant metrics: impressions, clicks, engagement (likes,
   followers), then ad efficiency (CTR, CPC, CPM).
5. For rate metrics remember direction of goodness: higher CTR is good,
   lower CPC is good.

Return JSON with exactly two fields:
{"category": "uptrend"|"downtrend", "reason_selected": "<2-3 sentences citing specific metrics, their changes and the period labels>"}`

func (c *classifier) Classify(ctx context.Context, stats map[string]domain.NormalizedMetric) (domain.TrendCall, error) {
	payload, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return domain.TrendCall{}, fmt.Errorf("encode stats: %w", err)
	}

	user := fmt.Sprintf(`Analyze the following social media statistics and determine the
overall trend across the available time periods:

<social_stats>
%s
</social_stats>

Count how many metrics increased vs decreased from first to last period,
identify the key movements, and return your verdict as JSON.`, payload)

	verdict, err := llm.Invoke[modelsllm.TrendVerdict](ctx, c.completer, systemPrompt, user)
	if err != nil {
		return domain.TrendCall{}, fmt.Errorf("classify trend: %w", err)
	}

	return domain.TrendCall{
		Category: domain.TrendCategory(verdict.Category),
		Reason:   verdict.ReasonSelected,
	}, nil
}
