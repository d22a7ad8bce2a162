package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mkt-tools/pulse-report/pkg/models/domain"
)

// LoadRuleBook reads the guideline rulebook from a YAML file. An empty
// path yields the built-in book.
func LoadRuleBook(path string) (domain.RuleBook, error) {
	if path == "" {
		return DefaultRuleBook(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return domain.RuleBook{}, fmt.Errorf("failed to read rulebook file: %w", err)
	}

	var book domain.RuleBook
	if err := v.Unmarshal(&book); err != nil {
		return domain.RuleBook{}, fmt.Errorf("failed to parse rulebook: %w", err)
	}
	if book.Empty() {
		return domain.RuleBook{}, fmt.Errorf("rulebook file %s holds no rules", path)
	}
	return book, nil
}

// DefaultRuleBook is the built-in guideline set the reconciler enforces
// when no rulebook file is configured.
func DefaultRuleBook() domain.RuleBook {
	return domain.RuleBook{
		ContentGuidelines: map[string]domain.GuidelineRule{
			"acronyms": {
				Do:   "Expand acronyms on first use, e.g. CTR (Click Through Rate), CPC (Cost Per Click).",
				Dont: "Do not use a bare acronym before it has been expanded once in the report.",
			},
			"post_type_terms": {
				Do:   "Use exactly 'Ongoing Social Media Post' and 'On-Demand Post' for delivered content.",
				Dont: "Do not use informal variants such as 'OnGoing', 'On Demand' or pluralized mixes.",
			},
			"tone": {
				Do:   "State declines factually and pair every decline with a concrete next step.",
				Dont: "Do not use alarmist language or blame the business for a slow period.",
			},
			"numbers": {
				Do:   "Quote the exact values and period labels from the statistics provided.",
				Dont: "Do not invent, extrapolate or round numbers beyond one decimal place.",
			},
			"actionability": {
				Do:   "Phrase every recommendation as something the business can request from Fulfillment.",
				Dont: "Do not recommend work that is outside the delivered service (e.g. website rebuilds).",
			},
		},
		ValidationChecklist: map[string][]string{
			"intro": {
				"report_period names the covered month or week range",
				"business_info matches the extracted identity fields",
			},
			"quick-actions": {
				"exactly four bullets",
				"every bullet names a shareable item or a request type",
			},
			"closing-statement": {
				"headline starts with the business name",
				"supporting_text cites one concrete result from the report",
			},
		},
		FulfillmentLegend: map[string]string{
			"Ad edit request":   "Fulfillment updates ad copy, targeting or visuals.",
			"On-Demand request": "Fulfillment produces a one-off post from the business's materials.",
			"Ongoing Post":      "Fulfillment publishes the scheduled recurring content.",
		},
	}
}
