package domain

// GuidelineRule is one do/don't pair from the compliance rulebook.
type GuidelineRule struct {
	Do   string `json:"do" mapstructure:"do"`
	Dont string `json:"dont" mapstructure:"dont"`
}

// RuleBook is the static compliance rulebook the reconciler checks
// assembled reports against. Loaded once at startup and passed explicitly;
// never kept as package state.
type RuleBook struct {
	ContentGuidelines   map[string]GuidelineRule `json:"content_guidelines" mapstructure:"content_guidelines"`
	ValidationChecklist map[string][]string      `json:"validation_checklist" mapstructure:"validation_checklist"`
	FulfillmentLegend   map[string]string        `json:"fulfillment_legend" mapstructure:"fulfillment_legend"`
}

func (r RuleBook) Empty() bool {
	return len(r.ContentGuidelines) == 0 && len(r.ValidationChecklist) == 0 && len(r.FulfillmentLegend) == 0
}
