// Package delivery cleans fulfillment log entries: free-text post-type
// labels are mapped onto the fixed reporting vocabulary.
package delivery

import (
	"strings"

	"github.com/mkt-tools/pulse-report/pkg/models/domain"
)

// Canonical post-type labels. Every known variant collapses onto one of
// these.
const (
	OngoingPost  = "Ongoing Social Media Post"
	OnDemandPost = "On-Demand Post"
)

// variants maps known post-type spellings onto canonical labels. Matching
// a whole label here is the primary path; it is order-free and cannot
// produce the compounding rewrites ordered find-replace rules allow.
var variants = map[string]string{
	"OnGoing":                    OngoingPost,
	"Ongoing Social Post":        OngoingPost,
	"Ongoing Social Posts":       OngoingPost,
	"Ongoing Social Media Post":  OngoingPost,
	"Ongoing Social Media Posts": OngoingPost,
	"On Demand":                  OnDemandPost,
	"On-Demand Post":             OnDemandPost,
	"On-Demand Posts":            OnDemandPost,
}

// replacements is the fallback for labels that merely embed a variant
// (e.g. "Weekly OnGoing"). Applied in this exact order: plural and
// longer spellings first so their output is never rewritten again by a
// shorter rule.
var replacements = []struct {
	old string
	new string
}{
	{"Ongoing Social Media Posts", OngoingPost},
	{"Ongoing Social Posts", OngoingPost},
	{"Ongoing Social Post", OngoingPost},
	{"OnGoing", OngoingPost},
	{"On-Demand Posts", OnDemandPost},
	{"On-Demand Post", OnDemandPost},
	{"On Demand", OnDemandPost},
}

// CleanTerm maps a raw post-type label onto the canonical vocabulary.
// Unknown labels pass through unchanged; nil stays nil.
func CleanTerm(text *string) *string {
	if text == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*text)
	if canonical, ok := variants[trimmed]; ok {
		return &canonical
	}

	out := trimmed
	for _, r := range replacements {
		out = strings.ReplaceAll(out, r.old, r.new)
	}
	return &out
}

// CleanDeliveries maps raw delivery entries to DeliveryRecords with
// canonicalized post types. Entries without a post type are kept with an
// empty label so the fulfillment count stays accurate.
func CleanDeliveries(raw []domain.RawDelivery) []domain.DeliveryRecord {
	out := make([]domain.DeliveryRecord, 0, len(raw))
	for _, d := range raw {
		record := domain.DeliveryRecord{Resolved: d.Resolved}
		if cleaned := CleanTerm(d.SocialPostType); cleaned != nil {
			record.SocialPostType = *cleaned
		}
		out = append(out, record)
	}
	return out
}
