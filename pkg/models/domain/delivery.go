package domain

// RawDelivery is a delivery/resolution entry as extracted from the
// fulfillment source, before terminology cleanup.
type RawDelivery struct {
	SocialPostType *string `json:"social_post_type"`
	Resolved       *string `json:"resolved"`
}

// DeliveryRecord is a cleaned delivery entry. SocialPostType carries the
// canonical post-type label; Resolved is an ISO-8601 timestamp when the
// item was fulfilled, nil when still open.
type DeliveryRecord struct {
	SocialPostType string  `json:"social_post_type"`
	Resolved       *string `json:"resolved"`
}
