package delivery

import (
	"testing"

	"github.com/mkt-tools/pulse-report/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestCleanTerm(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "ongoing shorthand", in: "OnGoing", want: "Ongoing Social Media Post"},
		{name: "ongoing social post", in: "Ongoing Social Post", want: "Ongoing Social Media Post"},
		{name: "ongoing social posts plural", in: "Ongoing Social Posts", want: "Ongoing Social Media Post"},
		{name: "already canonical ongoing", in: "Ongoing Social Media Post", want: "Ongoing Social Media Post"},
		{name: "on demand with space", in: "On Demand", want: "On-Demand Post"},
		{name: "on-demand singular", in: "On-Demand Post", want: "On-Demand Post"},
		{name: "on-demand plural", in: "On-Demand Posts", want: "On-Demand Post"},
		{name: "unknown label passes through", in: "Story Highlight", want: "Story Highlight"},
		{name: "embedded variant", in: "Weekly OnGoing", want: "Weekly Ongoing Social Media Post"},
		{name: "embedded plural variant", in: "2x On-Demand Posts", want: "2x On-Demand Post"},
		{name: "whitespace trimmed", in: "  OnGoing  ", want: "Ongoing Social Media Post"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanTerm(strp(tt.in))
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestCleanTerm_Nil(t *testing.T) {
	assert.Nil(t, CleanTerm(nil))
}

func TestCleanTerm_Deterministic(t *testing.T) {
	// Canonicalizing twice must be a no-op: later rules may not rewrite
	// the output of earlier ones.
	for _, in := range []string{"OnGoing", "On Demand", "Ongoing Social Posts", "On-Demand Posts"} {
		once := CleanTerm(strp(in))
		twice := CleanTerm(once)
		require.NotNil(t, twice)
		assert.Equal(t, *once, *twice, "input %q", in)
	}
}

func TestCleanDeliveries(t *testing.T) {
	resolved := "2025-10-03T14:22:00Z"
	raw := []domain.RawDelivery{
		{SocialPostType: strp("OnGoing"), Resolved: &resolved},
		{SocialPostType: strp("On Demand"), Resolved: nil},
		{SocialPostType: nil, Resolved: nil},
	}

	records := CleanDeliveries(raw)

	require.Len(t, records, 3)
	assert.Equal(t, "Ongoing Social Media Post", records[0].SocialPostType)
	assert.Equal(t, &resolved, records[0].Resolved)
	assert.Equal(t, "On-Demand Post", records[1].SocialPostType)
	assert.Empty(t, records[2].SocialPostType)
}
