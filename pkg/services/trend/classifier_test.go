package trend

import (
	"context"
	"errors"
	"testing"

	"github.com/mkt-tools/pulse-report/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	response string
	err      error
	lastUser string
}

func (f *fakeCompleter) Complete(_ context.Context, _, user string) (string, error) {
	f.lastUser = user
	return f.response, f.err
}

func TestClassify(t *testing.T) {
	fake := &fakeCompleter{
		response: `{"category": "downtrend", "reason_selected": "11 of 16 metrics declined from Week 1 to Week 3."}`,
	}
	c := NewClassifier(fake)

	call, err := c.Classify(context.Background(), map[string]domain.NormalizedMetric{
		"facebook_posts": {Change: "▼ -20.0%", PeriodCount: 3},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.TrendDown, call.Category)
	assert.Contains(t, call.Reason, "11 of 16")
	assert.Contains(t, fake.lastUser, "facebook_posts")
}

func TestClassify_FencedResponse(t *testing.T) {
	fake := &fakeCompleter{
		response: "```json\n{\"category\": \"uptrend\", \"reason_selected\": \"Majority of metrics grew.\"}\n```",
	}
	c := NewClassifier(fake)

	call, err := c.Classify(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, domain.TrendUp, call.Category)
}

func TestClassify_RejectsUnknownCategory(t *testing.T) {
	fake := &fakeCompleter{
		response: `{"category": "sideways", "reason_selected": "flat"}`,
	}
	c := NewClassifier(fake)

	_, err := c.Classify(context.Background(), nil)

	assert.Error(t, err)
}

func TestClassify_ServiceFailure(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("service unavailable")}
	c := NewClassifier(fake)

	_, err := c.Classify(context.Background(), nil)

	assert.Error(t, err)
}
