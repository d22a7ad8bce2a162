package compliance

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mkt-tools/pulse-report/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedDetector struct {
	passes [][]domain.Violation
	errs   []error
	calls  int
}

func (d *scriptedDetector) Detect(_ context.Context, _ domain.Report, _ domain.RuleBook) ([]domain.Violation, error) {
	i := d.calls
	d.calls++
	var err error
	if i < len(d.errs) {
		err = d.errs[i]
	}
	if err != nil {
		return nil, err
	}
	if i < len(d.passes) {
		return d.passes[i], nil
	}
	return nil, nil
}

func violation(section, payload string) domain.Violation {
	return domain.Violation{
		Section: domain.SectionName(section),
		Reason:  "fails terminology consistency",
		Updated: json.RawMessage(payload),
	}
}

func baseReport() domain.Report {
	return domain.Report{
		domain.SectionIntro:      map[string]any{"report_title": "October Report"},
		domain.SectionActionPlan: map[string]any{"rows": []any{}},
	}
}

func TestReconcile_CleanFirstPass(t *testing.T) {
	detector := &scriptedDetector{}
	report := baseReport()

	got := Reconcile(context.Background(), detector, report, domain.RuleBook{}, 2)

	assert.Equal(t, report, got)
	assert.Equal(t, 1, detector.calls)
}

func TestReconcile_PatchesExistingSection(t *testing.T) {
	detector := &scriptedDetector{
		passes: [][]domain.Violation{
			{violation("intro", `{"report_title": "October Performance Report"}`)},
			nil,
		},
	}

	got := Reconcile(context.Background(), detector, baseReport(), domain.RuleBook{}, 2)

	assert.Equal(t, map[string]any{"report_title": "October Performance Report"}, got[domain.SectionIntro])
	assert.Contains(t, got, domain.SectionActionPlan)
	assert.Equal(t, 2, detector.calls)
}

func TestReconcile_SkipsUnknownSection(t *testing.T) {
	detector := &scriptedDetector{
		passes: [][]domain.Violation{
			{violation("made-up-section", `{"x": 1}`)},
			nil,
		},
	}
	report := baseReport()

	got := Reconcile(context.Background(), detector, report, domain.RuleBook{}, 2)

	assert.Equal(t, report, got)
	assert.NotContains(t, got, domain.SectionName("made-up-section"))
}

func TestReconcile_BoundedPasses(t *testing.T) {
	// The detector keeps reporting violations; reconciliation must stop
	// at the pass budget anyway.
	noisy := [][]domain.Violation{
		{violation("intro", `{"report_title": "v1"}`)},
		{violation("intro", `{"report_title": "v2"}`)},
		{violation("intro", `{"report_title": "v3"}`)},
	}
	detector := &scriptedDetector{passes: noisy}

	got := Reconcile(context.Background(), detector, baseReport(), domain.RuleBook{}, 2)

	assert.Equal(t, 2, detector.calls)
	assert.Equal(t, map[string]any{"report_title": "v2"}, got[domain.SectionIntro])
}

func TestReconcile_FailOpenOnDetectorError(t *testing.T) {
	detector := &scriptedDetector{errs: []error{errors.New("service down")}}
	report := baseReport()

	got := Reconcile(context.Background(), detector, report, domain.RuleBook{}, 2)

	assert.Equal(t, report, got)
	assert.Equal(t, 1, detector.calls)
}

func TestReconcile_Idempotent(t *testing.T) {
	first := Reconcile(context.Background(), &scriptedDetector{
		passes: [][]domain.Violation{
			{violation("intro", `{"report_title": "fixed"}`)},
			nil,
		},
	}, baseReport(), domain.RuleBook{}, 2)

	// A compliant report run through again returns unchanged.
	second := Reconcile(context.Background(), &scriptedDetector{}, first, domain.RuleBook{}, 2)

	assert.Equal(t, first, second)
}

func TestReconcile_DoesNotMutateInput(t *testing.T) {
	detector := &scriptedDetector{
		passes: [][]domain.Violation{
			{violation("intro", `{"report_title": "patched"}`)},
			nil,
		},
	}
	report := baseReport()

	_ = Reconcile(context.Background(), detector, report, domain.RuleBook{}, 2)

	assert.Equal(t, map[string]any{"report_title": "October Report"}, report[domain.SectionIntro])
}

func TestDetector_RetriesThenFails(t *testing.T) {
	fake := &countingCompleter{err: errors.New("boom")}
	d := NewDetector(fake, 3)

	_, err := d.Detect(context.Background(), baseReport(), domain.RuleBook{})

	require.Error(t, err)
	assert.Equal(t, 3, fake.calls)
}

func TestDetector_ParsesFencedArray(t *testing.T) {
	fake := &countingCompleter{response: "```json\n[{\"slide_name\": \"intro\", \"violation_reason\": \"r\", \"updated_dict\": {\"a\": 1}}]\n```"}
	d := NewDetector(fake, 3)

	violations, err := d.Detect(context.Background(), baseReport(), domain.RuleBook{})

	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, domain.SectionIntro, violations[0].Section)
}

type countingCompleter struct {
	response string
	err      error
	calls    int
}

func (c *countingCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	c.calls++
	return c.response, c.err
}
