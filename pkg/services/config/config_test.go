package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mkt-tools/pulse-report/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSettings_Defaults(t *testing.T) {
	settings, err := LoadSettings("")

	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1", settings.Model)
	assert.Equal(t, 4096, settings.MaxTokens)
	assert.Equal(t, 2, settings.GuidelinePasses)
	assert.Equal(t, 3, settings.DetectorRetries)
	assert.Equal(t, ":8080", settings.ListenAddr)
	assert.Empty(t, settings.DeliverySummaryCohorts)
	assert.Empty(t, settings.PlannerPolicy().DeliverySummaryCohorts)
}

func TestLoadSettings_FromFile(t *testing.T) {
	path := writeFile(t, "settings.yaml", `
model: gpt-4o
guideline_passes: 3
delivery_summary_cohorts: ["1", "5"]
database_path: /var/lib/pulse/report.db
`)

	settings, err := LoadSettings(path)

	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", settings.Model)
	assert.Equal(t, 3, settings.GuidelinePasses)
	assert.Equal(t, "/var/lib/pulse/report.db", settings.DatabasePath)
	// Defaults survive partial files.
	assert.Equal(t, 4096, settings.MaxTokens)
	assert.Equal(t, []domain.CohortCode{domain.Cohort1, domain.Cohort5}, settings.PlannerPolicy().DeliverySummaryCohorts)
}

func TestLoadSettings_MissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRuleBook_Default(t *testing.T) {
	book, err := LoadRuleBook("")

	require.NoError(t, err)
	assert.False(t, book.Empty())
	assert.Contains(t, book.ContentGuidelines, "post_type_terms")
	assert.Contains(t, book.FulfillmentLegend, "Ad edit request")
}

func TestLoadRuleBook_FromFile(t *testing.T) {
	path := writeFile(t, "rulebook.yaml", `
content_guidelines:
  tone:
    do: Keep it factual.
    dont: No hype.
validation_checklist:
  intro:
    - report_period present
fulfillment_legend:
  Ongoing Post: Scheduled recurring content.
`)

	book, err := LoadRuleBook(path)

	require.NoError(t, err)
	assert.Equal(t, "Keep it factual.", book.ContentGuidelines["tone"].Do)
	assert.Equal(t, []string{"report_period present"}, book.ValidationChecklist["intro"])
}

func TestLoadRuleBook_EmptyFileRejected(t *testing.T) {
	path := writeFile(t, "rulebook.yaml", `content_guidelines: {}`)

	_, err := LoadRuleBook(path)
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	path := writeFile(t, "profiles.ini", `
[driftwood-coffee]
quicksight_file = /data/driftwood/quicksight.txt
ignite_file = /data/driftwood/ignite.json
zylo_file = /data/driftwood/zylo.csv

[harbor-gym]
ignite_file = /data/harbor/ignite.json
msp_file = /data/harbor/msp.txt
`)

	registry, err := NewRegistry(path)
	require.NoError(t, err)

	profiles, err := registry.Profiles()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"driftwood-coffee", "harbor-gym"}, profiles)

	profile, err := registry.Profile("driftwood-coffee")
	require.NoError(t, err)
	assert.Equal(t, "/data/driftwood/quicksight.txt", profile.QuicksightFile)
	assert.Empty(t, profile.MSPFile)

	_, err = registry.Profile("unknown-biz")
	assert.Error(t, err)
}
