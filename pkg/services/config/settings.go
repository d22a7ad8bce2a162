// Package config loads the engine settings, the guideline rulebook, and
// the business-profiles registry.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mkt-tools/pulse-report/pkg/models/domain"
	"github.com/mkt-tools/pulse-report/pkg/services/planner"
)

// Settings is the YAML-backed engine configuration. Completion-service
// credentials stay in the environment; this file only tunes behavior.
type Settings struct {
	Model                  string   `mapstructure:"model"`
	Temperature            float64  `mapstructure:"temperature"`
	MaxTokens              int      `mapstructure:"max_tokens"`
	GuidelinePasses        int      `mapstructure:"guideline_passes"`
	DetectorRetries        int      `mapstructure:"detector_retries"`
	DeliverySummaryCohorts []string `mapstructure:"delivery_summary_cohorts"`
	ListenAddr             string   `mapstructure:"listen_addr"`
	DatabasePath           string   `mapstructure:"database_path"`
	ProfilesPath           string   `mapstructure:"profiles_path"`
	RulebookPath           string   `mapstructure:"rulebook_path"`
}

// LoadSettings reads the settings file at path. An empty path yields the
// defaults.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetDefault("model", "gpt-4.1")
	v.SetDefault("temperature", 0.0)
	v.SetDefault("max_tokens", 4096)
	v.SetDefault("guideline_passes", 2)
	v.SetDefault("detector_retries", 3)
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("database_path", "pulse-report.db")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &settings, nil
}

// PlannerPolicy maps the configured cohort list onto the planner's
// policy type.
func (s *Settings) PlannerPolicy() planner.Policy {
	if len(s.DeliverySummaryCohorts) == 0 {
		return planner.Policy{}
	}
	cohorts := make([]domain.CohortCode, 0, len(s.DeliverySummaryCohorts))
	for _, c := range s.DeliverySummaryCohorts {
		cohorts = append(cohorts, domain.CohortCode(c))
	}
	return planner.Policy{DeliverySummaryCohorts: cohorts}
}
