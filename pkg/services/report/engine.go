// Package report orchestrates a full report run: snapshot extraction,
// metric normalization, trend and cohort resolution, slide planning,
// concurrent slide generation, the closing narrative pair, and the
// guideline reconciliation pass.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mkt-tools/pulse-report/pkg/llm"
	"github.com/mkt-tools/pulse-report/pkg/models/domain"
	modelsllm "github.com/mkt-tools/pulse-report/pkg/models/llm"
	"github.com/mkt-tools/pulse-report/pkg/services/ads"
	"github.com/mkt-tools/pulse-report/pkg/services/cohort"
	"github.com/mkt-tools/pulse-report/pkg/services/compliance"
	"github.com/mkt-tools/pulse-report/pkg/services/delivery"
	"github.com/mkt-tools/pulse-report/pkg/services/extract"
	"github.com/mkt-tools/pulse-report/pkg/services/metrics"
	"github.com/mkt-tools/pulse-report/pkg/services/planner"
	"github.com/mkt-tools/pulse-report/pkg/services/trend"
)

// Config carries everything an Engine needs. Zero-value MaxPasses and
// DetectorRetries fall back to the package defaults.
type Config struct {
	Completer       llm.Completer
	Policy          planner.Policy
	Rules           domain.RuleBook
	MaxPasses       int
	DetectorRetries int
}

// Engine runs the full pipeline for one business.
type Engine struct {
	extractor  extract.Extractor
	classifier trend.Classifier
	detector   compliance.Detector
	completer  llm.Completer
	generators Registry
	policy     planner.Policy
	rules      domain.RuleBook
	maxPasses  int
}

func NewEngine(cfg Config) *Engine {
	maxPasses := cfg.MaxPasses
	if maxPasses <= 0 {
		maxPasses = compliance.DefaultMaxPasses
	}
	retries := cfg.DetectorRetries
	if retries <= 0 {
		retries = 3
	}
	return &Engine{
		extractor:  extract.NewExtractor(cfg.Completer),
		classifier: trend.NewClassifier(cfg.Completer),
		detector:   compliance.NewDetector(cfg.Completer, retries),
		completer:  cfg.Completer,
		generators: NewGenerators(cfg.Completer),
		policy:     cfg.Policy,
		rules:      cfg.Rules,
		maxPasses:  maxPasses,
	}
}

// Result is everything a run produced, including the intermediate
// artifacts callers archive alongside the report.
type Result struct {
	Snapshot   *modelsllm.BusinessSnapshot        `json:"snapshot"`
	Stats      map[string]domain.NormalizedMetric `json:"stats"`
	Deliveries []domain.DeliveryRecord            `json:"deliveries"`
	Cohort     domain.CohortCode                  `json:"cohort"`
	Trend      domain.TrendCall                   `json:"trend"`
	Plan       domain.SlidePlan                   `json:"plan"`
	Report     domain.Report                      `json:"report"`
}

// GenerateReport runs the pipeline end to end. Individual slides fail
// soft inside the report; failures of the shared stages (extraction,
// trend, cohort) fail the run.
func (e *Engine) GenerateReport(ctx context.Context, sources extract.SourceData) (*Result, error) {
	log := zerolog.Ctx(ctx)

	snapshot, err := e.extractor.Snapshot(ctx, sources)
	if err != nil {
		return nil, fmt.Errorf("extract business snapshot: %w", err)
	}
	business := ""
	if snapshot.BusinessInfo.BusinessName != nil {
		business = *snapshot.BusinessInfo.BusinessName
	}
	log.Info().Str("business", business).Int("metrics", len(snapshot.SocialStats)).Msg("snapshot extracted")

	stats := metrics.NormalizeStats(ctx, snapshot.SocialStats)
	deliveries := delivery.CleanDeliveries(snapshot.DeliveryDates)

	// Trend classification and cohort resolution are independent; the
	// trend call hits the completion service, so overlap them.
	var (
		wg        sync.WaitGroup
		trendCall domain.TrendCall
		trendErr  error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		trendCall, trendErr = e.classifier.Classify(ctx, stats)
	}()

	presence := sources.Presence()
	var adsScore *domain.AdsScore
	if presence.Quicksight {
		score := ads.Score(stats)
		adsScore = &score
	}
	cohortCode, cohortErr := cohort.Resolve(presence, adsScore)

	wg.Wait()
	if trendErr != nil {
		return nil, fmt.Errorf("classify trend: %w", trendErr)
	}
	if cohortErr != nil {
		return nil, fmt.Errorf("resolve cohort: %w", cohortErr)
	}
	log.Info().
		Str("cohort", string(cohortCode)).
		Str("trend", string(trendCall.Category)).
		Msg("run classified")

	plan := planner.Plan(cohortCode, trendCall.Category, e.policy)

	bindings := map[domain.InputKey]any{
		domain.InputSocialStats: stats,
	}
	if sources.Ignite != "" {
		bindings[domain.InputIgnitePayload] = sources.Ignite
	}
	if sources.Zylo != "" {
		bindings[domain.InputZyloData] = sources.Zylo
	}
	if len(deliveries) > 0 {
		bindings[domain.InputDeliveryLog] = deliveries
	}
	if len(snapshot.RecentPostContent) > 0 {
		bindings[domain.InputPostContent] = snapshot.RecentPostContent
	}

	report := Assemble(ctx, plan, e.generators, bindings)
	e.appendNarratives(ctx, report, snapshot)

	report = compliance.Reconcile(ctx, e.detector, report, e.rules, e.maxPasses)

	return &Result{
		Snapshot:   snapshot,
		Stats:      stats,
		Deliveries: deliveries,
		Cohort:     cohortCode,
		Trend:      trendCall,
		Plan:       plan,
		Report:     report,
	}, nil
}

// appendNarratives adds the quick-actions and closing-statement slides.
// They read the assembled report rather than the raw inputs, so they run
// after assembly, concurrently with each other.
func (e *Engine) appendNarratives(ctx context.Context, report domain.Report, snapshot *modelsllm.BusinessSnapshot) {
	narrative, err := narrativeContext(report, snapshot)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("encode narrative context")
		report[domain.SectionQuickActions] = domain.SectionError{Error: err.Error()}
		report[domain.SectionClosingStatement] = domain.SectionError{Error: err.Error()}
		return
	}

	var wg sync.WaitGroup
	var quick, closing any
	wg.Add(2)
	go func() {
		defer wg.Done()
		quick = invokeNarrative[modelsllm.QuickActionsReport](ctx, e.completer, quickActionsPrompt, narrative)
	}()
	go func() {
		defer wg.Done()
		closing = invokeNarrative[modelsllm.ClosingStatementReport](ctx, e.completer, closingStatementPrompt, narrative)
	}()
	wg.Wait()

	report[domain.SectionQuickActions] = quick
	report[domain.SectionClosingStatement] = closing
}

func narrativeContext(report domain.Report, snapshot *modelsllm.BusinessSnapshot) (string, error) {
	reportJSON, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	snapshotJSON, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return fmt.Sprintf("<generated_report>\n%s\n</generated_report>\n\n<preprocessed_input>\n%s\n</preprocessed_input>", reportJSON, snapshotJSON), nil
}

func invokeNarrative[T any](ctx context.Context, completer llm.Completer, prompt sectionPrompt, narrative string) any {
	user := fmt.Sprintf("%s\n\n%s\n\nReturn the JSON object.", prompt.user, narrative)
	out, err := llm.Invoke[T](ctx, completer, prompt.system, user)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("narrative generation failed")
		return domain.SectionError{Error: err.Error()}
	}
	return out
}
