// Package compliance checks an assembled report against the static
// rulebook and patches violations, in bounded passes.
package compliance

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mkt-tools/pulse-report/pkg/llm"
	"github.com/mkt-tools/pulse-report/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Detector finds rulebook violations in a report. An empty slice means
// the report is compliant.
type Detector interface {
	Detect(ctx context.Context, report domain.Report, rules domain.RuleBook) ([]domain.Violation, error)
}

const DefaultMaxPasses = 2

// Reconcile runs detection passes over the report, applying each pass's
// patches before the next. It stops on the first clean pass and never
// exceeds maxPasses; the best-effort merged report is returned either
// way. Passes are strictly sequential: the report has a single writer
// here.
func Reconcile(ctx context.Context, detector Detector, report domain.Report, rules domain.RuleBook, maxPasses int) domain.Report {
	logger := zerolog.Ctx(ctx)
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}

	current := report.Clone()
	for pass := 1; pass <= maxPasses; pass++ {
		violations, err := detector.Detect(ctx, current, rules)
		if err != nil {
			// Fail open: a broken compliance checker must not block
			// report delivery. The report goes out unvalidated.
			logger.Error().Err(err).Int("pass", pass).
				Msg("violation detection failed, delivering report without compliance check")
			return current
		}

		if len(violations) == 0 {
			logger.Info().Int("pass", pass).Msg("report compliant, no violations")
			return current
		}

		current = applyPatches(ctx, current, violations)
	}

	logger.Warn().Int("max_passes", maxPasses).
		Msg("reconciliation pass budget exhausted, returning best-effort report")
	return current
}

// applyPatches replaces violating sections wholesale. Patches naming a
// section the report does not contain are skipped, never inserted.
func applyPatches(ctx context.Context, report domain.Report, violations []domain.Violation) domain.Report {
	logger := zerolog.Ctx(ctx)

	patched := report.Clone()
	for _, v := range violations {
		if v.Section == "" || len(v.Updated) == 0 {
			logger.Warn().Str("section", string(v.Section)).Msg("violation entry missing section or payload")
			continue
		}
		if _, ok := patched[v.Section]; !ok {
			logger.Warn().Str("section", string(v.Section)).Str("reason", v.Reason).
				Msg("violation names a section not present in the report")
			continue
		}

		var payload any
		if err := json.Unmarshal(v.Updated, &payload); err != nil {
			logger.Warn().Err(err).Str("section", string(v.Section)).Msg("violation payload is not valid JSON")
			continue
		}

		logger.Info().Str("section", string(v.Section)).Str("reason", v.Reason).Msg("patching section")
		patched[v.Section] = payload
	}
	return patched
}

type llmDetector struct {
	completer  llm.Completer
	maxRetries int
}

// NewDetector builds the LLM-backed violation detector. Detection
// attempts are retried up to maxRetries before the caller's fail-open
// policy kicks in.
func NewDetector(completer llm.Completer, maxRetries int) Detector {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &llmDetector{completer: completer, maxRetries: maxRetries}
}

const detectSystemPrompt = `You are a compliance reviewer for marketing report slides.
Check every section of the report against the guidelines and return the
violations as a JSON array. Each violation is:
{"slide_name": "<section key from the report>",
 "violation_reason": "<which rule is broken and how>",
 "updated_dict": <the full corrected section payload>}

Return [] when the report is fully compliant. Do not invent sections that
are not in the report. updated_dict must be a complete replacement for
the section, not a partial patch.`

func (d *llmDetector) Detect(ctx context.Context, report domain.Report, rules domain.RuleBook) ([]domain.Violation, error) {
	reportJSON, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	rulesJSON, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode rulebook: %w", err)
	}

	user := fmt.Sprintf(`Check this report against the guidelines.

<report>
%s
</report>

<guidelines>
%s
</guidelines>

Return the JSON array of violations, or [] if compliant.`, reportJSON, rulesJSON)

	var lastErr error
	for attempt := 1; attempt <= d.maxRetries; attempt++ {
		raw, err := d.completer.Complete(ctx, detectSystemPrompt, user)
		if err != nil {
			lastErr = err
			continue
		}

		var violations []domain.Violation
		if err := json.Unmarshal([]byte(llm.CleanJSON(raw)), &violations); err != nil {
			lastErr = fmt.Errorf("decode violations: %w", err)
			continue
		}
		return violations, nil
	}

	return nil, fmt.Errorf("violation detection failed after %d attempts: %w", d.maxRetries, lastErr)
}
