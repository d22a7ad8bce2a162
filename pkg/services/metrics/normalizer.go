package metrics

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/mkt-tools/pulse-report/pkg/models/domain"
)

// Normalize reduces one metric's raw series to rounded per-period values
// plus a first-to-last change summary. The second return is false when
// the metric carries no signal: no periods at all, or every value parsing
// to unknown or zero. Dropped metrics must not appear in output mappings.
func Normalize(ctx context.Context, name string, series domain.TimeSeries) (domain.NormalizedMetric, bool) {
	if len(series.Periods) == 0 {
		return domain.NormalizedMetric{}, false
	}

	parsed := make([]*float64, len(series.Periods))
	hasSignal := false
	for i, p := range series.Periods {
		parsed[i] = Parse(ctx, p.Value)
		if parsed[i] != nil && *parsed[i] != 0 {
			hasSignal = true
		}
	}
	if !hasSignal {
		return domain.NormalizedMetric{}, false
	}

	periods := make([]domain.MetricPeriod, len(series.Periods))
	for i, p := range series.Periods {
		periods[i] = domain.MetricPeriod{
			PeriodType:  p.PeriodType,
			PeriodLabel: p.PeriodLabel,
			Value:       round1(parsed[i]),
		}
	}

	first, last := parsed[0], parsed[len(parsed)-1]

	var change string
	if isRateMetric(name) {
		change = ptsChange(first, last)
	} else {
		change = pctChange(first, last)
	}

	var rawChange *float64
	if first != nil && last != nil {
		rawChange = round1(ptr(*last - *first))
	}

	return domain.NormalizedMetric{
		Periods: periods,
		FirstPeriod: domain.PeriodPoint{
			Label: series.Periods[0].PeriodLabel,
			Value: round1(first),
		},
		LastPeriod: domain.PeriodPoint{
			Label: series.Periods[len(series.Periods)-1].PeriodLabel,
			Value: round1(last),
		},
		Change:      change,
		RawChange:   rawChange,
		PeriodCount: len(series.Periods),
	}, true
}

// NormalizeStats normalizes every metric of a snapshot, excluding dropped
// metrics from the result entirely.
func NormalizeStats(ctx context.Context, stats map[string]domain.TimeSeries) map[string]domain.NormalizedMetric {
	out := make(map[string]domain.NormalizedMetric, len(stats))
	for name, series := range stats {
		if nm, ok := Normalize(ctx, name, series); ok {
			out[name] = nm
		}
	}
	return out
}

// isRateMetric reports whether first-to-last movement should be expressed
// in points rather than percent.
func isRateMetric(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "ctr") || strings.Contains(lower, "rate")
}

// pctChange reports signed percentage movement relative to |first|, with
// a direction arrow. A metric starting at zero cannot be expressed as a
// percentage; growth from zero gets its own phrasing.
func pctChange(old, new *float64) string {
	if old == nil || new == nil {
		return domain.ChangeInsufficientData
	}
	if *old == 0 {
		if *new > 0 {
			return fmt.Sprintf("+%.1f (from 0)", *new)
		}
		return "No change"
	}
	change := ((*new - *old) / math.Abs(*old)) * 100
	return fmt.Sprintf("%s %+.1f%%", arrow(change), change)
}

// ptsChange reports the signed point difference for rate-like metrics.
func ptsChange(old, new *float64) string {
	if old == nil || new == nil {
		return domain.ChangeInsufficientData
	}
	diff := *new - *old
	return fmt.Sprintf("%s %+.1f pts", arrow(diff), diff)
}

func arrow(v float64) string {
	switch {
	case v > 0:
		return "▲"
	case v < 0:
		return "▼"
	default:
		return "▶"
	}
}

// round1 rounds to one decimal place; exact zero survives as 0.0, it is
// never re-mapped to unknown.
func round1(v *float64) *float64 {
	if v == nil {
		return nil
	}
	if *v == 0 {
		return ptr(0.0)
	}
	return ptr(math.Round(*v*10) / 10)
}

func ptr(v float64) *float64 {
	return &v
}
