package adapters

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mkt-tools/pulse-report/pkg/models/api"
	"github.com/mkt-tools/pulse-report/pkg/models/store"
	"github.com/mkt-tools/pulse-report/pkg/services/report"
)

func MapResultDomainToStore(id, business string, result *report.Result, createdAt time.Time) (store.ReportRun, error) {
	payload, err := json.Marshal(result.Report)
	if err != nil {
		return store.ReportRun{}, fmt.Errorf("marshal report payload: %w", err)
	}

	sections := result.Plan.Sections()
	plan := make([]string, 0, len(sections))
	for _, s := range sections {
		plan = append(plan, string(s))
	}

	return store.ReportRun{
		ID:        id,
		Business:  business,
		Cohort:    string(result.Cohort),
		Trend:     string(result.Trend.Category),
		Plan:      plan,
		Report:    payload,
		CreatedAt: createdAt,
	}, nil
}

func MapRunStoreToApi(run store.ReportRun) (api.ReportRun, error) {
	var payload map[string]any
	if len(run.Report) > 0 {
		if err := json.Unmarshal(run.Report, &payload); err != nil {
			return api.ReportRun{}, fmt.Errorf("unmarshal report payload: %w", err)
		}
	}

	return api.ReportRun{
		ID:        run.ID,
		Business:  run.Business,
		Cohort:    run.Cohort,
		Trend:     run.Trend,
		Sections:  run.Plan,
		Report:    payload,
		CreatedAt: run.CreatedAt,
	}, nil
}

func MapRunStoreToSummaryApi(run store.ReportRun) api.ReportRunSummary {
	return api.ReportRunSummary{
		ID:        run.ID,
		Cohort:    run.Cohort,
		Trend:     run.Trend,
		CreatedAt: run.CreatedAt,
	}
}
