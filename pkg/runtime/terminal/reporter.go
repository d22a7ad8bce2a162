package terminal

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/template"

	"golang.org/x/exp/maps"

	"github.com/mkt-tools/pulse-report/pkg/models/domain"
	"github.com/mkt-tools/pulse-report/pkg/services/report"
)

// Reporter prints a run summary to the console: classification outcome,
// planned sections, and per-section status.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

type sectionStatus struct {
	Name   string
	Status string
}

type runSummary struct {
	Business string
	Cohort   string
	Trend    string
	Reason   string
	Sections []sectionStatus
}

func (c *Reporter) Handle(result *report.Result) error {
	tmpl := `
Report run for {{.Business}}
Cohort: {{.Cohort}}
Trend: {{.Trend}} ({{.Reason}})

{{range .Sections}}
- {{.Name}}: {{.Status}}
{{end}}
`
	t, err := template.New("summary").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, summarize(result))
}

func summarize(result *report.Result) runSummary {
	summary := runSummary{
		Business: "unknown business",
		Cohort:   string(result.Cohort),
		Trend:    string(result.Trend.Category),
		Reason:   result.Trend.Reason,
	}
	if result.Snapshot != nil && result.Snapshot.BusinessInfo.BusinessName != nil {
		summary.Business = *result.Snapshot.BusinessInfo.BusinessName
	}

	sections := result.Plan.Sections()
	sections = append(sections, domain.SectionQuickActions, domain.SectionClosingStatement)
	listed := make(map[domain.SectionName]bool, len(sections))
	for _, name := range sections {
		listed[name] = true
		payload, ok := result.Report[name]
		status := "ok"
		switch {
		case !ok:
			status = "missing"
		default:
			if failure, failed := payload.(domain.SectionError); failed {
				status = "error: " + failure.Error
			}
		}
		summary.Sections = append(summary.Sections, sectionStatus{Name: string(name), Status: status})
	}

	// Report keys outside the planned set still get a line.
	extras := maps.Keys(result.Report)
	sort.Slice(extras, func(i, j int) bool { return extras[i] < extras[j] })
	for _, name := range extras {
		if !listed[name] {
			summary.Sections = append(summary.Sections, sectionStatus{Name: string(name), Status: "unplanned"})
		}
	}
	return summary
}
