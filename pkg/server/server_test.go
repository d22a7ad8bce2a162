package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mkt-tools/pulse-report/pkg/models/api"
	"github.com/mkt-tools/pulse-report/pkg/models/domain"
	"github.com/mkt-tools/pulse-report/pkg/models/store"
	"github.com/mkt-tools/pulse-report/pkg/services/extract"
	reportsvc "github.com/mkt-tools/pulse-report/pkg/services/report"
	reportstore "github.com/mkt-tools/pulse-report/pkg/store/duckdb/report"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) GenerateReport(ctx context.Context, sources extract.SourceData) (*reportsvc.Result, error) {
	args := m.Called(ctx, sources)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reportsvc.Result), args.Error(1)
}

type mockRunStore struct {
	mock.Mock
}

func (m *mockRunStore) Add(ctx context.Context, run store.ReportRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *mockRunStore) Get(ctx context.Context, id string) (*store.ReportRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.ReportRun), args.Error(1)
}

func (m *mockRunStore) ListByBusiness(ctx context.Context, business string, limit int) ([]store.ReportRun, error) {
	args := m.Called(ctx, business, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.ReportRun), args.Error(1)
}

func (m *mockRunStore) Latest(ctx context.Context, business string) (*store.ReportRun, error) {
	args := m.Called(ctx, business)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.ReportRun), args.Error(1)
}

func newTestServer(t *testing.T, generator *mockGenerator, runs *mockRunStore) *httptest.Server {
	t.Helper()
	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Engine: generator,
			Runs:   runs,
			Logger: zerolog.New(zerolog.NewTestWriter(t)),
		},
	}
	server := httptest.NewServer(ConfigureRouter(config))
	t.Cleanup(server.Close)
	return server
}

func sampleStoredRun(id string) *store.ReportRun {
	return &store.ReportRun{
		ID:        id,
		Business:  "driftwood-coffee",
		Cohort:    "5",
		Trend:     "downtrend",
		Plan:      []string{"intro", "action-plan"},
		Report:    json.RawMessage(`{"intro": {"report_title": "October Report"}}`),
		CreatedAt: time.Date(2025, 10, 31, 12, 0, 0, 0, time.UTC),
	}
}

func TestWebAPI_GenerateReport(t *testing.T) {
	generator := new(mockGenerator)
	runs := new(mockRunStore)
	server := newTestServer(t, generator, runs)

	result := &reportsvc.Result{
		Cohort: domain.Cohort5,
		Trend:  domain.TrendCall{Category: domain.TrendDown, Reason: "most metrics fell"},
		Plan: domain.SlidePlan{
			{Section: domain.SectionIntro},
			{Section: domain.SectionActionPlan},
		},
		Report: domain.Report{
			domain.SectionIntro: map[string]any{"report_title": "October Report"},
		},
	}
	generator.On("GenerateReport", mock.Anything, extract.SourceData{
		Quicksight: "qs export",
		Ignite:     "ignite payload",
		Zylo:       "zylo export",
	}).Return(result, nil)
	runs.On("Add", mock.Anything, mock.MatchedBy(func(run store.ReportRun) bool {
		return run.Business == "driftwood-coffee" && run.Cohort == "5" && run.ID != ""
	})).Return(nil)

	body := `{"business": "driftwood-coffee", "quicksight_data": "qs export", "ignite_data": "ignite payload", "zylo_data": "zylo export"}`
	resp, err := http.Post(server.URL+"/api/v1/reports", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var run api.ReportRun
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&run))
	assert.Equal(t, "driftwood-coffee", run.Business)
	assert.Equal(t, "5", run.Cohort)
	assert.Equal(t, "downtrend", run.Trend)
	assert.Equal(t, []string{"intro", "action-plan"}, run.Sections)
	assert.NotEmpty(t, run.ID)
	generator.AssertExpectations(t)
	runs.AssertExpectations(t)
}

func TestWebAPI_GenerateReport_BadRequests(t *testing.T) {
	generator := new(mockGenerator)
	runs := new(mockRunStore)
	server := newTestServer(t, generator, runs)

	resp, err := http.Post(server.URL+"/api/v1/reports", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(server.URL+"/api/v1/reports", "application/json", strings.NewReader(`{"ignite_data": "x"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebAPI_GenerateReport_EngineFailure(t *testing.T) {
	generator := new(mockGenerator)
	runs := new(mockRunStore)
	server := newTestServer(t, generator, runs)

	generator.On("GenerateReport", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("classify trend: completion service unavailable"))

	resp, err := http.Post(server.URL+"/api/v1/reports", "application/json",
		strings.NewReader(`{"business": "driftwood-coffee"}`))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestWebAPI_GetRun(t *testing.T) {
	generator := new(mockGenerator)
	runs := new(mockRunStore)
	server := newTestServer(t, generator, runs)

	runs.On("Get", mock.Anything, "run-001").Return(sampleStoredRun("run-001"), nil)
	runs.On("Get", mock.Anything, "run-404").
		Return(nil, fmt.Errorf("%w: id run-404", reportstore.ErrRunNotFound))

	resp, err := http.Get(server.URL + "/api/v1/reports/run-001")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var run api.ReportRun
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&run))
	assert.Equal(t, "run-001", run.ID)
	assert.Equal(t, map[string]any{"report_title": "October Report"}, run.Report["intro"])

	resp, err = http.Get(server.URL + "/api/v1/reports/run-404")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWebAPI_ListRuns(t *testing.T) {
	generator := new(mockGenerator)
	runs := new(mockRunStore)
	server := newTestServer(t, generator, runs)

	runs.On("ListByBusiness", mock.Anything, "driftwood-coffee", 20).
		Return([]store.ReportRun{*sampleStoredRun("run-002"), *sampleStoredRun("run-001")}, nil)

	resp, err := http.Get(server.URL + "/api/v1/businesses/driftwood-coffee/reports")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var summaries []api.ReportRunSummary
	require.NoError(t, json.Unmarshal(body, &summaries))
	require.Len(t, summaries, 2)
	assert.Equal(t, "run-002", summaries[0].ID)

	resp, err = http.Get(server.URL + "/api/v1/businesses/driftwood-coffee/reports?limit=abc")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebAPI_GetLatestRun(t *testing.T) {
	generator := new(mockGenerator)
	runs := new(mockRunStore)
	server := newTestServer(t, generator, runs)

	runs.On("Latest", mock.Anything, "driftwood-coffee").Return(sampleStoredRun("run-002"), nil)
	runs.On("Latest", mock.Anything, "harbor-gym").
		Return(nil, fmt.Errorf("%w: business harbor-gym", reportstore.ErrRunNotFound))

	resp, err := http.Get(server.URL + "/api/v1/businesses/driftwood-coffee/reports/latest")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var run api.ReportRun
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&run))
	assert.Equal(t, "run-002", run.ID)

	resp, err = http.Get(server.URL + "/api/v1/businesses/harbor-gym/reports/latest")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
