package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fixora/insights/infrastructure/service/logger"
	"github.com/fixora/insights/internal/domain"
	"github.com/fixora/insights/internal/usecase"
)

type staticSource struct {
	records []domain.ServiceRequest
}

func (s staticSource) Load(ctx context.Context) ([]domain.ServiceRequest, error) {
	return s.records, nil
}

func (s staticSource) Name() string { return "static" }

// MockDashboardService is a mock implementation of DashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Reload(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDashboardService) Dashboard(ctx context.Context, criteria domain.FilterCriteria) (domain.Dashboard, error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).(domain.Dashboard), args.Error(1)
}

func (m *MockDashboardService) Details(ctx context.Context, criteria domain.FilterCriteria, sort domain.SortConfig, page int) (usecase.DetailsPage, error) {
	args := m.Called(ctx, criteria, sort, page)
	return args.Get(0).(usecase.DetailsPage), args.Error(1)
}

func (m *MockDashboardService) KPIs(ctx context.Context, criteria domain.FilterCriteria) (domain.TeamKPI, error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).(domain.TeamKPI), args.Error(1)
}

func (m *MockDashboardService) Summary(ctx context.Context) usecase.DatasetSummary {
	return m.Called(ctx).Get(0).(usecase.DatasetSummary)
}

func testRequests(n int) []domain.ServiceRequest {
	out := make([]domain.ServiceRequest, 0, n)
	for i := 1; i <= n; i++ {
		r := domain.ServiceRequest{
			RequestID:     fmt.Sprintf("REG-%05d", i),
			AccountName:   fmt.Sprintf("Account %d", i),
			Vertical:      domain.Verticals()[i%3],
			SiteCount:     i,
			IssueCategory: domain.IssueCategories()[i%5],
			Status:        domain.StatusInProgress,
			Urgency:       domain.Urgencies()[i%3],
			Priority:      domain.PriorityLow,
			TimeToRespond: 2,
			AccountHealth: domain.AccountHealthNeutral,
		}
		if i%2 == 0 {
			hours := 10.0
			date := "01/20/2024"
			r.Status = domain.StatusResolved
			r.TimeToResolution = &hours
			r.ResolutionDate = &date
		}
		out = append(out, r)
	}
	return out
}

func newTestServer(t *testing.T, n int) http.Handler {
	t.Helper()
	log := logger.NewNopLogger()
	dashboard := usecase.NewDashboardUseCase(staticSource{records: testRequests(n)}, log)
	require.NoError(t, dashboard.Load(context.Background()))
	sessions := usecase.NewSessionUseCase(dashboard, time.Hour, log)

	return NewServer(ServerConfig{Port: "0", CORSOrigins: []string{"*"}}, dashboard, sessions, log).Handler()
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestServer_Health(t *testing.T) {
	status, env := do(t, newTestServer(t, 0), "GET", "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Status)
}

func TestDashboardHandler_Endpoints(t *testing.T) {
	h := newTestServer(t, 120)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCode   string
		check      func(t *testing.T, data json.RawMessage)
	}{
		{
			name:       "initial filters",
			path:       "/api/v1/filters/initial",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, data json.RawMessage) {
				assert.JSONEq(t, `{"search":"","status":"All","urgency":"All","vertical":"All","account_health":"All","issue_category":"All"}`, string(data))
			},
		},
		{
			name:       "dashboard unfiltered",
			path:       "/api/v1/dashboard",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, data json.RawMessage) {
				var d domain.Dashboard
				require.NoError(t, json.Unmarshal(data, &d))
				assert.Equal(t, 120, d.Metrics.TotalRequests)
				assert.Equal(t, 60, d.Metrics.ResolvedRequests)
				assert.Len(t, d.StatusDistribution, 2)
			},
		},
		{
			name:       "dashboard filtered by status",
			path:       "/api/v1/dashboard?status=Resolved&search=account%201",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, data json.RawMessage) {
				var d domain.Dashboard
				require.NoError(t, json.Unmarshal(data, &d))
				assert.Equal(t, d.Metrics.ResolvedRequests, d.Metrics.TotalRequests)
				assert.Positive(t, d.Metrics.TotalRequests)
			},
		},
		{
			name:       "unknown selector value",
			path:       "/api/v1/dashboard?urgency=Critical",
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_CRITERIA",
		},
		{
			name:       "requests second page sorted",
			path:       "/api/v1/requests?sort=site_count&direction=desc&page=2",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, data json.RawMessage) {
				var p usecase.DetailsPage
				require.NoError(t, json.Unmarshal(data, &p))
				assert.Equal(t, 2, p.Page)
				assert.Equal(t, 3, p.PageCount)
				require.Len(t, p.Requests, 50)
				assert.Equal(t, "REG-00070", p.Requests[0].RequestID)
			},
		},
		{
			name:       "requests page past the end is clamped",
			path:       "/api/v1/requests?page=99",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, data json.RawMessage) {
				var p usecase.DetailsPage
				require.NoError(t, json.Unmarshal(data, &p))
				assert.Equal(t, 3, p.Page)
				assert.Len(t, p.Requests, 20)
			},
		},
		{
			name:       "malformed page",
			path:       "/api/v1/requests?page=two",
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_PAGE",
		},
		{
			name:       "unknown sort key",
			path:       "/api/v1/requests?sort=colour",
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_SORT",
		},
		{
			name:       "kpis unavailable without rep names",
			path:       "/api/v1/kpis",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, data json.RawMessage) {
				var k domain.TeamKPI
				require.NoError(t, json.Unmarshal(data, &k))
				assert.False(t, k.Available)
				assert.NotNil(t, k.Reps)
			},
		},
		{
			name:       "dataset summary",
			path:       "/api/v1/dataset",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, data json.RawMessage) {
				var s usecase.DatasetSummary
				require.NoError(t, json.Unmarshal(data, &s))
				assert.Equal(t, "static", s.Source)
				assert.Equal(t, 120, s.Records)
			},
		},
		{
			name:       "filter options",
			path:       "/api/v1/filters/options",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, data json.RawMessage) {
				var opts map[string][]string
				require.NoError(t, json.Unmarshal(data, &opts))
				assert.Equal(t, []string{"All", "High", "Medium", "Low"}, opts["urgency"])
			},
		},
		{
			name:       "unknown route",
			path:       "/api/v1/nope",
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := do(t, h, "GET", tt.path, "")

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, env.Code)
			assert.Equal(t, tt.wantCode == "", env.Status)
			if tt.check != nil {
				tt.check(t, env.Data)
			}
		})
	}
}

func TestDashboardHandler_InternalErrorIsOpaque(t *testing.T) {
	svc := new(MockDashboardService)
	svc.On("Dashboard", mock.Anything, domain.InitialFilters()).Return(domain.Dashboard{}, errors.New("pq: connection refused"))
	router := newRouterFor(NewDashboardHandler(svc))

	status, env := do(t, router, "GET", "/api/v1/dashboard", "")

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", env.Code)
	assert.NotContains(t, env.Message, "pq")
	svc.AssertExpectations(t)
}

func TestDashboardHandler_ReloadFailure(t *testing.T) {
	svc := new(MockDashboardService)
	svc.On("Reload", mock.Anything).Return(errors.New("workbook missing"))
	svc.On("Summary", mock.Anything).Return(usecase.DatasetSummary{Source: "xlsx", LoadError: "workbook missing"})
	router := newRouterFor(NewDashboardHandler(svc))

	status, env := do(t, router, "POST", "/api/v1/dataset/reload", "")

	assert.Equal(t, http.StatusOK, status)
	assert.False(t, env.Status)
	assert.Contains(t, string(env.Data), "workbook missing")
}

func TestSessionHandler_Flow(t *testing.T) {
	h := newTestServer(t, 60)

	status, env := do(t, h, "POST", "/api/v1/sessions", "")
	require.Equal(t, http.StatusCreated, status)
	var session usecase.Session
	require.NoError(t, json.Unmarshal(env.Data, &session))
	base := "/api/v1/sessions/" + session.ID

	status, _ = do(t, h, "PUT", base+"/view", `{"view":"details"}`)
	require.Equal(t, http.StatusOK, status)

	status, _ = do(t, h, "PUT", base+"/page", `{"page":2}`)
	require.Equal(t, http.StatusOK, status)

	status, env = do(t, h, "POST", base+"/sort", `{"key":"request_id"}`)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, 1, session.State.Page, "sorting resets the page")

	status, env = do(t, h, "POST", base+"/sort", `{"key":"request_id"}`)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, domain.SortDesc, session.State.Sort.Direction)

	status, _ = do(t, h, "PUT", base+"/filters", `{"status":"Resolved"}`)
	require.Equal(t, http.StatusOK, status)

	status, env = do(t, h, "GET", base+"/render", "")
	require.Equal(t, http.StatusOK, status)
	var result usecase.RenderResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.NotNil(t, result.Details)
	assert.Nil(t, result.Dashboard)
	assert.Equal(t, 30, result.Details.Total)
	assert.Equal(t, "REG-00060", result.Details.Requests[0].RequestID)

	status, env = do(t, h, "POST", base+"/reset", "")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, usecase.NewViewState(), session.State)

	status, _ = do(t, h, "DELETE", base, "")
	require.Equal(t, http.StatusOK, status)

	status, env = do(t, h, "GET", base, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "SESSION_NOT_FOUND", env.Code)
}

func TestSessionHandler_BadInput(t *testing.T) {
	h := newTestServer(t, 5)
	_, env := do(t, h, "POST", "/api/v1/sessions", "")
	var session usecase.Session
	require.NoError(t, json.Unmarshal(env.Data, &session))
	base := "/api/v1/sessions/" + session.ID

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode string
	}{
		{"malformed json", "PUT", base + "/page", `{"page":`, "BAD_REQUEST"},
		{"unknown field", "PUT", base + "/page", `{"pages":2}`, "BAD_REQUEST"},
		{"page below one", "PUT", base + "/page", `{"page":0}`, "INVALID_PAGE"},
		{"unknown view", "PUT", base + "/view", `{"view":"settings"}`, "INVALID_VIEW"},
		{"unknown sort key", "POST", base + "/sort", `{"key":"colour"}`, "INVALID_SORT"},
		{"unknown status", "PUT", base + "/filters", `{"status":"Closed"}`, "INVALID_CRITERIA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.wantCode, env.Code)
		})
	}

	status, env := do(t, h, "PUT", "/api/v1/sessions/unknown/page", `{"page":2}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "SESSION_NOT_FOUND", env.Code)
}

func newRouterFor(h interface{ RegisterRoutes(*mux.Router) }) http.Handler {
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return router
}
