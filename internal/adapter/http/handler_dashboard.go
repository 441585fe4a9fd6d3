package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fixora/insights/infrastructure/http/response"
	"github.com/fixora/insights/internal/domain"
	"github.com/fixora/insights/internal/usecase"
)

// DashboardService is the analytics surface the handlers depend on
type DashboardService interface {
	Reload(ctx context.Context) error
	Dashboard(ctx context.Context, criteria domain.FilterCriteria) (domain.Dashboard, error)
	Details(ctx context.Context, criteria domain.FilterCriteria, sort domain.SortConfig, page int) (usecase.DetailsPage, error)
	KPIs(ctx context.Context, criteria domain.FilterCriteria) (domain.TeamKPI, error)
	Summary(ctx context.Context) usecase.DatasetSummary
}

// DashboardHandler handles the stateless analytics endpoints
type DashboardHandler struct {
	dashboard DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// RegisterRoutes registers dashboard routes
func (h *DashboardHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/filters/initial", h.InitialFilters).Methods("GET")
	router.HandleFunc("/api/v1/filters/options", h.FilterOptions).Methods("GET")
	router.HandleFunc("/api/v1/dashboard", h.GetDashboard).Methods("GET")
	router.HandleFunc("/api/v1/requests", h.ListRequests).Methods("GET")
	router.HandleFunc("/api/v1/kpis", h.GetKPIs).Methods("GET")
	router.HandleFunc("/api/v1/dataset", h.GetDataset).Methods("GET")
	router.HandleFunc("/api/v1/dataset/reload", h.ReloadDataset).Methods("POST")
}

// InitialFilters returns the criteria that select every record
func (h *DashboardHandler) InitialFilters(w http.ResponseWriter, r *http.Request) {
	response.OK(w, "Initial filters", domain.InitialFilters())
}

// FilterOptions lists the values each selector accepts, in display order
func (h *DashboardHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	response.OK(w, "Filter options", map[string]interface{}{
		"status":         withAll(domain.Statuses()),
		"urgency":        withAll(domain.Urgencies()),
		"vertical":       withAll(domain.Verticals()),
		"account_health": withAll(domain.AccountHealths()),
		"issue_category": withAll(domain.IssueCategories()),
	})
}

func withAll[T ~string](values []T) []string {
	out := make([]string, 0, len(values)+1)
	out = append(out, domain.FilterAll)
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

// GetDashboard returns the metric cards and chart series for the filtered records
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboard.Dashboard(r.Context(), parseCriteria(r.URL.Query()))
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.OK(w, "Dashboard retrieved successfully", dashboard)
}

// ListRequests returns one sorted page of the filtered records
func (h *DashboardHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sort, err := parseSort(q)
	if err != nil {
		response.Fail(w, err)
		return
	}
	page, err := parsePage(q)
	if err != nil {
		response.Fail(w, err)
		return
	}

	details, err := h.dashboard.Details(r.Context(), parseCriteria(q), sort, page)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.OK(w, "Requests retrieved successfully", details)
}

// GetKPIs returns representative performance for the filtered records
func (h *DashboardHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	kpis, err := h.dashboard.KPIs(r.Context(), parseCriteria(r.URL.Query()))
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.OK(w, "KPIs retrieved successfully", kpis)
}

// GetDataset describes the loaded dataset
func (h *DashboardHandler) GetDataset(w http.ResponseWriter, r *http.Request) {
	response.OK(w, "Dataset summary", h.dashboard.Summary(r.Context()))
}

// ReloadDataset re-reads the dataset from its source, bypassing the snapshot
// cache. A failed reload leaves an empty dataset in place and is reported in
// the summary.
func (h *DashboardHandler) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboard.Reload(r.Context()); err != nil {
		response.WriteJSON(w, http.StatusOK, false, "Dataset reload failed", h.dashboard.Summary(r.Context()))
		return
	}
	response.OK(w, "Dataset reloaded", h.dashboard.Summary(r.Context()))
}
