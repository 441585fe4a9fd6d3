package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fixora/insights/infrastructure/service/logger"
	"github.com/fixora/insights/internal/domain"
	"github.com/fixora/insights/internal/ports"
)

// DatasetSummary describes the currently loaded dataset
type DatasetSummary struct {
	Source    string    `json:"source"`
	Records   int       `json:"records"`
	LoadedAt  time.Time `json:"loaded_at"`
	LoadError string    `json:"load_error,omitempty"`
}

// DetailsPage represents one page of the sorted details table
type DetailsPage struct {
	Requests  []domain.ServiceRequest `json:"requests"`
	Sort      domain.SortConfig       `json:"sort"`
	Page      int                     `json:"page"`
	PageCount int                     `json:"page_count"`
	PageSize  int                     `json:"page_size"`
	Total     int                     `json:"total"`
}

// DashboardUseCase serves every analytics view from one in-memory dataset.
// The dataset is replaced as a whole on Load and never mutated in place.
type DashboardUseCase struct {
	source ports.RequestSource
	logger logger.Logger

	mu        sync.RWMutex
	records   []domain.ServiceRequest
	loadedAt  time.Time
	loadErr   error
	listeners []func(ctx context.Context)
}

// NewDashboardUseCase creates a new dashboard use case with an empty dataset
func NewDashboardUseCase(source ports.RequestSource, log logger.Logger) *DashboardUseCase {
	return &DashboardUseCase{
		source:  source,
		logger:  log.WithFields(map[string]interface{}{"component": "dashboard_usecase"}),
		records: []domain.ServiceRequest{},
	}
}

// Load reads the dataset. On failure the error is logged and the use case
// serves an empty dataset, so every view degrades to zeros.
func (uc *DashboardUseCase) Load(ctx context.Context) error {
	return uc.install(ctx, uc.source.Load)
}

// Reload re-reads the dataset like Load, bypassing any stored copy the
// source keeps. Reload listeners run after a successful reload.
func (uc *DashboardUseCase) Reload(ctx context.Context) error {
	load := uc.source.Load
	if r, ok := uc.source.(ports.Refresher); ok {
		load = r.Refresh
	}
	if err := uc.install(ctx, load); err != nil {
		return err
	}

	uc.mu.RLock()
	listeners := uc.listeners
	uc.mu.RUnlock()
	for _, fn := range listeners {
		fn(ctx)
	}
	return nil
}

// OnReload registers fn to run after every successful Reload
func (uc *DashboardUseCase) OnReload(fn func(ctx context.Context)) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.listeners = append(uc.listeners, fn)
}

func (uc *DashboardUseCase) install(ctx context.Context, load func(context.Context) ([]domain.ServiceRequest, error)) error {
	start := time.Now()
	records, err := load(ctx)
	if err != nil {
		uc.logger.Error(ctx, "Failed to load dataset, serving empty dataset", err, map[string]interface{}{
			"source": uc.source.Name(),
		})
		records = []domain.ServiceRequest{}
	} else {
		logger.LogPerformance(ctx, uc.logger, "dataset_load", time.Since(start), map[string]interface{}{
			"source":  uc.source.Name(),
			"records": len(records),
		})
	}

	uc.mu.Lock()
	uc.records = records
	uc.loadedAt = time.Now().UTC()
	uc.loadErr = err
	uc.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	return nil
}

func (uc *DashboardUseCase) snapshot() []domain.ServiceRequest {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.records
}

// filtered validates criteria and returns the matching records
func (uc *DashboardUseCase) filtered(criteria domain.FilterCriteria) ([]domain.ServiceRequest, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	return domain.ApplyFilters(uc.snapshot(), criteria), nil
}

// Dashboard returns the metric cards and every chart series for the filtered records
func (uc *DashboardUseCase) Dashboard(ctx context.Context, criteria domain.FilterCriteria) (domain.Dashboard, error) {
	records, err := uc.filtered(criteria)
	if err != nil {
		return domain.Dashboard{}, err
	}
	return domain.BuildDashboard(records), nil
}

// Details returns the requested page of the filtered and sorted records. The
// page is clamped to the available range.
func (uc *DashboardUseCase) Details(ctx context.Context, criteria domain.FilterCriteria, sort domain.SortConfig, page int) (DetailsPage, error) {
	records, err := uc.filtered(criteria)
	if err != nil {
		return DetailsPage{}, err
	}

	sorted := domain.SortRequests(records, sort)
	pages := domain.PageCount(len(sorted), domain.PageSize)
	page = domain.ClampPage(page, pages)

	return DetailsPage{
		Requests:  domain.Paginate(sorted, page, domain.PageSize),
		Sort:      sort,
		Page:      page,
		PageCount: pages,
		PageSize:  domain.PageSize,
		Total:     len(sorted),
	}, nil
}

// KPIs returns the representative performance view for the filtered records
func (uc *DashboardUseCase) KPIs(ctx context.Context, criteria domain.FilterCriteria) (domain.TeamKPI, error) {
	records, err := uc.filtered(criteria)
	if err != nil {
		return domain.TeamKPI{}, err
	}
	return domain.CalculateRepKPIs(records), nil
}

// Summary describes the loaded dataset
func (uc *DashboardUseCase) Summary(ctx context.Context) DatasetSummary {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	summary := DatasetSummary{
		Source:   uc.source.Name(),
		Records:  len(uc.records),
		LoadedAt: uc.loadedAt,
	}
	if uc.loadErr != nil {
		summary.LoadError = uc.loadErr.Error()
	}
	return summary
}
