package usecase

import (
	"fmt"

	"github.com/fixora/insights/internal/domain"
)

// View names the screen a session is looking at
type View string

const (
	ViewDashboard View = "dashboard"
	ViewDetails   View = "details"
	ViewKPI       View = "kpi"
)

// ParseView validates a view name; the empty string means the dashboard
func ParseView(s string) (View, error) {
	switch View(s) {
	case "", ViewDashboard:
		return ViewDashboard, nil
	case ViewDetails, ViewKPI:
		return View(s), nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidView, s)
	}
}

// ViewState is the UI state of one viewer. Transitions return a new value.
type ViewState struct {
	Filters domain.FilterCriteria `json:"filters"`
	Sort    domain.SortConfig     `json:"sort"`
	Page    int                   `json:"page"`
	View    View                  `json:"view"`
}

// NewViewState returns the initial state: no filters, loaded order, first page, dashboard
func NewViewState() ViewState {
	return ViewState{
		Filters: domain.InitialFilters(),
		Sort:    domain.DefaultSortConfig(),
		Page:    1,
		View:    ViewDashboard,
	}
}

// SetFilters replaces the criteria and goes back to the first page
func (s ViewState) SetFilters(criteria domain.FilterCriteria) (ViewState, error) {
	if err := criteria.Validate(); err != nil {
		return s, err
	}
	s.Filters = criteria
	s.Page = 1
	return s, nil
}

// ToggleSort selects or flips the sort key and goes back to the first page
func (s ViewState) ToggleSort(key domain.SortKey) ViewState {
	s.Sort = s.Sort.Toggle(key)
	s.Page = 1
	return s
}

// SetPage moves to page. Pages past the end are clamped when rendered.
func (s ViewState) SetPage(page int) (ViewState, error) {
	if page < 1 {
		return s, fmt.Errorf("%w: %d", domain.ErrInvalidPage, page)
	}
	s.Page = page
	return s, nil
}

// SetView switches the visible screen, keeping filters, sort and page
func (s ViewState) SetView(view View) ViewState {
	s.View = view
	return s
}

// Reset returns the initial state
func (s ViewState) Reset() ViewState {
	return NewViewState()
}
