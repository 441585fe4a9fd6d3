package domain

import (
	"fmt"
	"strings"
)

// FilterAll is the selector value that disables a categorical predicate
const FilterAll = "All"

// FilterCriteria represents the user-selected filters for the dataset.
// Each categorical selector is FilterAll or one concrete enum value.
type FilterCriteria struct {
	Search        string `json:"search"`
	Status        string `json:"status"`
	Urgency       string `json:"urgency"`
	Vertical      string `json:"vertical"`
	AccountHealth string `json:"account_health"`
	IssueCategory string `json:"issue_category"`
}

// InitialFilters returns criteria that select every record
func InitialFilters() FilterCriteria {
	return FilterCriteria{
		Search:        "",
		Status:        FilterAll,
		Urgency:       FilterAll,
		Vertical:      FilterAll,
		AccountHealth: FilterAll,
		IssueCategory: FilterAll,
	}
}

// IsActive reports whether any predicate would exclude records
func (c FilterCriteria) IsActive() bool {
	return c.Search != "" ||
		!isAll(c.Status) ||
		!isAll(c.Urgency) ||
		!isAll(c.Vertical) ||
		!isAll(c.AccountHealth) ||
		!isAll(c.IssueCategory)
}

// Validate checks that every selector is either FilterAll or a known enum value
func (c FilterCriteria) Validate() error {
	checks := []struct {
		field string
		value string
		valid bool
	}{
		{"status", c.Status, Status(c.Status).IsValid()},
		{"urgency", c.Urgency, Urgency(c.Urgency).IsValid()},
		{"vertical", c.Vertical, Vertical(c.Vertical).IsValid()},
		{"account_health", c.AccountHealth, AccountHealth(c.AccountHealth).IsValid()},
		{"issue_category", c.IssueCategory, IssueCategory(c.IssueCategory).IsValid()},
	}

	for _, check := range checks {
		if !isAll(check.value) && !check.valid {
			return fmt.Errorf("%w: unknown %s %q", ErrInvalidCriteria, check.field, check.value)
		}
	}
	return nil
}

// ApplyFilters returns the records matching every active predicate, in input order.
// Neither records nor criteria are modified.
func ApplyFilters(records []ServiceRequest, criteria FilterCriteria) []ServiceRequest {
	search := strings.ToLower(criteria.Search)

	matched := make([]ServiceRequest, 0, len(records))
	for _, r := range records {
		if search != "" &&
			!strings.Contains(strings.ToLower(r.AccountName), search) &&
			!strings.Contains(strings.ToLower(r.RequestID), search) {
			continue
		}
		if !selects(criteria.Status, string(r.Status)) ||
			!selects(criteria.Urgency, string(r.Urgency)) ||
			!selects(criteria.Vertical, string(r.Vertical)) ||
			!selects(criteria.AccountHealth, string(r.AccountHealth)) ||
			!selects(criteria.IssueCategory, string(r.IssueCategory)) {
			continue
		}
		matched = append(matched, r)
	}
	return matched
}

func selects(selector, value string) bool {
	return isAll(selector) || selector == value
}

// An empty selector behaves like FilterAll so the zero FilterCriteria selects everything.
func isAll(selector string) bool {
	return selector == "" || selector == FilterAll
}
