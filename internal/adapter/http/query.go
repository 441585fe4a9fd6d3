package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/fixora/insights/internal/domain"
	apperr "github.com/fixora/insights/pkg/error"
)

// parseCriteria reads the filter selectors from the query string. Absent
// selectors mean "All".
func parseCriteria(q url.Values) domain.FilterCriteria {
	criteria := domain.InitialFilters()
	criteria.Search = q.Get("search")
	if v := q.Get("status"); v != "" {
		criteria.Status = v
	}
	if v := q.Get("urgency"); v != "" {
		criteria.Urgency = v
	}
	if v := q.Get("vertical"); v != "" {
		criteria.Vertical = v
	}
	if v := q.Get("account_health"); v != "" {
		criteria.AccountHealth = v
	}
	if v := q.Get("issue_category"); v != "" {
		criteria.IssueCategory = v
	}
	return criteria
}

func parseSort(q url.Values) (domain.SortConfig, error) {
	key, err := domain.ParseSortKey(strings.TrimSpace(q.Get("sort")))
	if err != nil {
		return domain.SortConfig{}, err
	}
	dir, err := domain.ParseSortDirection(strings.ToLower(strings.TrimSpace(q.Get("direction"))))
	if err != nil {
		return domain.SortConfig{}, err
	}
	return domain.SortConfig{Key: key, Direction: dir}, nil
}

// parsePage reads the 1-based page; absent means the first page
func parsePage(q url.Values) (int, error) {
	raw := strings.TrimSpace(q.Get("page"))
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidPage, raw)
	}
	return page, nil
}

// decodeJSON reads a JSON request body into v, rejecting unknown fields
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperr.NewBadRequest("Invalid request body")
	}
	return nil
}
