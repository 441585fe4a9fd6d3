package domain

import (
	"cmp"
	"fmt"
	"slices"
)

// SortKey names the record field the details table is ordered by
type SortKey string

const (
	SortNone             SortKey = ""
	SortRequestID        SortKey = "request_id"
	SortAccountName      SortKey = "account_name"
	SortVertical         SortKey = "vertical"
	SortSiteCount        SortKey = "site_count"
	SortIssueCategory    SortKey = "issue_category"
	SortRequestDate      SortKey = "request_date"
	SortStatus           SortKey = "status"
	SortUrgency          SortKey = "urgency"
	SortPriority         SortKey = "priority"
	SortTimeToRespond    SortKey = "time_to_respond"
	SortTimeToResolution SortKey = "time_to_resolution"
	SortResolutionDate   SortKey = "resolution_date"
	SortAccountHealth    SortKey = "account_health"
	SortRepName          SortKey = "rep_name"
)

// SortDirection is the ordering direction
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// sortValue is the comparable projection of one field. Absent values have ok=false.
type sortValue struct {
	text    string
	number  float64
	numeric bool
	ok      bool
}

var sortFields = map[SortKey]func(ServiceRequest) sortValue{
	SortRequestID:     func(r ServiceRequest) sortValue { return textValue(r.RequestID) },
	SortAccountName:   func(r ServiceRequest) sortValue { return textValue(r.AccountName) },
	SortVertical:      func(r ServiceRequest) sortValue { return textValue(string(r.Vertical)) },
	SortSiteCount:     func(r ServiceRequest) sortValue { return numberValue(float64(r.SiteCount)) },
	SortIssueCategory: func(r ServiceRequest) sortValue { return textValue(string(r.IssueCategory)) },
	SortRequestDate:   func(r ServiceRequest) sortValue { return textValue(r.RequestDate) },
	SortStatus:        func(r ServiceRequest) sortValue { return textValue(string(r.Status)) },
	SortUrgency:       func(r ServiceRequest) sortValue { return textValue(string(r.Urgency)) },
	SortPriority:      func(r ServiceRequest) sortValue { return textValue(string(r.Priority)) },
	SortTimeToRespond: func(r ServiceRequest) sortValue { return numberValue(r.TimeToRespond) },
	SortTimeToResolution: func(r ServiceRequest) sortValue {
		if r.TimeToResolution == nil {
			return sortValue{numeric: true}
		}
		return numberValue(*r.TimeToResolution)
	},
	SortResolutionDate: func(r ServiceRequest) sortValue {
		if r.ResolutionDate == nil {
			return sortValue{}
		}
		return textValue(*r.ResolutionDate)
	},
	SortAccountHealth: func(r ServiceRequest) sortValue { return textValue(string(r.AccountHealth)) },
	SortRepName:       func(r ServiceRequest) sortValue { return textValue(r.RepName) },
}

func textValue(s string) sortValue { return sortValue{text: s, ok: true} }

func numberValue(n float64) sortValue { return sortValue{number: n, numeric: true, ok: true} }

// ParseSortKey validates a sort key coming from the outside. The empty string means no sorting.
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(s)
	if key == SortNone {
		return SortNone, nil
	}
	if _, ok := sortFields[key]; !ok {
		return SortNone, fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
	}
	return key, nil
}

// ParseSortDirection validates a direction; the empty string means ascending
func ParseSortDirection(s string) (SortDirection, error) {
	switch SortDirection(s) {
	case "", SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	default:
		return SortAsc, fmt.Errorf("%w: %q", ErrInvalidSortDir, s)
	}
}

// SortConfig is the current ordering of the details table
type SortConfig struct {
	Key       SortKey       `json:"key"`
	Direction SortDirection `json:"direction"`
}

// DefaultSortConfig leaves records in their loaded order
func DefaultSortConfig() SortConfig {
	return SortConfig{Key: SortNone, Direction: SortAsc}
}

// Toggle returns the config after the user selects key: the same key
// flips between asc and desc, a different key starts ascending.
func (c SortConfig) Toggle(key SortKey) SortConfig {
	if c.Key == key && c.Direction == SortAsc {
		return SortConfig{Key: key, Direction: SortDesc}
	}
	return SortConfig{Key: key, Direction: SortAsc}
}

// SortRequests returns a stably sorted copy of records. Records lacking a value
// for the key are placed last in both directions.
func SortRequests(records []ServiceRequest, cfg SortConfig) []ServiceRequest {
	sorted := slices.Clone(records)
	field, ok := sortFields[cfg.Key]
	if !ok {
		return sorted
	}

	slices.SortStableFunc(sorted, func(a, b ServiceRequest) int {
		av, bv := field(a), field(b)
		switch {
		case !av.ok && !bv.ok:
			return 0
		case !av.ok:
			return 1
		case !bv.ok:
			return -1
		}

		var c int
		if av.numeric {
			c = cmp.Compare(av.number, bv.number)
		} else {
			c = cmp.Compare(av.text, bv.text)
		}
		if cfg.Direction == SortDesc {
			return -c
		}
		return c
	})
	return sorted
}
