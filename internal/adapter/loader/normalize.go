package loader

import (
	"math"
	"strconv"
	"strings"

	"github.com/fixora/insights/internal/domain"
)

// Spreadsheet column headers
const (
	ColRequestID        = "Request ID"
	ColAccountName      = "Account Name"
	ColVertical         = "Vertical"
	ColSiteCount        = "Site Count"
	ColIssueCategory    = "Issue Category"
	ColRequestDate      = "Request Date"
	ColStatus           = "Status"
	ColUrgency          = "Urgency"
	ColPriority         = "Priority"
	ColTimeToRespond    = "Time to Respond (Hours)"
	ColTimeToResolution = "Time to Resolution (Hours)"
	ColResolutionDate   = "Resolution Date"
	ColAccountHealth    = "Account Health"
	ColRepName          = "CS Rep Name"
)

// Columns lists the headers in the order the seed workbook writes them
func Columns() []string {
	return []string{
		ColRequestID,
		ColAccountName,
		ColVertical,
		ColSiteCount,
		ColIssueCategory,
		ColRequestDate,
		ColStatus,
		ColUrgency,
		ColPriority,
		ColTimeToRespond,
		ColTimeToResolution,
		ColResolutionDate,
		ColAccountHealth,
		ColRepName,
	}
}

// Row gives access to the cells of one data row by header name
type Row func(column string) string

// Stats counts what normalisation had to fix while loading
type Stats struct {
	Rows         int `json:"rows"`
	Skipped      int `json:"skipped"`
	Defaulted    int `json:"defaulted"`
	Inconsistent int `json:"inconsistent"`
}

// Add accumulates other into s
func (s *Stats) Add(other Stats) {
	s.Rows += other.Rows
	s.Skipped += other.Skipped
	s.Defaulted += other.Defaulted
	s.Inconsistent += other.Inconsistent
}

// NormalizeRow turns raw cells into a ServiceRequest, substituting defaults:
// numbers fall back to 0, unknown or missing categories fall back to the
// documented default, and the resolution fields fall back to absent. A
// resolution pair that is incomplete, or set on a request that is not
// resolved, is cleared and counted as inconsistent.
func NormalizeRow(row Row) (domain.ServiceRequest, Stats) {
	var stats Stats
	stats.Rows = 1
	defaulted := false

	categorical := func(column string, valid func(string) bool, fallback string) string {
		v := strings.TrimSpace(row(column))
		if valid(v) {
			return v
		}
		defaulted = true
		return fallback
	}

	r := domain.ServiceRequest{
		RequestID:   strings.TrimSpace(row(ColRequestID)),
		AccountName: strings.TrimSpace(row(ColAccountName)),
		RequestDate: strings.TrimSpace(row(ColRequestDate)),
		RepName:     strings.TrimSpace(row(ColRepName)),
	}

	r.Vertical = domain.Vertical(categorical(ColVertical,
		func(s string) bool { return domain.Vertical(s).IsValid() }, string(domain.DefaultVertical)))
	r.IssueCategory = domain.IssueCategory(categorical(ColIssueCategory,
		func(s string) bool { return domain.IssueCategory(s).IsValid() }, string(domain.DefaultIssueCategory)))
	r.Status = domain.Status(categorical(ColStatus,
		func(s string) bool { return domain.Status(s).IsValid() }, string(domain.DefaultStatus)))
	r.Urgency = domain.Urgency(categorical(ColUrgency,
		func(s string) bool { return domain.Urgency(s).IsValid() }, string(domain.DefaultUrgency)))
	r.Priority = domain.Priority(categorical(ColPriority,
		func(s string) bool { return domain.Priority(s).IsValid() }, string(domain.DefaultPriority)))
	r.AccountHealth = domain.AccountHealth(categorical(ColAccountHealth,
		func(s string) bool { return domain.AccountHealth(s).IsValid() }, string(domain.DefaultAccountHealth)))

	var ok bool
	if r.SiteCount, ok = parseInt(row(ColSiteCount)); !ok {
		defaulted = true
	}
	if r.TimeToRespond, ok = parseFloat(row(ColTimeToRespond)); !ok {
		defaulted = true
	}

	if raw := strings.TrimSpace(row(ColTimeToResolution)); raw != "" {
		if v, ok := parseFloat(raw); ok {
			r.TimeToResolution = &v
		} else {
			defaulted = true
		}
	}
	if raw := strings.TrimSpace(row(ColResolutionDate)); raw != "" {
		r.ResolutionDate = &raw
	}

	if defaulted {
		stats.Defaulted = 1
	}
	// the resolution pair only exists on resolved requests, and only as a pair
	hasTime, hasDate := r.TimeToResolution != nil, r.ResolutionDate != nil
	if hasTime != hasDate || ((hasTime || hasDate) && r.Status != domain.StatusResolved) {
		r.TimeToResolution = nil
		r.ResolutionDate = nil
		stats.Inconsistent = 1
	}
	return r, stats
}

func cleanNumber(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}

// parseInt accepts integers and truncates decimals; anything else is 0
func parseInt(s string) (int, bool) {
	s = cleanNumber(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if f, ok := parseFloat(s); ok {
		return int(f), true
	}
	return 0, false
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(cleanNumber(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
