package domain

import "math"

// DashboardMetrics represents the summary cards of the dashboard
type DashboardMetrics struct {
	TotalRequests         int     `json:"total_requests"`
	ResolvedRequests      int     `json:"resolved_requests"`
	InProgressRequests    int     `json:"in_progress_requests"`
	HighUrgencyRequests   int     `json:"high_urgency_requests"`
	AverageResponseTime   float64 `json:"average_response_time"`
	AverageResolutionTime float64 `json:"average_resolution_time"`
}

// BarEntry is one bucket of a bar chart distribution
type BarEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Fill  string `json:"fill"`
}

// PieEntry is one slice of a pie chart distribution
type PieEntry struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Fill  string `json:"fill"`
}

// Dashboard bundles everything the dashboard view renders
type Dashboard struct {
	Metrics            DashboardMetrics `json:"metrics"`
	StatusDistribution []PieEntry       `json:"status_distribution"`
	UrgencyBreakdown   []BarEntry       `json:"urgency_breakdown"`
	RequestsByVertical []BarEntry       `json:"requests_by_vertical"`
	IssueCategories    []BarEntry       `json:"issue_categories"`
	AccountHealth      []BarEntry       `json:"account_health"`
}

// Chart colors
const (
	colorGreen  = "#10b981"
	colorAmber  = "#f59e0b"
	colorRed    = "#ef4444"
	colorBlue   = "#3b82f6"
	colorPurple = "#8b5cf6"
	colorPink   = "#ec4899"
	colorGray   = "#6b7280"
)

var (
	statusColors = map[Status]string{
		StatusResolved:   colorGreen,
		StatusInProgress: colorAmber,
	}
	urgencyColors = map[Urgency]string{
		UrgencyHigh:   colorRed,
		UrgencyMedium: colorAmber,
		UrgencyLow:    colorGreen,
	}
	verticalColors = map[Vertical]string{
		VerticalRestaurant: colorBlue,
		VerticalFuel:       colorPurple,
		VerticalGrocery:    colorPink,
	}
	issueCategoryColors = map[IssueCategory]string{
		IssueCategoryAPIError:            colorBlue,
		IssueCategoryBillingInquiry:      colorGreen,
		IssueCategoryRefundRequest:       colorAmber,
		IssueCategoryNetworkIssues:       colorRed,
		IssueCategorySoftwareIntegration: colorPurple,
	}
	accountHealthColors = map[AccountHealth]string{
		AccountHealthAdvocate:  colorGreen,
		AccountHealthEngaged:   colorBlue,
		AccountHealthNeutral:   colorGray,
		AccountHealthSkeptic:   colorAmber,
		AccountHealthChurnRisk: colorRed,
	}
)

// RoundOneDecimal rounds half-up to one decimal place
func RoundOneDecimal(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

// CalculateMetrics computes the summary metrics in a single pass.
// Records without a resolution time are left out of the resolution average entirely.
func CalculateMetrics(records []ServiceRequest) DashboardMetrics {
	var (
		m                DashboardMetrics
		totalResponse    float64
		totalResolution  float64
		resolvedWithTime int
	)

	m.TotalRequests = len(records)
	for _, r := range records {
		switch r.Status {
		case StatusResolved:
			m.ResolvedRequests++
		case StatusInProgress:
			m.InProgressRequests++
		}
		if r.Urgency == UrgencyHigh {
			m.HighUrgencyRequests++
		}

		totalResponse += r.TimeToRespond
		if r.TimeToResolution != nil {
			totalResolution += *r.TimeToResolution
			resolvedWithTime++
		}
	}

	m.AverageResponseTime = average(totalResponse, m.TotalRequests)
	m.AverageResolutionTime = average(totalResolution, resolvedWithTime)
	return m
}

func average(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return RoundOneDecimal(total / float64(n))
}

// StatusDistribution returns the pie chart data for request status
func StatusDistribution(records []ServiceRequest) []PieEntry {
	counts := tally(records, func(r ServiceRequest) Status { return r.Status })

	entries := make([]PieEntry, 0, len(Statuses()))
	for _, s := range Statuses() {
		entries = append(entries, PieEntry{Name: string(s), Value: counts[s], Fill: statusColors[s]})
	}
	return entries
}

// UrgencyBreakdown returns the bar chart data for request urgency
func UrgencyBreakdown(records []ServiceRequest) []BarEntry {
	counts := tally(records, func(r ServiceRequest) Urgency { return r.Urgency })
	return project(Urgencies(), counts, urgencyColors)
}

// RequestsByVertical returns the bar chart data for account verticals
func RequestsByVertical(records []ServiceRequest) []BarEntry {
	counts := tally(records, func(r ServiceRequest) Vertical { return r.Vertical })
	return project(Verticals(), counts, verticalColors)
}

// IssueCategoriesDistribution returns the bar chart data for issue categories
func IssueCategoriesDistribution(records []ServiceRequest) []BarEntry {
	counts := tally(records, func(r ServiceRequest) IssueCategory { return r.IssueCategory })
	return project(IssueCategories(), counts, issueCategoryColors)
}

// AccountHealthDistribution returns the bar chart data for account health
func AccountHealthDistribution(records []ServiceRequest) []BarEntry {
	counts := tally(records, func(r ServiceRequest) AccountHealth { return r.AccountHealth })
	return project(AccountHealths(), counts, accountHealthColors)
}

// BuildDashboard computes the metrics and every distribution for records
func BuildDashboard(records []ServiceRequest) Dashboard {
	return Dashboard{
		Metrics:            CalculateMetrics(records),
		StatusDistribution: StatusDistribution(records),
		UrgencyBreakdown:   UrgencyBreakdown(records),
		RequestsByVertical: RequestsByVertical(records),
		IssueCategories:    IssueCategoriesDistribution(records),
		AccountHealth:      AccountHealthDistribution(records),
	}
}

func tally[K comparable](records []ServiceRequest, key func(ServiceRequest) K) map[K]int {
	counts := make(map[K]int)
	for _, r := range records {
		counts[key(r)]++
	}
	return counts
}

// project lays the counts out in the declared category order, keeping empty buckets
func project[K ~string](order []K, counts map[K]int, colors map[K]string) []BarEntry {
	entries := make([]BarEntry, 0, len(order))
	for _, k := range order {
		entries = append(entries, BarEntry{Name: string(k), Count: counts[k], Fill: colors[k]})
	}
	return entries
}
