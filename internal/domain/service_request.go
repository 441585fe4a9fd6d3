package domain

// Vertical represents the business vertical of an account
type Vertical string

const (
	VerticalRestaurant Vertical = "Restaurant"
	VerticalFuel       Vertical = "Fuel"
	VerticalGrocery    Vertical = "Grocery"
)

// IssueCategory represents the category of a service request
type IssueCategory string

const (
	IssueCategoryAPIError            IssueCategory = "API Error"
	IssueCategoryBillingInquiry      IssueCategory = "Billing Inquiry"
	IssueCategoryRefundRequest       IssueCategory = "Refund Request"
	IssueCategoryNetworkIssues       IssueCategory = "Network Issues"
	IssueCategorySoftwareIntegration IssueCategory = "Software Integration"
)

// Status represents the status of a service request
type Status string

const (
	StatusResolved   Status = "Resolved"
	StatusInProgress Status = "In Progress"
)

// Urgency represents how urgent a service request is
type Urgency string

const (
	UrgencyHigh   Urgency = "High"
	UrgencyMedium Urgency = "Medium"
	UrgencyLow    Urgency = "Low"
)

// Priority represents the priority of a service request
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// AccountHealth represents the health of the requesting account
type AccountHealth string

const (
	AccountHealthAdvocate  AccountHealth = "Advocate"
	AccountHealthEngaged   AccountHealth = "Engaged"
	AccountHealthNeutral   AccountHealth = "Neutral"
	AccountHealthSkeptic   AccountHealth = "Skeptic"
	AccountHealthChurnRisk AccountHealth = "Churn Risk"
)

// Fallbacks substituted by loaders for missing or unrecognised values.
const (
	DefaultVertical      = VerticalRestaurant
	DefaultIssueCategory = IssueCategoryAPIError
	DefaultStatus        = StatusInProgress
	DefaultUrgency       = UrgencyLow
	DefaultPriority      = PriorityLow
	DefaultAccountHealth = AccountHealthNeutral
)

// Verticals returns all verticals in declared order
func Verticals() []Vertical {
	return []Vertical{VerticalRestaurant, VerticalFuel, VerticalGrocery}
}

// IssueCategories returns all issue categories in declared order
func IssueCategories() []IssueCategory {
	return []IssueCategory{
		IssueCategoryAPIError,
		IssueCategoryBillingInquiry,
		IssueCategoryRefundRequest,
		IssueCategoryNetworkIssues,
		IssueCategorySoftwareIntegration,
	}
}

// Statuses returns all statuses in declared order
func Statuses() []Status {
	return []Status{StatusResolved, StatusInProgress}
}

// Urgencies returns all urgencies in declared order
func Urgencies() []Urgency {
	return []Urgency{UrgencyHigh, UrgencyMedium, UrgencyLow}
}

// Priorities returns all priorities in declared order
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// AccountHealths returns all account health states in declared order
func AccountHealths() []AccountHealth {
	return []AccountHealth{
		AccountHealthAdvocate,
		AccountHealthEngaged,
		AccountHealthNeutral,
		AccountHealthSkeptic,
		AccountHealthChurnRisk,
	}
}

func (v Vertical) IsValid() bool { return contains(Verticals(), v) }

func (c IssueCategory) IsValid() bool { return contains(IssueCategories(), c) }

func (s Status) IsValid() bool { return contains(Statuses(), s) }

func (u Urgency) IsValid() bool { return contains(Urgencies(), u) }

func (p Priority) IsValid() bool { return contains(Priorities(), p) }

func (h AccountHealth) IsValid() bool { return contains(AccountHealths(), h) }

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// ServiceRequest represents one customer service ticket from the dataset.
// Records are loaded once and treated as read-only afterwards.
type ServiceRequest struct {
	RequestID        string        `json:"request_id"`
	AccountName      string        `json:"account_name"`
	Vertical         Vertical      `json:"vertical"`
	SiteCount        int           `json:"site_count"`
	IssueCategory    IssueCategory `json:"issue_category"`
	RequestDate      string        `json:"request_date"`
	Status           Status        `json:"status"`
	Urgency          Urgency       `json:"urgency"`
	Priority         Priority      `json:"priority"`
	TimeToRespond    float64       `json:"time_to_respond"`
	TimeToResolution *float64      `json:"time_to_resolution"`
	ResolutionDate   *string       `json:"resolution_date"`
	AccountHealth    AccountHealth `json:"account_health"`
	RepName          string        `json:"rep_name,omitempty"`
}

// HasResolution reports whether the request carries a resolution time
func (r ServiceRequest) HasResolution() bool {
	return r.TimeToResolution != nil
}
