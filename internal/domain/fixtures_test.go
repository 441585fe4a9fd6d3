package domain

func float(v float64) *float64 { return &v }

func str(v string) *string { return &v }

func resolvedRequest(id, account string, respond, resolution float64) ServiceRequest {
	return ServiceRequest{
		RequestID:        id,
		AccountName:      account,
		Vertical:         VerticalRestaurant,
		SiteCount:        10,
		IssueCategory:    IssueCategoryAPIError,
		RequestDate:      "01/15/2024",
		Status:           StatusResolved,
		Urgency:          UrgencyMedium,
		Priority:         PriorityMedium,
		TimeToRespond:    respond,
		TimeToResolution: float(resolution),
		ResolutionDate:   str("01/17/2024"),
		AccountHealth:    AccountHealthEngaged,
	}
}

func openRequest(id, account string, respond float64) ServiceRequest {
	return ServiceRequest{
		RequestID:     id,
		AccountName:   account,
		Vertical:      VerticalFuel,
		SiteCount:     3,
		IssueCategory: IssueCategoryBillingInquiry,
		RequestDate:   "02/01/2024",
		Status:        StatusInProgress,
		Urgency:       UrgencyHigh,
		Priority:      PriorityHigh,
		TimeToRespond: respond,
		AccountHealth: AccountHealthChurnRisk,
	}
}

// sampleRequests covers every enum value at least once
func sampleRequests() []ServiceRequest {
	a := resolvedRequest("REG-00001", "Acme Industries", 10, 20)
	b := openRequest("REG-00002", "Metro Group", 5)
	c := resolvedRequest("REG-00003", "Summit Corp", 4, 12)
	c.Vertical = VerticalGrocery
	c.IssueCategory = IssueCategoryRefundRequest
	c.Urgency = UrgencyLow
	c.AccountHealth = AccountHealthAdvocate
	d := openRequest("REG-00004", "Pacific Systems", 2.5)
	d.IssueCategory = IssueCategoryNetworkIssues
	d.AccountHealth = AccountHealthNeutral
	e := resolvedRequest("REG-00005", "acme partners", 1, 3)
	e.IssueCategory = IssueCategorySoftwareIntegration
	e.AccountHealth = AccountHealthSkeptic
	return []ServiceRequest{a, b, c, d, e}
}
