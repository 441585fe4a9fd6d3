package domain

import (
	"cmp"
	"slices"
)

// RepKPI represents the performance of one customer service representative
type RepKPI struct {
	Name              string  `json:"name"`
	TotalCases        int     `json:"total_cases"`
	ResolvedCases     int     `json:"resolved_cases"`
	AvgResponseTime   float64 `json:"avg_response_time"`
	AvgResolutionTime float64 `json:"avg_resolution_time"`
	ResolutionRate    float64 `json:"resolution_rate"`
}

// TeamKPI summarises every representative
type TeamKPI struct {
	Available         bool     `json:"available"`
	TeamSize          int      `json:"team_size"`
	TotalCases        int      `json:"total_cases"`
	AvgResponseTime   float64  `json:"avg_response_time"`
	AvgResolutionTime float64  `json:"avg_resolution_time"`
	AvgResolutionRate float64  `json:"avg_resolution_rate"`
	Reps              []RepKPI `json:"reps"`
}

type repTotals struct {
	cases          int
	resolved       int
	response       float64
	resolution     float64
	withResolution int
}

// CalculateRepKPIs aggregates records by representative name, ordered by name.
// Records without a representative are ignored. When none carry one the result
// is marked unavailable rather than filled with made-up figures.
func CalculateRepKPIs(records []ServiceRequest) TeamKPI {
	byRep := make(map[string]*repTotals)
	var team repTotals

	for _, r := range records {
		if r.RepName == "" {
			continue
		}
		t, ok := byRep[r.RepName]
		if !ok {
			t = &repTotals{}
			byRep[r.RepName] = t
		}
		for _, acc := range []*repTotals{t, &team} {
			acc.cases++
			acc.response += r.TimeToRespond
			if r.Status == StatusResolved {
				acc.resolved++
			}
			if r.TimeToResolution != nil {
				acc.resolution += *r.TimeToResolution
				acc.withResolution++
			}
		}
	}

	result := TeamKPI{Reps: []RepKPI{}}
	if len(byRep) == 0 {
		return result
	}

	var rateSum float64
	for name, t := range byRep {
		kpi := RepKPI{
			Name:              name,
			TotalCases:        t.cases,
			ResolvedCases:     t.resolved,
			AvgResponseTime:   average(t.response, t.cases),
			AvgResolutionTime: average(t.resolution, t.withResolution),
			ResolutionRate:    RoundOneDecimal(float64(t.resolved) / float64(t.cases) * 100),
		}
		rateSum += kpi.ResolutionRate
		result.Reps = append(result.Reps, kpi)
	}
	slices.SortFunc(result.Reps, func(a, b RepKPI) int { return cmp.Compare(a.Name, b.Name) })

	result.Available = true
	result.TeamSize = len(result.Reps)
	result.TotalCases = team.cases
	result.AvgResponseTime = average(team.response, team.cases)
	result.AvgResolutionTime = average(team.resolution, team.withResolution)
	result.AvgResolutionRate = RoundOneDecimal(rateSum / float64(len(result.Reps)))
	return result
}
