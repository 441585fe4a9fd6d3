package loader

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/fixora/insights/internal/domain"
)

const dateLayout = "01/02/2006"

var (
	accountPrefixes = []string{"Acme", "Global", "Prime", "Summit", "Stellar", "Pacific", "Metro", "Urban", "Coastal", "Regional"}
	accountSuffixes = []string{"Corp", "Industries", "Solutions", "Enterprises", "Group", "Services", "Systems", "Partners", "Holdings", "Network"}
	repNames        = []string{"Sarah Johnson", "Michael Thompson", "Maria Rodriguez", "James Chen", "Aisha Patel", "David Kim"}

	sampleStart = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	sampleEnd   = time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// GenerateSample builds n random but plausible service requests. Only resolved
// requests carry a resolution time, which always exceeds the response time.
func GenerateSample(rng *rand.Rand, n int) []domain.ServiceRequest {
	records := make([]domain.ServiceRequest, 0, n)
	span := sampleEnd.Sub(sampleStart)

	for i := 1; i <= n; i++ {
		requested := sampleStart.Add(time.Duration(rng.Int64N(int64(span))))
		respond := between(rng, 1, 48)

		r := domain.ServiceRequest{
			RequestID:     fmt.Sprintf("REG-%05d", i),
			AccountName:   pick(rng, accountPrefixes) + " " + pick(rng, accountSuffixes),
			Vertical:      pick(rng, domain.Verticals()),
			SiteCount:     between(rng, 1, 500),
			IssueCategory: pick(rng, domain.IssueCategories()),
			RequestDate:   requested.Format(dateLayout),
			Status:        pick(rng, domain.Statuses()),
			Urgency:       pick(rng, domain.Urgencies()),
			Priority:      pick(rng, domain.Priorities()),
			TimeToRespond: float64(respond),
			AccountHealth: pick(rng, domain.AccountHealths()),
			RepName:       pick(rng, repNames),
		}

		if r.Status == domain.StatusResolved {
			hours := between(rng, respond+1, 168)
			resolution := float64(hours)
			resolvedOn := requested.Add(time.Duration(hours) * time.Hour).Format(dateLayout)
			r.TimeToResolution = &resolution
			r.ResolutionDate = &resolvedOn
		}

		records = append(records, r)
	}
	return records
}

func pick[T any](rng *rand.Rand, values []T) T {
	return values[rng.IntN(len(values))]
}

// between returns a uniform integer in [lo, hi]
func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}
