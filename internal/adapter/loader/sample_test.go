package loader

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSample(t *testing.T) {
	records := GenerateSample(rand.New(rand.NewPCG(1, 2)), 500)

	require.Len(t, records, 500)
	assert.Equal(t, "REG-00001", records[0].RequestID)
	assert.Equal(t, "REG-00500", records[499].RequestID)

	for _, r := range records {
		assert.True(t, r.Vertical.IsValid())
		assert.True(t, r.IssueCategory.IsValid())
		assert.True(t, r.Status.IsValid())
		assert.True(t, r.Urgency.IsValid())
		assert.True(t, r.Priority.IsValid())
		assert.True(t, r.AccountHealth.IsValid())
		assert.GreaterOrEqual(t, r.SiteCount, 1)
		assert.LessOrEqual(t, r.SiteCount, 500)
		assert.NotEmpty(t, r.RepName)

		_, err := time.Parse(dateLayout, r.RequestDate)
		assert.NoError(t, err)

		if r.Status == "Resolved" {
			require.NotNil(t, r.TimeToResolution, r.RequestID)
			require.NotNil(t, r.ResolutionDate, r.RequestID)
			assert.Greater(t, *r.TimeToResolution, r.TimeToRespond)
			assert.LessOrEqual(t, *r.TimeToResolution, 168.0)
		} else {
			assert.Nil(t, r.TimeToResolution, r.RequestID)
			assert.Nil(t, r.ResolutionDate, r.RequestID)
		}
	}
}

func TestGenerateSample_Deterministic(t *testing.T) {
	a := GenerateSample(rand.New(rand.NewPCG(7, 7)), 20)
	b := GenerateSample(rand.New(rand.NewPCG(7, 7)), 20)
	assert.Equal(t, a, b)
}
