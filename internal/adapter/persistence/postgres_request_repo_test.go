package persistence

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixora/insights/internal/domain"
)

// rowScanner replays one row of column values into Scan destinations
type rowScanner struct {
	values []interface{}
	err    error
}

func (s rowScanner) Scan(dest ...interface{}) error {
	if s.err != nil {
		return s.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = s.values[i].(string)
		case *int:
			*p = s.values[i].(int)
		case *float64:
			*p = s.values[i].(float64)
		case *sql.NullFloat64:
			if v, ok := s.values[i].(float64); ok {
				*p = sql.NullFloat64{Float64: v, Valid: true}
			}
		case *sql.NullString:
			if v, ok := s.values[i].(string); ok {
				*p = sql.NullString{String: v, Valid: true}
			}
		}
	}
	return nil
}

func TestScanRequest(t *testing.T) {
	row := rowScanner{values: []interface{}{
		"REG-00001", "Acme Industries", "Fuel", 12, "Network Issues", "01/15/2024",
		"Resolved", "High", "Medium", 4.5, 30.0, "01/16/2024", "Advocate", "Maria Rodriguez",
	}}

	rec, err := scanRequest(row)

	require.NoError(t, err)
	assert.Equal(t, "REG-00001", rec.RequestID)
	assert.Equal(t, domain.VerticalFuel, rec.Vertical)
	assert.Equal(t, 12, rec.SiteCount)
	assert.Equal(t, domain.IssueCategoryNetworkIssues, rec.IssueCategory)
	assert.Equal(t, domain.StatusResolved, rec.Status)
	require.NotNil(t, rec.TimeToResolution)
	assert.Equal(t, 30.0, *rec.TimeToResolution)
	require.NotNil(t, rec.ResolutionDate)
	assert.Equal(t, "01/16/2024", *rec.ResolutionDate)
	assert.Equal(t, "Maria Rodriguez", rec.RepName)
}

func TestScanRequest_NullsAndUnknownCategories(t *testing.T) {
	row := rowScanner{values: []interface{}{
		"REG-00002", "Metro Group", "Airline", 0, "Other", "02/01/2024",
		"Closed", "Critical", "Urgent", 0.0, nil, nil, "Happy", "",
	}}

	rec, err := scanRequest(row)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultVertical, rec.Vertical)
	assert.Equal(t, domain.DefaultIssueCategory, rec.IssueCategory)
	assert.Equal(t, domain.DefaultStatus, rec.Status)
	assert.Equal(t, domain.DefaultUrgency, rec.Urgency)
	assert.Equal(t, domain.DefaultPriority, rec.Priority)
	assert.Equal(t, domain.DefaultAccountHealth, rec.AccountHealth)
	assert.Nil(t, rec.TimeToResolution)
	assert.Nil(t, rec.ResolutionDate)
}

func TestScanRequest_Error(t *testing.T) {
	_, err := scanRequest(rowScanner{err: errors.New("conn reset")})
	assert.ErrorContains(t, err, "failed to scan request")
}

func TestRequestArgs(t *testing.T) {
	resolution := 8.0
	date := "03/02/2024"
	rec := domain.ServiceRequest{
		RequestID:        "REG-7",
		Vertical:         domain.VerticalGrocery,
		Status:           domain.StatusResolved,
		TimeToResolution: &resolution,
		ResolutionDate:   &date,
	}

	args := requestArgs(rec)

	require.Len(t, args, len(requestColumns))
	assert.Equal(t, "REG-7", args[0])
	assert.Equal(t, "Grocery", args[2])
	assert.Equal(t, sql.NullFloat64{Float64: 8, Valid: true}, args[10])
	assert.Equal(t, sql.NullString{String: "03/02/2024", Valid: true}, args[11])

	args = requestArgs(domain.ServiceRequest{})
	assert.Equal(t, sql.NullFloat64{}, args[10])
	assert.Equal(t, sql.NullString{}, args[11])
}

func TestColumnList(t *testing.T) {
	assert.Equal(t,
		"request_id, account_name, vertical, site_count, issue_category, request_date, status, urgency, priority, "+
			"time_to_respond, time_to_resolution, resolution_date, account_health, rep_name",
		columnList())
}
