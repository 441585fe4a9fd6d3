package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/fixora/insights/infrastructure/service/logger"
	"github.com/fixora/insights/internal/domain"
	"github.com/fixora/insights/internal/ports"
)

const requestTable = "service_requests"

// requestColumns is the column order used for both reads and bulk copies
var requestColumns = []string{
	"request_id",
	"account_name",
	"vertical",
	"site_count",
	"issue_category",
	"request_date",
	"status",
	"urgency",
	"priority",
	"time_to_respond",
	"time_to_resolution",
	"resolution_date",
	"account_health",
	"rep_name",
}

// PostgresRequestRepository reads and replaces the service request dataset in PostgreSQL
type PostgresRequestRepository struct {
	db     *sql.DB
	logger logger.Logger
}

var (
	_ ports.RequestSource = (*PostgresRequestRepository)(nil)
	_ ports.RequestStore  = (*PostgresRequestRepository)(nil)
)

// NewPostgresRequestRepository creates a new PostgreSQL request repository
func NewPostgresRequestRepository(db *sql.DB, log logger.Logger) *PostgresRequestRepository {
	return &PostgresRequestRepository{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "postgres_requests"}),
	}
}

// Name identifies the source
func (r *PostgresRequestRepository) Name() string {
	return "postgres:" + requestTable
}

// Load returns every stored request in insertion order. Stored categorical
// values are re-validated so rows written by other tools still obey the
// fallback rules.
func (r *PostgresRequestRepository) Load(ctx context.Context) ([]domain.ServiceRequest, error) {
	start := time.Now()

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id`, columnList(), requestTable)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	records := []domain.ServiceRequest{}
	for rows.Next() {
		record, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate requests: %w", err)
	}

	logger.LogPerformance(ctx, r.logger, "load requests", time.Since(start), map[string]interface{}{
		"rows": len(records),
	})
	return records, nil
}

// SaveAll replaces the table contents with records in a single transaction
func (r *PostgresRequestRepository) SaveAll(ctx context.Context, records []domain.ServiceRequest) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "TRUNCATE "+pq.QuoteIdentifier(requestTable)+" RESTART IDENTITY"); err != nil {
		return fmt.Errorf("failed to clear requests: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(requestTable, requestColumns...))
	if err != nil {
		return fmt.Errorf("failed to prepare copy: %w", err)
	}

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, requestArgs(rec)...); err != nil {
			stmt.Close()
			return fmt.Errorf("failed to copy request %s: %w", rec.RequestID, err)
		}
	}
	// flush buffered rows
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("failed to flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("failed to close copy: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit requests: %w", err)
	}

	r.logger.Info(ctx, "Requests replaced", map[string]interface{}{"rows": len(records)})
	return nil
}

// Count returns the number of stored requests
func (r *PostgresRequestRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+pq.QuoteIdentifier(requestTable)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count requests: %w", err)
	}
	return count, nil
}

func columnList() string {
	return strings.Join(requestColumns, ", ")
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(s scanner) (domain.ServiceRequest, error) {
	var (
		rec                        domain.ServiceRequest
		vertical, category, status string
		urgency, priority, health  string
		timeToResolution           sql.NullFloat64
		resolutionDate             sql.NullString
	)

	err := s.Scan(
		&rec.RequestID,
		&rec.AccountName,
		&vertical,
		&rec.SiteCount,
		&category,
		&rec.RequestDate,
		&status,
		&urgency,
		&priority,
		&rec.TimeToRespond,
		&timeToResolution,
		&resolutionDate,
		&health,
		&rec.RepName,
	)
	if err != nil {
		return domain.ServiceRequest{}, fmt.Errorf("failed to scan request: %w", err)
	}

	rec.Vertical = fallback(domain.Vertical(vertical), domain.DefaultVertical)
	rec.IssueCategory = fallback(domain.IssueCategory(category), domain.DefaultIssueCategory)
	rec.Status = fallback(domain.Status(status), domain.DefaultStatus)
	rec.Urgency = fallback(domain.Urgency(urgency), domain.DefaultUrgency)
	rec.Priority = fallback(domain.Priority(priority), domain.DefaultPriority)
	rec.AccountHealth = fallback(domain.AccountHealth(health), domain.DefaultAccountHealth)

	if timeToResolution.Valid {
		v := timeToResolution.Float64
		rec.TimeToResolution = &v
	}
	if resolutionDate.Valid {
		v := resolutionDate.String
		rec.ResolutionDate = &v
	}
	return rec, nil
}

func fallback[T interface{ IsValid() bool }](v, def T) T {
	if v.IsValid() {
		return v
	}
	return def
}

func requestArgs(rec domain.ServiceRequest) []interface{} {
	var timeToResolution sql.NullFloat64
	if rec.TimeToResolution != nil {
		timeToResolution = sql.NullFloat64{Float64: *rec.TimeToResolution, Valid: true}
	}
	var resolutionDate sql.NullString
	if rec.ResolutionDate != nil {
		resolutionDate = sql.NullString{String: *rec.ResolutionDate, Valid: true}
	}

	return []interface{}{
		rec.RequestID,
		rec.AccountName,
		string(rec.Vertical),
		rec.SiteCount,
		string(rec.IssueCategory),
		rec.RequestDate,
		string(rec.Status),
		string(rec.Urgency),
		string(rec.Priority),
		rec.TimeToRespond,
		timeToResolution,
		resolutionDate,
		string(rec.AccountHealth),
		rec.RepName,
	}
}
