package loader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fixora/insights/infrastructure/service/logger"
	"github.com/fixora/insights/internal/domain"
	"github.com/fixora/insights/internal/ports"
)

// XLSXSource loads service requests from the first (or a named) sheet of a workbook
type XLSXSource struct {
	path   string
	sheet  string
	logger logger.Logger
}

// NewXLSXSource creates a spreadsheet request source
func NewXLSXSource(path, sheet string, log logger.Logger) *XLSXSource {
	return &XLSXSource{
		path:   path,
		sheet:  sheet,
		logger: log.WithFields(map[string]interface{}{"component": "xlsx_loader", "path": path}),
	}
}

var _ ports.RequestSource = (*XLSXSource)(nil)

// Name identifies the source
func (s *XLSXSource) Name() string {
	return "xlsx:" + s.path
}

// Fingerprint hashes the workbook contents so cached snapshots follow file changes
func (s *XLSXSource) Fingerprint(ctx context.Context) (string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash workbook: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Load reads and normalises every data row
func (s *XLSXSource) Load(ctx context.Context) ([]domain.ServiceRequest, error) {
	start := time.Now()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	records, stats, err := readWorkbook(f, s.sheet)
	if err != nil {
		return nil, err
	}

	if stats.Defaulted > 0 || stats.Inconsistent > 0 {
		s.logger.Warn(ctx, "Workbook rows needed normalisation", map[string]interface{}{
			"defaulted":    stats.Defaulted,
			"inconsistent": stats.Inconsistent,
		})
	}
	logger.LogPerformance(ctx, s.logger, "load workbook", time.Since(start), map[string]interface{}{
		"rows":    stats.Rows,
		"skipped": stats.Skipped,
	})
	return records, nil
}

// ReadWorkbook parses a workbook from r
func ReadWorkbook(r io.Reader, sheet string) ([]domain.ServiceRequest, Stats, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return readWorkbook(f, sheet)
}

func readWorkbook(f *excelize.File, sheet string) ([]domain.ServiceRequest, Stats, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, Stats{}, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	records, stats := ParseRows(rows)
	return records, stats, nil
}

// ParseRows maps a header row plus data rows to records. Empty rows are skipped;
// missing columns read as empty cells.
func ParseRows(rows [][]string) ([]domain.ServiceRequest, Stats) {
	var stats Stats
	records := []domain.ServiceRequest{}
	if len(rows) == 0 {
		return records, stats
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		name = strings.TrimSpace(name)
		if _, dup := index[name]; !dup && name != "" {
			index[name] = i
		}
	}

	for _, cells := range rows[1:] {
		if isBlank(cells) {
			stats.Skipped++
			continue
		}

		row := func(column string) string {
			i, ok := index[column]
			if !ok || i >= len(cells) {
				return ""
			}
			return cells[i]
		}

		record, rowStats := NormalizeRow(row)
		stats.Add(rowStats)
		records = append(records, record)
	}
	return records, stats
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// WriteWorkbook writes records to path using the loader's column layout
func WriteWorkbook(path, sheet string, records []domain.ServiceRequest) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Data Table"
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, 0, len(Columns()))
	for _, c := range Columns() {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := rowValues(r)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func rowValues(r domain.ServiceRequest) []interface{} {
	var resolution, resolutionDate interface{} = "", ""
	if r.TimeToResolution != nil {
		resolution = *r.TimeToResolution
	}
	if r.ResolutionDate != nil {
		resolutionDate = *r.ResolutionDate
	}

	return []interface{}{
		r.RequestID,
		r.AccountName,
		string(r.Vertical),
		r.SiteCount,
		string(r.IssueCategory),
		r.RequestDate,
		string(r.Status),
		string(r.Urgency),
		string(r.Priority),
		r.TimeToRespond,
		resolution,
		resolutionDate,
		string(r.AccountHealth),
		r.RepName,
	}
}
