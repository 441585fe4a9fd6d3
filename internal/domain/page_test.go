package domain

import (
	"fmt"
	"testing"
)

func numbered(n int) []ServiceRequest {
	records := make([]ServiceRequest, n)
	for i := range records {
		records[i].RequestID = fmt.Sprintf("REG-%05d", i+1)
	}
	return records
}

func TestPaginate_120Records(t *testing.T) {
	records := SortRequests(numbered(120), SortConfig{Key: SortRequestID, Direction: SortAsc})

	if got := PageCount(len(records), PageSize); got != 3 {
		t.Fatalf("Expected 3 pages, got %d", got)
	}

	expected := []int{50, 50, 20}
	for i, size := range expected {
		page := Paginate(records, i+1, PageSize)
		if len(page) != size {
			t.Errorf("Expected page %d to hold %d records, got %d", i+1, size, len(page))
		}
	}

	if first := Paginate(records, 2, PageSize)[0].RequestID; first != "REG-00051" {
		t.Errorf("Expected page 2 to start at REG-00051, got %s", first)
	}
}

func TestPaginate_OutOfRange(t *testing.T) {
	records := numbered(10)

	if got := Paginate(records, 3, PageSize); len(got) != 0 {
		t.Errorf("Expected empty page, got %d records", len(got))
	}
	if got := Paginate(records, 0, PageSize); len(got) != 0 {
		t.Errorf("Expected empty page for page 0, got %d records", len(got))
	}
	if got := Paginate(nil, 1, PageSize); got == nil || len(got) != 0 {
		t.Errorf("Expected non-nil empty page, got %v", got)
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		total    int
		expected int
	}{
		{0, 0},
		{1, 1},
		{50, 1},
		{51, 2},
		{100, 2},
		{120, 3},
	}

	for _, tt := range tests {
		if got := PageCount(tt.total, PageSize); got != tt.expected {
			t.Errorf("PageCount(%d) expected %d, got %d", tt.total, tt.expected, got)
		}
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, pageCount, expected int
	}{
		{1, 3, 1},
		{3, 3, 3},
		{4, 3, 3},
		{0, 3, 1},
		{-2, 3, 1},
		{5, 0, 1},
	}

	for _, tt := range tests {
		if got := ClampPage(tt.page, tt.pageCount); got != tt.expected {
			t.Errorf("ClampPage(%d, %d) expected %d, got %d", tt.page, tt.pageCount, tt.expected, got)
		}
	}
}
