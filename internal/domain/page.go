package domain

// PageSize is the fixed number of rows per details table page
const PageSize = 50

// PageCount returns ceil(total/size); zero rows give zero pages
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// ClampPage keeps page within [1, pageCount]. With no pages the result is 1.
func ClampPage(page, pageCount int) int {
	if page > pageCount {
		page = pageCount
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate returns the 1-based page of records. It only slices: pages outside
// the data yield an empty result.
func Paginate(records []ServiceRequest, page, size int) []ServiceRequest {
	if page < 1 || size <= 0 {
		return []ServiceRequest{}
	}
	start := (page - 1) * size
	if start >= len(records) {
		return []ServiceRequest{}
	}
	end := min(start+size, len(records))
	return records[start:end]
}
