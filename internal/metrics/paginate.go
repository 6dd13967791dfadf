package metrics

// DefaultPageSize matches the detail table of the dashboard.
const DefaultPageSize = 10

const maxPageSize = 1000

// Paginate returns the page of rows starting at offset. limit <= 0 means DefaultPageSize.
func Paginate[T any](rows []T, limit, offset int) []T {
	limit, offset = clampLimitOffset(limit, offset, len(rows))
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func clampLimitOffset(limit, offset, n int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset > n {
		offset = n
	}
	return limit, offset
}
