package domain

const (
	// DefaultPageSize is the number of hits the service returns per page.
	DefaultPageSize = 10

	// DefaultPageLimit is the number of pages shown when no limit is given.
	DefaultPageLimit = 5

	// DefaultConcurrency is the number of page requests kept in flight.
	DefaultConcurrency = 5
)

// TotalPages returns ceil(count / pageSize). A non-positive page size
// or count yields zero pages.
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// LastPage returns the last page to fetch for a result of count hits.
// A limit of zero (or less) means every page implied by count.
func LastPage(count, pageSize, limit int) int {
	total := TotalPages(count, pageSize)
	if limit > 0 {
		return min(limit, total)
	}
	return total
}
