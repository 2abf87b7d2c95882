package query

const (
	// DefaultPageSize is the number of rows per page
	DefaultPageSize = 100
	// PageWindow is how many page numbers are offered around the current page
	PageWindow = 5
)

// PageInfo locates one page within a view. Pages are 1-based; an empty
// view is page 0 of 0.
type PageInfo struct {
	Page       int
	TotalPages int
	Size       int
	Total      int
	Start      int // inclusive row offset
	End        int // exclusive row offset
	HasPrev    bool
	HasNext    bool
	Window     []int
}

// Paginate clamps page into range and computes offsets and the page
// number window
func Paginate(total, page, size int) PageInfo {
	if size <= 0 {
		size = DefaultPageSize
	}
	info := PageInfo{Size: size, Total: total}
	if total <= 0 {
		info.Total = 0
		return info
	}

	info.TotalPages = (total + size - 1) / size
	switch {
	case page < 1:
		page = 1
	case page > info.TotalPages:
		page = info.TotalPages
	}
	info.Page = page
	info.Start = (page - 1) * size
	info.End = min(info.Start+size, total)
	info.HasPrev = page > 1
	info.HasNext = page < info.TotalPages

	first := max(1, page-2)
	last := min(info.TotalPages, first+PageWindow-1)
	if last-first < PageWindow-1 {
		first = max(1, last-PageWindow+1)
	}
	for n := first; n <= last; n++ {
		info.Window = append(info.Window, n)
	}
	return info
}
