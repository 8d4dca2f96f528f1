// Package paginate slices an ordered sequence into fixed-size pages.
// It is stateless: the caller owns the current page number.
package paginate

type Page[T any] struct {
	Items      []T
	Number     int
	TotalPages int
	TotalItems int
}

// TotalPages is ceil(count/size), never below 1.
func TotalPages(count, size int) int {
	if size < 1 {
		size = 1
	}
	n := (count + size - 1) / size
	if n < 1 {
		return 1
	}
	return n
}

// Clamp forces page into [1, totalPages]. Out-of-range requests are
// never an error.
func Clamp(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate returns the requested page of items. The page number is
// clamped before slicing, so the returned Number may differ from the
// requested one.
func Paginate[T any](items []T, size, page int) Page[T] {
	if size < 1 {
		size = 1
	}
	totalPages := TotalPages(len(items), size)
	page = Clamp(page, totalPages)

	start := (page - 1) * size
	end := min(start+size, len(items))
	if start > len(items) {
		start = len(items)
	}

	return Page[T]{
		Items:      items[start:end:end],
		Number:     page,
		TotalPages: totalPages,
		TotalItems: len(items),
	}
}
