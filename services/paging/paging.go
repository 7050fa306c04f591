package paging

// Pages splits items into consecutive slices of the given size. The
// last slice may be short. A non-positive size yields a single page
// with everything on it.
func Pages[T any](items []T, size int) [][]T {
	if size <= 0 {
		return [][]T{items}
	}
	var pages [][]T
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, items[start:end])
	}
	return pages
}

// Count returns the number of pages: ceil(n / size)
func Count(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	count := n / size
	if n%size > 0 {
		count++
	}
	return count
}

// Page returns one page of items; page numbers start at 1. Pages past
// the end are empty.
func Page[T any](items []T, page, size int) []T {
	if page < 1 || size <= 0 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
