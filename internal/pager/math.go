package pager

// TotalPages returns max(1, ceil(n/size)). A non-positive size counts as one page.
func TotalPages(n, size int) int {
	if size < 1 || n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// Clamp returns page clamped into [1, TotalPages(n, size)].
func Clamp(page, n, size int) int {
	if page < 1 {
		return 1
	}
	if last := TotalPages(n, size); page > last {
		return last
	}
	return page
}

// Bounds returns the half-open [start, end) index range of page within a
// sequence of n items. The page is clamped first.
func Bounds(n, size, page int) (start, end int) {
	if n <= 0 || size < 1 {
		return 0, 0
	}
	page = Clamp(page, n, size)
	start = (page - 1) * size
	end = start + size
	if end > n {
		end = n
	}
	return start, end
}

// Offset returns the zero-based offset of the first item on page.
func Offset(page, size int) int {
	if page < 1 || size < 1 {
		return 0
	}
	return (page - 1) * size
}
