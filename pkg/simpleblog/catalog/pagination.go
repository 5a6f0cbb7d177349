package catalog

// DefaultPageSize is the number of blogs per catalog page
const DefaultPageSize = 6

// WindowSize is the number of page links shown around the current page
const WindowSize = 5

// PageCount returns the number of pages needed for total items. It is at
// least 1 so an empty result still has a first page.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return max(1, (total+pageSize-1)/pageSize)
}

// Clamp limits page to [1, pageCount]
func Clamp(page, pageCount int) int {
	return min(max(1, pageCount), max(1, page))
}

// Window returns up to size consecutive page numbers starting size/2 pages
// before the current one.
func Window(page, pageCount, size int) []int {
	if size <= 0 {
		size = WindowSize
	}
	start := max(1, page-size/2)
	if start > pageCount {
		return []int{}
	}
	end := min(pageCount, start+size-1)
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
