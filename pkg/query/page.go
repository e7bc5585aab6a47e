package query

// Page is one page of a listing.
type Page[T any] struct {
	Items   []T
	Total   int
	Page    int
	PerPage int
}

// Paginate cuts the page described by q out of a fully filtered and sorted slice.
func Paginate[T any](items []T, q Query) Page[T] {
	p := Page[T]{
		Total:   len(items),
		Page:    q.Page(),
		PerPage: q.PerPage(),
	}

	start := q.Offset()
	if start < 0 || start >= len(items) {
		p.Items = []T{}
		return p
	}
	end := min(start+p.PerPage, len(items))
	p.Items = items[start:end]
	return p
}

// TotalPages returns the number of pages, at least 1.
func (p Page[T]) TotalPages() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 1
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages() }

// HasPrev reports whether a page precedes this one.
func (p Page[T]) HasPrev() bool { return p.Page > 1 }
