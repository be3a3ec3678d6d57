package pagination

import (
	"math"
	"strconv"
)

// Paginator slices listings into 1-indexed pages of a fixed size. Requests
// outside the valid range clamp instead of erroring: a malformed or too-small
// page number resolves to the first page, a too-large one to the last.
type Paginator struct {
	PerPage int
}

func New(perPage int) *Paginator {
	if perPage < 1 {
		perPage = 1
	}
	return &Paginator{PerPage: perPage}
}

// PageInfo locates one slice of a listing.
type PageInfo struct {
	Number     int
	PerPage    int
	TotalItems int64
	TotalPages int
}

// Page is a PageInfo together with the items on it.
type Page[T any] struct {
	PageInfo
	Items []T
}

// PageFor resolves a requested page number against a total item count,
// clamping as needed. An empty listing still has one (empty) page.
func (p *Paginator) PageFor(total int64, requested int) PageInfo {
	pages := int(math.Ceil(float64(total) / float64(p.PerPage)))
	if pages == 0 {
		pages = 1
	}
	n := requested
	if n < 1 {
		n = 1
	}
	if n > pages {
		n = pages
	}
	return PageInfo{
		Number:     n,
		PerPage:    p.PerPage,
		TotalItems: total,
		TotalPages: pages,
	}
}

// ParsePage interprets a raw ?page= value. Anything that is not a positive
// integer resolves to page 1; range clamping happens in PageFor.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Offset is the number of rows to skip for this page.
func (pi PageInfo) Offset() int {
	return (pi.Number - 1) * pi.PerPage
}

func (pi PageInfo) HasPrev() bool { return pi.Number > 1 }
func (pi PageInfo) HasNext() bool { return pi.Number < pi.TotalPages }
func (pi PageInfo) PrevPage() int { return pi.Number - 1 }
func (pi PageInfo) NextPage() int { return pi.Number + 1 }
