package domain

const (
	MaxPageLimit  = 100
	maxPageNumber = 1_000_000
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Limit  int
}

// NewPage clamps invalid input to page 1 and the given default limit.
// limit never exceeds MaxPageLimit, and number is capped so Offset cannot overflow.
func NewPage(number, limit, defaultLimit int) Page {
	if number < 1 {
		number = 1
	}
	number = min(number, maxPageNumber)
	if limit < 1 {
		limit = defaultLimit
	}
	limit = min(limit, MaxPageLimit)
	return Page{Number: number, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// PageResult is one page of a listing plus its metadata.
type PageResult[T any] struct {
	Items []T
	Meta  PageMeta
}

func NewPageResult[T any](items []T, page Page, total int) PageResult[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if page.Limit > 0 {
		totalPages = (total + page.Limit - 1) / page.Limit
	}
	return PageResult[T]{
		Items: items,
		Meta: PageMeta{
			Page:       page.Number,
			Limit:      page.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}
