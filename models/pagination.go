package models

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a 1-based page request.
type Page struct {
	Page  int
	Limit int
}

// Normalize applies defaults and caps the size.
func (p Page) Normalize(defaultLimit int) Page {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Page) Skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

type PageMeta struct {
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
}

func NewPageMeta(total int64, p Page) PageMeta {
	pages := 0
	if total > 0 && p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return PageMeta{Total: total, TotalPages: pages, CurrentPage: p.Page}
}
