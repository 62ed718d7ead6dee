package ports

import "context"

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Page carries 1-based pagination parameters.
type Page struct {
	Page  int
	Limit int
}

// Normalize clamps Page to >= 1 and Limit to (0, 100], defaulting to 20.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	return p
}

// Skip is the number of documents before the page.
func (p Page) Skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// ListResult is a page of items plus the unpaginated total.
type ListResult[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// NewListResult builds a ListResult and derives TotalPages.
func NewListResult[T any](items []T, total int64, p Page) *ListResult[T] {
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	if items == nil {
		items = []T{}
	}
	return &ListResult[T]{Items: items, Total: total, Page: p.Page, Limit: p.Limit, TotalPages: pages}
}

// TxRunner runs fn inside a store transaction. Repositories called with the
// ctx handed to fn take part in the transaction.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
