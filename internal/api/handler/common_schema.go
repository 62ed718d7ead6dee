package handler

import "github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// PageQuery is embedded by every list query.
type PageQuery struct {
	Page  int `query:"page"  validate:"gte=0"`
	Limit int `query:"limit" validate:"gte=0,max=100"`
}

func (q PageQuery) toPage() ports.Page {
	return ports.Page{Page: q.Page, Limit: q.Limit}.Normalize()
}

type listResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func toListResponse[T any](r *ports.ListResult[T]) listResponse[T] {
	return listResponse[T]{
		Items:      r.Items,
		Total:      r.Total,
		Page:       r.Page,
		Limit:      r.Limit,
		TotalPages: r.TotalPages,
	}
}
