package dex

import "pokehub/pkg/models"

// Page is one page of display records plus pagination state.
// Total always counts every match across all pages, not just this one.
type Page struct {
	Items      []models.Pokemon `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page,omitempty"`
	TotalPages int              `json:"total_pages,omitempty"`
	HasNext    bool             `json:"has_next"`
	HasPrev    bool             `json:"has_prev"`
}

func newPage(items []models.Pokemon, total, page, limit int) *Page {
	offset := (page - 1) * limit

	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return &Page{
		Items:      items,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		HasNext:    offset+limit < total,
		HasPrev:    page > 1,
	}
}
