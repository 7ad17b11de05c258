// Package pagination clamps user-supplied page numbers against a known total.
package pagination

import (
	"strconv"
	"strings"

	"blogicum-backend/internal/shared/response"
)

// Page is one slice of an ordered collection.
// Number is always within [1, TotalPages]; an empty collection has one empty page.
type Page struct {
	Number     int
	PerPage    int
	TotalItems int
	TotalPages int
}

// NewPage parses raw and clamps it to the nearest valid page.
// Non-integer or empty input yields page 1.
func NewPage(raw string, perPage, total int) Page {
	if perPage < 1 {
		perPage = 1
	}
	if total < 0 {
		total = 0
	}

	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}

	number, err := strconv.Atoi(strings.TrimSpace(raw))
	switch {
	case err != nil, number < 1:
		number = 1
	case number > pages:
		number = pages
	}

	return Page{Number: number, PerPage: perPage, TotalItems: total, TotalPages: pages}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p Page) Limit() int {
	return p.PerPage
}

func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

func (p Page) HasPrevious() bool {
	return p.Number > 1
}

// Size is the number of items that fall on this page
func (p Page) Size() int {
	remaining := p.TotalItems - p.Offset()
	if remaining < 0 {
		return 0
	}
	if remaining > p.PerPage {
		return p.PerPage
	}
	return remaining
}

func (p Page) Meta() *response.Meta {
	return &response.Meta{
		Page:       p.Number,
		Limit:      p.PerPage,
		Total:      p.TotalItems,
		TotalPages: p.TotalPages,
		HasNext:    p.HasNext(),
		HasPrev:    p.HasPrevious(),
	}
}
