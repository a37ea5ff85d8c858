// Package pagination provides the page provider used by all listing
// endpoints. Pages are 1-based; each listing passes its own page size so
// likes and comments can carry independent policies.
package pagination

import (
	"fmt"

	"pinboard/internal/models"
)

// Page describes one page of a listing.
type Page struct {
	Number     int   `json:"page"`
	Size       int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	Offset     int   `json:"-"`
}

// Resolve validates the requested page against the total item count and
// returns offsets for the query. Requesting a page past the last available
// page is an error, not an empty success. Page 1 of an empty listing is
// valid.
func Resolve(totalItems int64, pageSize, requestedPage int) (Page, error) {
	if pageSize <= 0 {
		return Page{}, models.NewInternalError(fmt.Errorf("invalid page size %d", pageSize))
	}
	if requestedPage < 1 {
		return Page{}, models.NewInvalidPageError(fmt.Sprintf("invalid page %d", requestedPage))
	}

	totalPages := int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	if totalPages == 0 {
		totalPages = 1
	}
	if requestedPage > totalPages {
		return Page{}, models.NewInvalidPageError(
			fmt.Sprintf("page %d is past the last page (%d)", requestedPage, totalPages))
	}

	return Page{
		Number:     requestedPage,
		Size:       pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
		Offset:     (requestedPage - 1) * pageSize,
	}, nil
}
