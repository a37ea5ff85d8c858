package server

import (
	"errors"
	"io"
	"mime/multipart"

	"pinboard/internal/models"
	"pinboard/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// pageParam reads the 1-based "page" query parameter. Range validation
// against the listing's total happens in the page provider, not here.
func pageParam(c *fiber.Ctx) int {
	return c.QueryInt("page", 1)
}

// readUpload reads an uploaded file into memory. Size limits are enforced
// upstream by Fiber's body limit and again by the image store.
func readUpload(fh *multipart.FileHeader) ([]byte, string, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, "", models.NewValidationError("Could not read uploaded file")
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, "", models.NewValidationError("Could not read uploaded file")
	}
	return content, fh.Header.Get("Content-Type"), nil
}

// listResponse is the uniform envelope for paginated listings.
func listResponse(items any, pg pagination.Page) fiber.Map {
	return fiber.Map{
		"items":       items,
		"page":        pg.Number,
		"page_size":   pg.Size,
		"total_items": pg.TotalItems,
		"total_pages": pg.TotalPages,
	}
}
