package server

import (
	"strconv"

	"pinboard/internal/models"
	"pinboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePin handles POST /api/pins. The request is multipart: the image
// file plus title, description, and an optional board assignment.
func (s *Server) CreatePin(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid multipart form"))
	}

	in := service.CreatePinInput{
		OwnerID:     userID,
		Title:       formValue(form.Value, "title"),
		Description: formValue(form.Value, "description"),
	}

	if raw := formValue(form.Value, "board_id"); raw != "" {
		boardID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || boardID == 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid board ID"))
		}
		id := uint(boardID)
		in.BoardID = &id
	}

	files, ok := form.File["image"]
	if !ok || len(files) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image is required"))
	}
	content, contentType, err := readUpload(files[0])
	if err != nil {
		return models.RespondError(c, err)
	}
	in.ImageContent = content
	in.ImageType = contentType

	pin, err := s.pinService.CreatePin(ctx, in)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pin)
}

// GetPins handles GET /api/pins
func (s *Server) GetPins(c *fiber.Ctx) error {
	ctx := c.Context()

	pins, pg, err := s.pinService.ListPins(ctx, pageParam(c), s.currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(listResponse(pins, pg))
}

// GetPin handles GET /api/pins/:id
func (s *Server) GetPin(c *fiber.Ctx) error {
	ctx := c.Context()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	pin, err := s.pinService.GetPin(ctx, id, s.currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(pin)
}

// UpdatePin handles PUT /api/pins/:id. Multipart like creation; the image
// and the board assignment are both optional here.
func (s *Server) UpdatePin(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid multipart form"))
	}

	in := service.UpdatePinInput{
		ActorID: userID,
		PinID:   id,
	}

	formString := func(key string) *string {
		if vals, ok := form.Value[key]; ok && len(vals) > 0 {
			return &vals[0]
		}
		return nil
	}
	in.Title = formString("title")
	in.Description = formString("description")

	// board_id present and empty detaches; present and numeric moves the
	// pin; absent leaves the assignment alone.
	if raw := formString("board_id"); raw != nil {
		in.SetBoard = true
		if *raw != "" {
			boardID, err := strconv.ParseUint(*raw, 10, 32)
			if err != nil || boardID == 0 {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError("Invalid board ID"))
			}
			id := uint(boardID)
			in.BoardID = &id
		}
	}

	if files, ok := form.File["image"]; ok && len(files) > 0 {
		content, contentType, err := readUpload(files[0])
		if err != nil {
			return models.RespondError(c, err)
		}
		in.ImageContent = content
		in.ImageType = contentType
	}

	pin, err := s.pinService.UpdatePin(ctx, in)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(pin)
}

// DeletePin handles DELETE /api/pins/:id
func (s *Server) DeletePin(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.pinService.DeletePin(ctx, userID, id); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func formValue(values map[string][]string, key string) string {
	if vals, ok := values[key]; ok && len(vals) > 0 {
		return vals[0]
	}
	return ""
}
