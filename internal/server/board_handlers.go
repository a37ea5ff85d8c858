package server

import (
	"pinboard/internal/models"
	"pinboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateBoard handles POST /api/boards
func (s *Server) CreateBoard(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	board, err := s.boardService.CreateBoard(ctx, service.CreateBoardInput{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(board)
}

// GetBoard handles GET /api/boards/:id
func (s *Server) GetBoard(c *fiber.Ctx) error {
	ctx := c.Context()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	board, err := s.boardService.GetBoard(ctx, id)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(board)
}

// GetProfileBoards handles GET /api/profiles/:slug/boards
func (s *Server) GetProfileBoards(c *fiber.Ctx) error {
	ctx := c.Context()

	boards, pg, err := s.boardService.ListBoardsForProfile(ctx, c.Params("slug"), pageParam(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(listResponse(boards, pg))
}

// UpdateBoard handles PUT /api/boards/:id
func (s *Server) UpdateBoard(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	board, err := s.boardService.UpdateBoard(ctx, service.UpdateBoardInput{
		ActorID:     userID,
		BoardID:     id,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(board)
}

// DeleteBoard handles DELETE /api/boards/:id. The board's pins survive,
// detached.
func (s *Server) DeleteBoard(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.boardService.DeleteBoard(ctx, userID, id); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
