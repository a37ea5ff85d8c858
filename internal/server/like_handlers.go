package server

import (
	"pinboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LikePin handles POST /api/pins/:id/likes
func (s *Server) LikePin(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	pinID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	like, err := s.likeService.AddLike(ctx, userID, pinID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(like)
}

// UnlikePin handles DELETE /api/pins/:id/likes
func (s *Server) UnlikePin(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	pinID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.likeService.RemoveLike(ctx, userID, pinID); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetLikes handles GET /api/pins/:id/likes
func (s *Server) GetLikes(c *fiber.Ctx) error {
	ctx := c.Context()

	pinID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	likes, pg, err := s.likeService.ListLikes(ctx, pinID, pageParam(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(listResponse(likes, pg))
}
