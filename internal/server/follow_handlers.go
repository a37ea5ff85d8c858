package server

import (
	"pinboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowProfile handles POST /api/profiles/:slug/follows
func (s *Server) FollowProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	follow, err := s.followService.Follow(ctx, userID, c.Params("slug"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(follow)
}

// UnfollowProfile handles DELETE /api/profiles/:slug/follows
func (s *Server) UnfollowProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	if err := s.followService.Unfollow(ctx, userID, c.Params("slug")); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetFollowers handles GET /api/profiles/:slug/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	ctx := c.Context()

	follows, pg, err := s.followService.ListFollowers(ctx, c.Params("slug"), pageParam(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(listResponse(follows, pg))
}

// GetFollowing handles GET /api/profiles/:slug/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	ctx := c.Context()

	follows, pg, err := s.followService.ListFollowing(ctx, c.Params("slug"), pageParam(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(listResponse(follows, pg))
}
