package server

import (
	"pinboard/internal/models"
	"pinboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/profiles/:slug
func (s *Server) GetProfile(c *fiber.Ctx) error {
	ctx := c.Context()

	profile, err := s.profileService.GetBySlug(ctx, c.Params("slug"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(profile)
}

// UpdateProfile handles PUT /api/profiles/:slug. The request is multipart
// so an avatar upload can ride along with the field updates.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	in := service.UpdateProfileInput{
		ActorID: userID,
		Slug:    c.Params("slug"),
	}

	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid multipart form"))
	}

	formString := func(key string) *string {
		if vals, ok := form.Value[key]; ok && len(vals) > 0 {
			return &vals[0]
		}
		return nil
	}
	in.Username = formString("username")
	in.FirstName = formString("first_name")
	in.LastName = formString("last_name")
	in.Bio = formString("bio")

	if files, ok := form.File["avatar"]; ok && len(files) > 0 {
		content, contentType, err := readUpload(files[0])
		if err != nil {
			return models.RespondError(c, err)
		}
		ref, err := s.images.Save(ctx, content, contentType)
		if err != nil {
			return models.RespondError(c, err)
		}
		in.Avatar = ref
	}

	profile, err := s.profileService.Update(ctx, in)
	if err != nil {
		// The rejected update must not strand its freshly stored avatar.
		if in.Avatar != "" {
			_ = s.images.Delete(ctx, in.Avatar)
		}
		return models.RespondError(c, err)
	}
	return c.JSON(profile)
}
