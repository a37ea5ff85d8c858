package server

import (
	"pinboard/internal/models"
	"pinboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Email                string `json:"email"`
		Password             string `json:"password"`
		PasswordConfirmation string `json:"password_confirmation"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Register(ctx, service.RegisterInput{
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account created. Check your email for the activation link.",
		"user":    user,
	})
}

// Activate handles GET /api/auth/activate/:id/:token
func (s *Server) Activate(c *fiber.Ctx) error {
	ctx := c.Context()

	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.authService.Activate(ctx, userID, c.Params("token"))
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Account activated",
		"user":    user,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return models.RespondError(c, err)
	}

	tok, err := s.authService.IssueToken(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"token": tok,
		"user":  user,
	})
}

// Logout handles POST /api/auth/logout. Auth tokens are stateless, so the
// client discards its copy; the endpoint exists so clients have a uniform
// session surface.
func (s *Server) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}
