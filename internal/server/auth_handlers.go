package server

import (
	"log/slog"

	"newsfeed/internal/middleware"
	"newsfeed/internal/models"
	"newsfeed/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /api/auth/signup. It records a pending registration;
// the verification code is delivered out of band.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req service.SignupInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	auth, err := s.authService.RequestSignup(c.UserContext(), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	// Stand-in for mail delivery; a real deployment sends the code by email.
	middleware.Logger.InfoContext(c.UserContext(), "signup verification code issued",
		slog.String("email", auth.Email),
		slog.String("code", auth.Code),
		slog.Time("expires_at", auth.ExpiresAt),
	)

	return c.Status(fiber.StatusCreated).JSON(models.ErrorResponse{
		Message: "verification code sent",
		Code:    fiber.StatusCreated,
	})
}

// VerifySignup handles POST /api/auth/verify
func (s *Server) VerifySignup(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Email == "" || req.Code == "" {
		return models.RespondWithError(c, models.NewValidationError("email and code are required"))
	}

	user, err := s.authService.VerifySignup(c.UserContext(), req.Email, req.Code)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, models.NewValidationError("email and password are required"))
	}

	token, user, err := s.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}
