package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/service"
)

// AuthHandler serves technician login and logout.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login POST /login. On failure an anonymous session cookie is still set,
// so the response shape, cookie behavior and latency are the same whether
// or not the username exists.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return h.reject(c)
	}

	token, expires, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		return h.reject(c)
	}

	auth.SetCookie(c, token, expires)
	return c.JSON(fiber.Map{"message": "login successful"})
}

func (h *AuthHandler) reject(c *fiber.Ctx) error {
	if token, expires, err := h.auth.SessionManager().Issue(""); err == nil {
		auth.SetCookie(c, token, expires)
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": fiber.Map{"code": "UNAUTHORIZED", "message": "Invalid credentials."},
	})
}

// Logout GET /logout. Clears the technician identity unconditionally.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	auth.ClearCookie(c)
	return c.JSON(fiber.Map{"message": "logged out"})
}
