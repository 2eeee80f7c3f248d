package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

const technicianKey = "auth_technician"

// Middleware guards technician-only routes via the session cookie.
type Middleware struct {
	sessions *SessionManager
}

// NewMiddleware constructs the guard.
func NewMiddleware(sessions *SessionManager) *Middleware {
	return &Middleware{sessions: sessions}
}

// RequireTechnician rejects requests without a technician-bearing session
// and refreshes the cookie lifetime on every authenticated request.
func (m *Middleware) RequireTechnician(c *fiber.Ctx) error {
	cookie := c.Cookies(CookieName)
	if cookie == "" {
		return apperrors.NewForbidden("technician session required")
	}

	claims, err := m.sessions.Parse(cookie)
	if err != nil || claims.Technician == "" {
		return apperrors.NewForbidden("technician session required")
	}

	refreshed, expires, err := m.sessions.Issue(claims.Technician)
	if err == nil {
		SetCookie(c, refreshed, expires)
	}

	c.Locals(technicianKey, claims.Technician)
	return c.Next()
}

// TechnicianFromContext retrieves the authenticated technician username.
func TechnicianFromContext(c *fiber.Ctx) (string, bool) {
	val := c.Locals(technicianKey)
	if val == nil {
		return "", false
	}
	technician, ok := val.(string)
	return technician, ok && technician != ""
}
