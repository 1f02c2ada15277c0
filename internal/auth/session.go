package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Sessions reads and writes the session cookie that carries the token. The
// cookie is HTTP-only, secure, and SameSite=Strict; its expiry matches the
// token's so both lapse together.
type Sessions struct {
	cookieName string
	ttl        time.Duration
}

func NewSessions(cookieName string, ttl time.Duration) *Sessions {
	return &Sessions{cookieName: cookieName, ttl: ttl}
}

func (s *Sessions) Attach(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Expires:  time.Now().Add(s.ttl),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
}

// Read returns the token from the session cookie, or "" when absent.
func (s *Sessions) Read(c *fiber.Ctx) string {
	return c.Cookies(s.cookieName)
}

// Clear overwrites the cookie with an already-expired one (logout).
func (s *Sessions) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
}
