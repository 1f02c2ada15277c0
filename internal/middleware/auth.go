package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harborlight/backend/internal/auth"
	"github.com/harborlight/backend/internal/models"
	"github.com/harborlight/backend/internal/storage"
)

// Key under which the role gate stores the resolved user for handlers.
const UserKey = "current_user"

// Authenticator resolves the calling user from a request's session cookie.
type Authenticator struct {
	users    storage.UserStore
	tokens   *auth.TokenManager
	sessions *auth.Sessions
}

func NewAuthenticator(users storage.UserStore, tokens *auth.TokenManager, sessions *auth.Sessions) *Authenticator {
	return &Authenticator{users: users, tokens: tokens, sessions: sessions}
}

// CurrentUser returns the live user behind the request's session, or nil when
// the cookie is missing, the token invalid or expired, or the user no longer
// exists or is inactive. Read-only; producing a 401 is the caller's job.
func (a *Authenticator) CurrentUser(c *fiber.Ctx) *models.User {
	token := a.sessions.Read(c)
	if token == "" {
		return nil
	}
	claims, err := a.tokens.Validate(token)
	if err != nil {
		return nil
	}
	user, err := a.users.GetByID(c.Context(), claims.UserID)
	if err != nil || !user.Active {
		return nil
	}
	return user
}

// RequireRoles gates a route on role membership: 401 when no user resolves,
// 403 when the role is not in the allowed set. The check is set membership
// only; ADMIN passes an EDITOR gate only when listed explicitly. On success
// the user is stashed in c.Locals under UserKey.
func (a *Authenticator) RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := a.CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
		}
		allowed := false
		for _, role := range roles {
			if user.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient permissions"})
		}
		c.Locals(UserKey, user)
		return c.Next()
	}
}

// UserFromCtx retrieves the user stored by RequireRoles.
func UserFromCtx(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(UserKey).(*models.User)
	return user
}
