package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/harborlight/backend/internal/auth"
	"github.com/harborlight/backend/internal/middleware"
	"github.com/harborlight/backend/internal/services"
)

type AuthHandler struct {
	svc      *services.AuthService
	sessions *auth.Sessions
	authn    *middleware.Authenticator
}

func NewAuthHandler(svc *services.AuthService, sessions *auth.Sessions, authn *middleware.Authenticator) *AuthHandler {
	return &AuthHandler{svc: svc, sessions: sessions, authn: authn}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if request.Email == "" || request.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	user, token, err := h.svc.Login(c.Context(), request.Email, request.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}
		return storeErr(c, err, "")
	}

	h.sessions.Attach(c, token)
	return c.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"id":     user.ID.Hex(),
			"email":  user.Email,
			"name":   user.Name,
			"role":   user.Role,
			"avatar": user.Avatar,
		},
		"token": token,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Clear(c)
	return c.JSON(fiber.Map{"success": true})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := h.authn.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	}
	return c.JSON(fiber.Map{"success": true, "user": user})
}
