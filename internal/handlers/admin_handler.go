package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/harborlight/backend/internal/models"
	"github.com/harborlight/backend/internal/services"
	"github.com/harborlight/backend/internal/storage"
)

// AdminHandler manages user accounts. All routes behind the ADMIN gate.
type AdminHandler struct {
	users storage.UserStore
	auth  *services.AuthService
}

func NewAdminHandler(users storage.UserStore, auth *services.AuthService) *AdminHandler {
	return &AdminHandler{users: users, auth: auth}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return storeErr(c, err, "")
	}
	return c.JSON(fiber.Map{"success": true, "users": users})
}

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	var fields []string
	if in.Email == "" {
		fields = append(fields, "email")
	}
	if in.Password == "" {
		fields = append(fields, "password")
	}
	if in.Role == "" {
		fields = append(fields, "role")
	}
	if len(fields) > 0 {
		return missingFields(c, fields)
	}

	user, err := h.auth.CreateUser(c.Context(), in.Email, in.Name, in.Password, in.Role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return badRequest(c, "A user with this email already exists")
		case errors.Is(err, services.ErrInvalidRole):
			return badRequest(c, "Invalid role")
		default:
			return storeErr(c, err, "")
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "user": user})
}

func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErr(c, err, "")
	}

	var in struct {
		Name   *string `json:"name"`
		Role   *string `json:"role"`
		Avatar *string `json:"avatar"`
		Active *bool   `json:"active"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Role != nil {
		if !models.ValidRole(*in.Role) {
			return badRequest(c, "Invalid role")
		}
		user.Role = *in.Role
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}
	if in.Active != nil {
		user.Active = *in.Active
	}

	if err := h.users.Update(c.Context(), user); err != nil {
		return storeErr(c, err, "")
	}
	return c.JSON(fiber.Map{"success": true, "user": user})
}

// DeleteUser deactivates the account rather than removing the record.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.users.Deactivate(c.Context(), c.Params("id")); err != nil {
		return storeErr(c, err, "")
	}
	return c.JSON(fiber.Map{"success": true})
}
