package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/harborlight/backend/internal/models"
	"github.com/harborlight/backend/internal/storage"
)

type TagHandler struct {
	store storage.TagStore
}

func NewTagHandler(store storage.TagStore) *TagHandler {
	return &TagHandler{store: store}
}

func (h *TagHandler) List(c *fiber.Ctx) error {
	tags, err := h.store.List(c.Context())
	if err != nil {
		return storeErr(c, err, "")
	}
	return c.JSON(fiber.Map{"success": true, "tags": tags})
}

func (h *TagHandler) Create(c *fiber.Ctx) error {
	var in struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if in.Name == "" {
		return missingFields(c, []string{"name"})
	}

	tag := &models.Tag{Name: in.Name}
	if err := h.store.Create(c.Context(), tag); err != nil {
		return storeErr(c, err, "A tag with this name already exists")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "tag": tag})
}

func (h *TagHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	if err := h.store.Delete(c.Context(), id); err != nil {
		return storeErr(c, err, "")
	}
	return c.JSON(fiber.Map{"success": true})
}
