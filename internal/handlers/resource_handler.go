package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/harborlight/backend/internal/models"
	"github.com/harborlight/backend/internal/storage"
)

type ResourceHandler struct {
	store storage.ResourceStore
}

func NewResourceHandler(store storage.ResourceStore) *ResourceHandler {
	return &ResourceHandler{store: store}
}

type resourceInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Category    string `json:"category"`
	Published   bool   `json:"published"`
}

func (in *resourceInput) missing() []string {
	var fields []string
	if in.Title == "" {
		fields = append(fields, "title")
	}
	if in.URL == "" {
		fields = append(fields, "url")
	}
	return fields
}

func (h *ResourceHandler) List(c *fiber.Ctx) error {
	resources, err := h.store.List(c.Context(), storage.ResourceFilter{
		PublishedOnly: true,
		Category:      c.Query("category"),
	})
	if err != nil {
		return storeErr(c, err, "")
	}
	return c.JSON(fiber.Map{"success": true, "resources": resources})
}

func (h *ResourceHandler) AdminList(c *fiber.Ctx) error {
	resources, err := h.store.List(c.Context(), storage.ResourceFilter{Category: c.Query("category")})
	if err != nil {
		return storeErr(c, err, "")
	}
	return c.JSON(fiber.Map{"success": true, "resources": resources})
}

func (h *ResourceHandler) Create(c *fiber.Ctx) error {
	var in resourceInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if fields := in.missing(); len(fields) > 0 {
		return missingFields(c, fields)
	}

	resource := &models.Resource{
		Title:       in.Title,
		Description: in.Description,
		URL:         in.URL,
		Category:    in.Category,
		Published:   in.Published,
	}
	if err := h.store.Create(c.Context(), resource); err != nil {
		return storeErr(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "resource": resource})
}

func (h *ResourceHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	resource, err := h.store.GetByID(c.Context(), id)
	if err != nil {
		return storeErr(c, err, "")
	}

	var in resourceInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if fields := in.missing(); len(fields) > 0 {
		return missingFields(c, fields)
	}

	resource.Title = in.Title
	resource.Description = in.Description
	resource.URL = in.URL
	resource.Category = in.Category
	resource.Published = in.Published

	if err := h.store.Update(c.Context(), resource); err != nil {
		return storeErr(c, err, "")
	}
	return c.JSON(fiber.Map{"success": true, "resource": resource})
}

func (h *ResourceHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	if err := h.store.Delete(c.Context(), id); err != nil {
		return storeErr(c, err, "")
	}
	return c.JSON(fiber.Map{"success": true})
}
