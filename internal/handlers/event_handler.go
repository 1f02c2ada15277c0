package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/harborlight/backend/internal/models"
	"github.com/harborlight/backend/internal/storage"
)

type EventHandler struct {
	store storage.EventStore
}

func NewEventHandler(store storage.EventStore) *EventHandler {
	return &EventHandler{store: store}
}

type eventInput struct {
	Title     string     `json:"title"`
	Details   string     `json:"details"`
	Location  string     `json:"location"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
	Published bool       `json:"published"`
}

func (in *eventInput) missing() []string {
	var fields []string
	if in.Title == "" {
		fields = append(fields, "title")
	}
	if in.StartsAt == nil {
		fields = append(fields, "starts_at")
	}
	return fields
}

func (h *EventHandler) List(c *fiber.Ctx) error {
	events, err := h.store.List(c.Context(), storage.EventFilter{
		PublishedOnly: true,
		UpcomingOnly:  c.Query("upcoming") == "true",
	})
	if err != nil {
		return storeErr(c, err, "")
	}
	return c.JSON(fiber.Map{"success": true, "events": events})
}

func (h *EventHandler) AdminList(c *fiber.Ctx) error {
	events, err := h.store.List(c.Context(), storage.EventFilter{})
	if err != nil {
		return storeErr(c, err, "")
	}
	return c.JSON(fiber.Map{"success": true, "events": events})
}

func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	event, err := h.store.GetByID(c.Context(), id)
	if err != nil {
		return storeErr(c, err, "")
	}
	if !event.Published {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	return c.JSON(fiber.Map{"success": true, "event": event})
}

func (h *EventHandler) Create(c *fiber.Ctx) error {
	var in eventInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if fields := in.missing(); len(fields) > 0 {
		return missingFields(c, fields)
	}

	event := &models.Event{
		Title:     in.Title,
		Details:   in.Details,
		Location:  in.Location,
		StartsAt:  *in.StartsAt,
		Published: in.Published,
	}
	if in.EndsAt != nil {
		event.EndsAt = *in.EndsAt
	}
	if err := h.store.Create(c.Context(), event); err != nil {
		return storeErr(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "event": event})
}

func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	event, err := h.store.GetByID(c.Context(), id)
	if err != nil {
		return storeErr(c, err, "")
	}

	var in eventInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if fields := in.missing(); len(fields) > 0 {
		return missingFields(c, fields)
	}

	event.Title = in.Title
	event.Details = in.Details
	event.Location = in.Location
	event.StartsAt = *in.StartsAt
	if in.EndsAt != nil {
		event.EndsAt = *in.EndsAt
	}
	event.Published = in.Published

	if err := h.store.Update(c.Context(), event); err != nil {
		return storeErr(c, err, "")
	}
	return c.JSON(fiber.Map{"success": true, "event": event})
}

func (h *EventHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	if err := h.store.Delete(c.Context(), id); err != nil {
		return storeErr(c, err, "")
	}
	return c.JSON(fiber.Map{"success": true})
}
