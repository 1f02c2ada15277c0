package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/harborlight/backend/internal/models"
	"github.com/harborlight/backend/internal/storage"
)

type StoryHandler struct {
	store storage.StoryStore
}

func NewStoryHandler(store storage.StoryStore) *StoryHandler {
	return &StoryHandler{store: store}
}

type storyInput struct {
	Slug       string   `json:"slug"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Body       string   `json:"body"`
	CoverImage string   `json:"cover_image"`
	Published  bool     `json:"published"`
	Tags       []string `json:"tags"`
}

func (in *storyInput) missing() []string {
	var fields []string
	if in.Slug == "" {
		fields = append(fields, "slug")
	}
	if in.Title == "" {
		fields = append(fields, "title")
	}
	if in.Body == "" {
		fields = append(fields, "body")
	}
	return fields
}

// tagModels carries tag names to the store, which resolves or creates rows.
func (in *storyInput) tagModels() []models.Tag {
	tags := make([]models.Tag, 0, len(in.Tags))
	for _, name := range in.Tags {
		tags = append(tags, models.Tag{Name: name})
	}
	return tags
}

func (h *StoryHandler) List(c *fiber.Ctx) error {
	return h.list(c, true)
}

func (h *StoryHandler) AdminList(c *fiber.Ctx) error {
	return h.list(c, false)
}

func (h *StoryHandler) list(c *fiber.Ctx, publishedOnly bool) error {
	filter := storage.StoryFilter{
		PublishedOnly: publishedOnly,
		Tag:           c.Query("tag"),
		Page:          c.QueryInt("page", 1),
		Limit:         c.QueryInt("limit", 20),
	}.Normalized()

	stories, total, err := h.store.List(c.Context(), filter)
	if err != nil {
		return storeErr(c, err, "")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"stories": stories,
		"total":   total,
		"page":    filter.Page,
		"limit":   filter.Limit,
	})
}

func (h *StoryHandler) GetBySlug(c *fiber.Ctx) error {
	story, err := h.store.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return storeErr(c, err, "")
	}
	if !story.Published {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	return c.JSON(fiber.Map{"success": true, "story": story})
}

func (h *StoryHandler) Create(c *fiber.Ctx) error {
	var in storyInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if fields := in.missing(); len(fields) > 0 {
		return missingFields(c, fields)
	}

	story := &models.Story{
		Slug:       in.Slug,
		Title:      in.Title,
		Summary:    in.Summary,
		Body:       in.Body,
		CoverImage: in.CoverImage,
		Published:  in.Published,
		Tags:       in.tagModels(),
	}
	if in.Published {
		now := time.Now()
		story.PublishedAt = &now
	}
	if err := h.store.Create(c.Context(), story); err != nil {
		return storeErr(c, err, "A story with this slug already exists")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "story": story})
}

func (h *StoryHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	story, err := h.store.GetByID(c.Context(), id)
	if err != nil {
		return storeErr(c, err, "")
	}

	var in storyInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if fields := in.missing(); len(fields) > 0 {
		return missingFields(c, fields)
	}

	story.Slug = in.Slug
	story.Title = in.Title
	story.Summary = in.Summary
	story.Body = in.Body
	story.CoverImage = in.CoverImage
	story.Tags = in.tagModels()
	if in.Published && !story.Published {
		now := time.Now()
		story.PublishedAt = &now
	}
	story.Published = in.Published

	if err := h.store.Update(c.Context(), story); err != nil {
		return storeErr(c, err, "A story with this slug already exists")
	}
	return c.JSON(fiber.Map{"success": true, "story": story})
}

func (h *StoryHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	if err := h.store.Delete(c.Context(), id); err != nil {
		return storeErr(c, err, "")
	}
	return c.JSON(fiber.Map{"success": true})
}
