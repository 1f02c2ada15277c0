package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/harborlight/backend/internal/middleware"
	"github.com/harborlight/backend/internal/models"
	"github.com/harborlight/backend/internal/storage"
)

type ArticleHandler struct {
	store storage.ArticleStore
}

func NewArticleHandler(store storage.ArticleStore) *ArticleHandler {
	return &ArticleHandler{store: store}
}

type articleInput struct {
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	Body       string `json:"body"`
	Category   string `json:"category"`
	CoverImage string `json:"cover_image"`
	Published  bool   `json:"published"`
}

func (in *articleInput) missing() []string {
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

// List is the public listing: published articles only.
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	articles, err := h.store.List(c.Context(), storage.ArticleFilter{
		PublishedOnly: true,
		Category:      c.Query("category"),
	})
	if err != nil {
		return storeErr(c, err, "")
	}
	return c.JSON(fiber.Map{"success": true, "articles": articles})
}

// GetBySlug serves one published article; drafts are a 404 to the public.
func (h *ArticleHandler) GetBySlug(c *fiber.Ctx) error {
	article, err := h.store.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return storeErr(c, err, "")
	}
	if !article.Published {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	return c.JSON(fiber.Map{"success": true, "article": article})
}

// AdminList includes drafts.
func (h *ArticleHandler) AdminList(c *fiber.Ctx) error {
	articles, err := h.store.List(c.Context(), storage.ArticleFilter{Category: c.Query("category")})
	if err != nil {
		return storeErr(c, err, "")
	}
	return c.JSON(fiber.Map{"success": true, "articles": articles})
}

func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	var in articleInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if fields := in.missing(); len(fields) > 0 {
		return missingFields(c, fields)
	}

	now := time.Now()
	article := &models.Article{
		Slug:       in.Slug,
		Title:      in.Title,
		Summary:    in.Summary,
		Body:       in.Body,
		Category:   in.Category,
		CoverImage: in.CoverImage,
		AuthorID:   middleware.UserFromCtx(c).ID.Hex(),
		Published:  in.Published,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.Published {
		article.PublishedAt = &now
	}
	if err := h.store.Create(c.Context(), article); err != nil {
		return storeErr(c, err, "An article with this slug already exists")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "article": article})
}

func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	article, err := h.store.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErr(c, err, "")
	}

	var in articleInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if fields := in.missing(); len(fields) > 0 {
		return missingFields(c, fields)
	}

	article.Slug = in.Slug
	article.Title = in.Title
	article.Summary = in.Summary
	article.Body = in.Body
	article.Category = in.Category
	article.CoverImage = in.CoverImage
	if in.Published && !article.Published {
		now := time.Now()
		article.PublishedAt = &now
	}
	article.Published = in.Published

	if err := h.store.Update(c.Context(), article); err != nil {
		return storeErr(c, err, "An article with this slug already exists")
	}
	return c.JSON(fiber.Map{"success": true, "article": article})
}

func (h *ArticleHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.Delete(c.Context(), c.Params("id")); err != nil {
		return storeErr(c, err, "")
	}
	return c.JSON(fiber.Map{"success": true})
}
