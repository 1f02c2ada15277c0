package handlers

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborlight/backend/internal/models"
	"github.com/harborlight/backend/internal/storage"
)

type fakeTags struct {
	tags []*models.Tag
}

func (f *fakeTags) Create(ctx context.Context, tag *models.Tag) error {
	for _, existing := range f.tags {
		if existing.Name == tag.Name {
			return storage.ErrDuplicate
		}
	}
	tag.ID = uuid.New()
	f.tags = append(f.tags, tag)
	return nil
}

func (f *fakeTags) List(ctx context.Context) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(f.tags))
	for _, t := range f.tags {
		tags = append(tags, *t)
	}
	return tags, nil
}

func (f *fakeTags) Delete(ctx context.Context, id uuid.UUID) error {
	for i, t := range f.tags {
		if t.ID == id {
			f.tags = append(f.tags[:i], f.tags[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func newTagFixture() (*fiber.App, *fakeTags) {
	store := &fakeTags{}
	h := NewTagHandler(store)

	app := fiber.New()
	app.Get("/api/tags", h.List)
	app.Post("/api/admin/tags", asEditor, h.Create)
	app.Delete("/api/admin/tags/:id", asEditor, h.Delete)
	return app, store
}

func TestTagCreateAndList(t *testing.T) {
	app, _ := newTagFixture()

	resp := postJSON(t, app, "/api/admin/tags", map[string]any{"name": "water"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/tags")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody(t, resp)["tags"], 1)
}

func TestTagCreateDuplicate(t *testing.T) {
	app, _ := newTagFixture()

	first := postJSON(t, app, "/api/admin/tags", map[string]any{"name": "water"})
	require.Equal(t, fiber.StatusCreated, first.StatusCode)

	second := postJSON(t, app, "/api/admin/tags", map[string]any{"name": "water"})
	require.Equal(t, fiber.StatusBadRequest, second.StatusCode)
	assert.Equal(t, "A tag with this name already exists", decodeBody(t, second)["error"])
}

func TestTagCreateMissingName(t *testing.T) {
	app, _ := newTagFixture()

	resp := postJSON(t, app, "/api/admin/tags", map[string]any{})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeBody(t, resp)["error"], "name")
}

func TestTagDeleteUnknownID(t *testing.T) {
	app, _ := newTagFixture()

	resp := doRequest(t, app, "DELETE", "/api/admin/tags/"+uuid.NewString())
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, app, "DELETE", "/api/admin/tags/not-a-uuid")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
