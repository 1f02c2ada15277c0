package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harborlight/backend/internal/middleware"
	"github.com/harborlight/backend/internal/models"
	"github.com/harborlight/backend/internal/storage"
)

type fakeArticles struct {
	articles map[string]*models.Article // by hex id
}

func (f *fakeArticles) Create(ctx context.Context, a *models.Article) error {
	for _, existing := range f.articles {
		if existing.Slug == a.Slug {
			return storage.ErrDuplicate
		}
	}
	a.ID = primitive.NewObjectID()
	f.articles[a.ID.Hex()] = a
	return nil
}

func (f *fakeArticles) GetByID(ctx context.Context, id string) (*models.Article, error) {
	if a, ok := f.articles[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, storage.ErrNotFound
}

func (f *fakeArticles) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	for _, a := range f.articles {
		if a.Slug == slug {
			copied := *a
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeArticles) List(ctx context.Context, filter storage.ArticleFilter) ([]models.Article, error) {
	out := []models.Article{}
	for _, a := range f.articles {
		if filter.PublishedOnly && !a.Published {
			continue
		}
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeArticles) Update(ctx context.Context, a *models.Article) error {
	for id, existing := range f.articles {
		if existing.Slug == a.Slug && id != a.ID.Hex() {
			return storage.ErrDuplicate
		}
	}
	if _, ok := f.articles[a.ID.Hex()]; !ok {
		return storage.ErrNotFound
	}
	f.articles[a.ID.Hex()] = a
	return nil
}

func (f *fakeArticles) Delete(ctx context.Context, id string) error {
	if _, ok := f.articles[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.articles, id)
	return nil
}

// asEditor stands in for the role gate, stashing a user like RequireRoles does.
func asEditor(c *fiber.Ctx) error {
	c.Locals(middleware.UserKey, &models.User{
		ID:   primitive.NewObjectID(),
		Role: models.RoleEditor,
	})
	return c.Next()
}

func newArticleFixture() (*fiber.App, *fakeArticles) {
	store := &fakeArticles{articles: map[string]*models.Article{}}
	h := NewArticleHandler(store)

	app := fiber.New()
	app.Get("/api/articles", h.List)
	app.Get("/api/articles/:slug", h.GetBySlug)
	app.Post("/api/admin/articles", asEditor, h.Create)
	app.Put("/api/admin/articles/:id", asEditor, h.Update)
	app.Delete("/api/admin/articles/:id", asEditor, h.Delete)

	return app, store
}

func TestArticleCreateAndFetch(t *testing.T) {
	app, store := newArticleFixture()

	resp := postJSON(t, app, "/api/admin/articles", map[string]any{
		"slug":      "annual-report",
		"title":     "Annual Report",
		"body":      "This year we...",
		"published": true,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Len(t, store.articles, 1)

	get, err := app.Test(httptest.NewRequest("GET", "/api/articles/annual-report", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, get.StatusCode)

	body := decodeBody(t, get)
	article := body["article"].(map[string]any)
	assert.Equal(t, "Annual Report", article["title"])
	assert.NotEmpty(t, article["author_id"])
}

func TestArticleSlugConflict(t *testing.T) {
	app, _ := newArticleFixture()

	first := postJSON(t, app, "/api/admin/articles", map[string]any{
		"slug": "dupe", "title": "One", "body": "x",
	})
	require.Equal(t, fiber.StatusCreated, first.StatusCode)

	second := postJSON(t, app, "/api/admin/articles", map[string]any{
		"slug": "dupe", "title": "Two", "body": "y",
	})
	require.Equal(t, fiber.StatusBadRequest, second.StatusCode)
	assert.Contains(t, decodeBody(t, second)["error"], "slug")
}

func TestArticleDraftHiddenFromPublic(t *testing.T) {
	app, _ := newArticleFixture()

	resp := postJSON(t, app, "/api/admin/articles", map[string]any{
		"slug": "draft-post", "title": "Draft", "body": "wip", "published": false,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	get, err := app.Test(httptest.NewRequest("GET", "/api/articles/draft-post", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, get.StatusCode)

	list, err := app.Test(httptest.NewRequest("GET", "/api/articles", nil))
	require.NoError(t, err)
	assert.Empty(t, decodeBody(t, list)["articles"])
}

func TestArticleMissingFields(t *testing.T) {
	app, _ := newArticleFixture()

	resp := postJSON(t, app, "/api/admin/articles", map[string]any{"slug": "only-slug"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	msg := decodeBody(t, resp)["error"].(string)
	assert.Contains(t, msg, "title")
	assert.Contains(t, msg, "body")
}

func TestArticleDelete(t *testing.T) {
	app, store := newArticleFixture()

	resp := postJSON(t, app, "/api/admin/articles", map[string]any{
		"slug": "to-delete", "title": "T", "body": "b",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var id string
	for k := range store.articles {
		id = k
	}
	del, err := app.Test(httptest.NewRequest("DELETE", "/api/admin/articles/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, del.StatusCode)
	assert.Empty(t, store.articles)

	again, err := app.Test(httptest.NewRequest("DELETE", "/api/admin/articles/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, again.StatusCode)
}
