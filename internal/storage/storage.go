// Package storage defines one store interface per aggregate so route logic
// stays backend-agnostic. Document-backed aggregates are implemented in
// mongostore, relational ones in gormstore.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/harborlight/backend/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Deactivate(ctx context.Context, id string) error
	RecordLogin(ctx context.Context, id string, at time.Time) error
	Count(ctx context.Context) (int64, error)
}

type ArticleFilter struct {
	PublishedOnly bool
	Category      string
}

type ArticleStore interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	List(ctx context.Context, filter ArticleFilter) ([]models.Article, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) error
}

type ContactStore interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context) ([]models.ContactMessage, error)
	MarkRead(ctx context.Context, id string) error
}

type NewsletterStore interface {
	Create(ctx context.Context, sub *models.NewsletterSubscriber) error
	GetByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error)
	SetSubscribed(ctx context.Context, id string, subscribed bool) error
	List(ctx context.Context) ([]models.NewsletterSubscriber, error)
}

type DonationStore interface {
	Create(ctx context.Context, donation *models.Donation) error
	List(ctx context.Context) ([]models.Donation, error)
}

type StoryFilter struct {
	PublishedOnly bool
	Tag           string
	Page          int
	Limit         int
}

// Normalized clamps paging values to the range actually served, so response
// metadata and the backing query always agree.
func (f StoryFilter) Normalized() StoryFilter {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Page < 1 {
		f.Page = 1
	}
	return f
}

type StoryStore interface {
	Create(ctx context.Context, story *models.Story) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Story, error)
	GetBySlug(ctx context.Context, slug string) (*models.Story, error)
	// List returns one page of stories plus the total count matching the filter.
	List(ctx context.Context, filter StoryFilter) ([]models.Story, int64, error)
	Update(ctx context.Context, story *models.Story) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type EventFilter struct {
	PublishedOnly bool
	UpcomingOnly  bool
}

type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	List(ctx context.Context, filter EventFilter) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ResourceFilter struct {
	PublishedOnly bool
	Category      string
}

type ResourceStore interface {
	Create(ctx context.Context, resource *models.Resource) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Resource, error)
	List(ctx context.Context, filter ResourceFilter) ([]models.Resource, error)
	Update(ctx context.Context, resource *models.Resource) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TagStore interface {
	Create(ctx context.Context, tag *models.Tag) error
	List(ctx context.Context) ([]models.Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
