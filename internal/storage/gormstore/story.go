package gormstore

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harborlight/backend/internal/models"
	"github.com/harborlight/backend/internal/storage"
)

type Stories struct {
	db *gorm.DB
}

func NewStories(db *gorm.DB) *Stories {
	return &Stories{db: db}
}

func (s *Stories) Create(ctx context.Context, story *models.Story) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Story{}).
		Where("slug = ?", story.Slug).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return storage.ErrDuplicate
	}
	if story.ID == uuid.Nil {
		story.ID = uuid.New()
	}
	return mapErr(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, story.Tags)
		if err != nil {
			return err
		}
		story.Tags = tags
		// Tags.* is omitted so existing tag rows are linked, not re-inserted.
		return tx.Omit("Tags.*").Create(story).Error
	}))
}

// resolveTags maps tag names to rows, creating any that do not exist yet.
func resolveTags(tx *gorm.DB, tags []models.Tag) ([]models.Tag, error) {
	resolved := make([]models.Tag, 0, len(tags))
	for _, tag := range tags {
		found := models.Tag{ID: uuid.New(), Name: tag.Name}
		if err := tx.Where("name = ?", tag.Name).FirstOrCreate(&found).Error; err != nil {
			return nil, err
		}
		resolved = append(resolved, found)
	}
	return resolved, nil
}

func (s *Stories) GetByID(ctx context.Context, id uuid.UUID) (*models.Story, error) {
	var story models.Story
	err := s.db.WithContext(ctx).Preload("Tags").First(&story, "id = ?", id).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &story, nil
}

func (s *Stories) GetBySlug(ctx context.Context, slug string) (*models.Story, error) {
	var story models.Story
	err := s.db.WithContext(ctx).Preload("Tags").First(&story, "slug = ?", slug).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &story, nil
}

func (s *Stories) List(ctx context.Context, filter storage.StoryFilter) ([]models.Story, int64, error) {
	filter = filter.Normalized()

	q := s.db.WithContext(ctx).Model(&models.Story{})
	if filter.PublishedOnly {
		q = q.Where("stories.published = ?", true)
	}
	if filter.Tag != "" {
		q = q.Joins("JOIN story_tags ON story_tags.story_id = stories.id").
			Joins("JOIN tags ON tags.id = story_tags.tag_id").
			Where("tags.name = ?", filter.Tag)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	stories := []models.Story{}
	err := q.Select("stories.*").
		Preload("Tags").
		Order("stories.created_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&stories).Error
	if err != nil {
		return nil, 0, err
	}
	return stories, total, nil
}

func (s *Stories) Update(ctx context.Context, story *models.Story) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Story{}).
		Where("slug = ? AND id <> ?", story.Slug, story.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return storage.ErrDuplicate
	}

	return mapErr(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, story.Tags)
		if err != nil {
			return err
		}
		story.Tags = tags
		if err := tx.Omit("Tags").Save(story).Error; err != nil {
			return err
		}
		// Replace the tag set wholesale; per-tag diffing is not worth it here.
		return tx.Model(story).Association("Tags").Replace(tags)
	}))
}

func (s *Stories) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Select("Tags").Delete(&models.Story{ID: id})
	if result.Error != nil {
		return mapErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
