package gormstore

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harborlight/backend/internal/models"
	"github.com/harborlight/backend/internal/storage"
)

type Tags struct {
	db *gorm.DB
}

func NewTags(db *gorm.DB) *Tags {
	return &Tags{db: db}
}

func (s *Tags) Create(ctx context.Context, tag *models.Tag) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Tag{}).
		Where("name = ?", tag.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return storage.ErrDuplicate
	}
	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}
	return mapErr(s.db.WithContext(ctx).Create(tag).Error)
}

func (s *Tags) List(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Delete detaches the tag from any stories before removing the row, so a tag
// still in use does not trip the join table's foreign key.
func (s *Tags) Delete(ctx context.Context, id uuid.UUID) error {
	return mapErr(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM story_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Tag{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return storage.ErrNotFound
		}
		return nil
	}))
}
