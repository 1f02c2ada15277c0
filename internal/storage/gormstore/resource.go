package gormstore

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harborlight/backend/internal/models"
	"github.com/harborlight/backend/internal/storage"
)

type Resources struct {
	db *gorm.DB
}

func NewResources(db *gorm.DB) *Resources {
	return &Resources{db: db}
}

func (s *Resources) Create(ctx context.Context, resource *models.Resource) error {
	if resource.ID == uuid.Nil {
		resource.ID = uuid.New()
	}
	return mapErr(s.db.WithContext(ctx).Create(resource).Error)
}

func (s *Resources) GetByID(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	var resource models.Resource
	if err := s.db.WithContext(ctx).First(&resource, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &resource, nil
}

func (s *Resources) List(ctx context.Context, filter storage.ResourceFilter) ([]models.Resource, error) {
	q := s.db.WithContext(ctx)
	if filter.PublishedOnly {
		q = q.Where("published = ?", true)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	resources := []models.Resource{}
	if err := q.Order("created_at DESC").Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (s *Resources) Update(ctx context.Context, resource *models.Resource) error {
	result := s.db.WithContext(ctx).Save(resource)
	if result.Error != nil {
		return mapErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Resources) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Resource{}, "id = ?", id)
	if result.Error != nil {
		return mapErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
