package gormstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harborlight/backend/internal/models"
	"github.com/harborlight/backend/internal/storage"
)

type Events struct {
	db *gorm.DB
}

func NewEvents(db *gorm.DB) *Events {
	return &Events{db: db}
}

func (s *Events) Create(ctx context.Context, event *models.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return mapErr(s.db.WithContext(ctx).Create(event).Error)
}

func (s *Events) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &event, nil
}

func (s *Events) List(ctx context.Context, filter storage.EventFilter) ([]models.Event, error) {
	q := s.db.WithContext(ctx)
	if filter.PublishedOnly {
		q = q.Where("published = ?", true)
	}
	if filter.UpcomingOnly {
		q = q.Where("starts_at >= ?", time.Now())
	}
	events := []models.Event{}
	if err := q.Order("starts_at ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Events) Update(ctx context.Context, event *models.Event) error {
	result := s.db.WithContext(ctx).Save(event)
	if result.Error != nil {
		return mapErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Events) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Event{}, "id = ?", id)
	if result.Error != nil {
		return mapErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
