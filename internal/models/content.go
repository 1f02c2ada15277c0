package models

import (
	"time"

	"github.com/google/uuid"
)

// Relational content lives in Postgres and is mapped with GORM. Stories carry
// a many-to-many tag relation through story_tags.

type Story struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Slug        string     `json:"slug" gorm:"type:text;not null;uniqueIndex"`
	Title       string     `json:"title" gorm:"type:text;not null"`
	Summary     string     `json:"summary" gorm:"type:text"`
	Body        string     `json:"body" gorm:"type:text;not null"`
	CoverImage  string     `json:"cover_image,omitempty" gorm:"type:text"`
	Published   bool       `json:"published" gorm:"not null;default:false;index"`
	PublishedAt *time.Time `json:"published_at,omitempty" gorm:"type:timestamptz"`
	Tags        []Tag      `json:"tags" gorm:"many2many:story_tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Event struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title     string    `json:"title" gorm:"type:text;not null"`
	Details   string    `json:"details" gorm:"type:text"`
	Location  string    `json:"location" gorm:"type:text"`
	StartsAt  time.Time `json:"starts_at" gorm:"type:timestamptz;not null;index"`
	EndsAt    time.Time `json:"ends_at" gorm:"type:timestamptz"`
	Published bool      `json:"published" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Resource struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string    `json:"title" gorm:"type:text;not null"`
	Description string    `json:"description" gorm:"type:text"`
	URL         string    `json:"url" gorm:"type:text;not null"`
	Category    string    `json:"category" gorm:"type:text;index"`
	Published   bool      `json:"published" gorm:"not null;default:false;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Tag struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name string    `json:"name" gorm:"type:text;not null;uniqueIndex"`
}
