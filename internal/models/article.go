package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Article struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Slug        string             `bson:"slug" json:"slug"`
	Title       string             `bson:"title" json:"title"`
	Summary     string             `bson:"summary,omitempty" json:"summary,omitempty"`
	Body        string             `bson:"body" json:"body"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	CoverImage  string             `bson:"cover_image,omitempty" json:"cover_image,omitempty"`
	AuthorID    string             `bson:"author_id" json:"author_id"`
	Published   bool               `bson:"published" json:"published"`
	PublishedAt *time.Time         `bson:"published_at,omitempty" json:"published_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
