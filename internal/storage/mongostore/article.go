package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harborlight/backend/internal/models"
	"github.com/harborlight/backend/internal/storage"
)

type Articles struct {
	col *mongo.Collection
}

func NewArticles(db *mongo.Database) *Articles {
	return &Articles{col: db.Collection("articles")}
}

// Slug uniqueness is lookup-before-insert, same as user emails.
func (s *Articles) Create(ctx context.Context, article *models.Article) error {
	count, err := s.col.CountDocuments(ctx, bson.M{"slug": article.Slug})
	if err != nil {
		return err
	}
	if count > 0 {
		return storage.ErrDuplicate
	}
	if article.ID.IsZero() {
		article.ID = primitive.NewObjectID()
	}
	_, err = s.col.InsertOne(ctx, article)
	return err
}

func (s *Articles) GetByID(ctx context.Context, id string) (*models.Article, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var article models.Article
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&article); err != nil {
		return nil, mapErr(err)
	}
	return &article, nil
}

func (s *Articles) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	var article models.Article
	if err := s.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&article); err != nil {
		return nil, mapErr(err)
	}
	return &article, nil
}

func (s *Articles) List(ctx context.Context, filter storage.ArticleFilter) ([]models.Article, error) {
	query := bson.M{}
	if filter.PublishedOnly {
		query["published"] = true
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Article](ctx, cursor)
}

func (s *Articles) Update(ctx context.Context, article *models.Article) error {
	// A slug change must not collide with another article's slug.
	count, err := s.col.CountDocuments(ctx, bson.M{
		"slug": article.Slug,
		"_id":  bson.M{"$ne": article.ID},
	})
	if err != nil {
		return err
	}
	if count > 0 {
		return storage.ErrDuplicate
	}
	article.UpdatedAt = time.Now()
	result, err := s.col.ReplaceOne(ctx, bson.M{"_id": article.ID}, article)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Articles) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
