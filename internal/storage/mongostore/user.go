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

type Users struct {
	col *mongo.Collection
}

func NewUsers(db *mongo.Database) *Users {
	return &Users{col: db.Collection("users")}
}

// Email uniqueness is enforced by lookup-before-insert rather than a database
// constraint; callers hold no lock, so a concurrent insert can race. That
// matches the current design.
func (s *Users) Create(ctx context.Context, user *models.User) error {
	count, err := s.col.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return err
	}
	if count > 0 {
		return storage.ErrDuplicate
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err = s.col.InsertOne(ctx, user)
	return err
}

func (s *Users) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (s *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (s *Users) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.User](ctx, cursor)
}

func (s *Users) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	result, err := s.col.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Users) Deactivate(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"active": false, "updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Users) RecordLogin(ctx context.Context, id string, at time.Time) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	_, err = s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"last_login_at": at},
	})
	return err
}

func (s *Users) Count(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{})
}
