package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harborlight/backend/internal/models"
	"github.com/harborlight/backend/internal/storage"
)

type ContactMessages struct {
	col *mongo.Collection
}

func NewContactMessages(db *mongo.Database) *ContactMessages {
	return &ContactMessages{col: db.Collection("contact_messages")}
}

func (s *ContactMessages) Create(ctx context.Context, msg *models.ContactMessage) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, msg)
	return err
}

func (s *ContactMessages) List(ctx context.Context) ([]models.ContactMessage, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.ContactMessage](ctx, cursor)
}

func (s *ContactMessages) MarkRead(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

type NewsletterSubscribers struct {
	col *mongo.Collection
}

func NewNewsletterSubscribers(db *mongo.Database) *NewsletterSubscribers {
	return &NewsletterSubscribers{col: db.Collection("newsletter_subscribers")}
}

func (s *NewsletterSubscribers) Create(ctx context.Context, sub *models.NewsletterSubscriber) error {
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, sub)
	return err
}

func (s *NewsletterSubscribers) GetByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	var sub models.NewsletterSubscriber
	if err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&sub); err != nil {
		return nil, mapErr(err)
	}
	return &sub, nil
}

func (s *NewsletterSubscribers) SetSubscribed(ctx context.Context, id string, subscribed bool) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"subscribed": subscribed}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *NewsletterSubscribers) List(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	opts := options.Find().SetSort(bson.M{"subscribed_at": -1})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.NewsletterSubscriber](ctx, cursor)
}

type Donations struct {
	col *mongo.Collection
}

func NewDonations(db *mongo.Database) *Donations {
	return &Donations{col: db.Collection("donations")}
}

func (s *Donations) Create(ctx context.Context, donation *models.Donation) error {
	if donation.ID.IsZero() {
		donation.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, donation)
	return err
}

func (s *Donations) List(ctx context.Context) ([]models.Donation, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Donation](ctx, cursor)
}
