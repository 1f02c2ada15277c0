package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactMessage is stored for admin review. No email is sent on submission.
type ContactMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Subject   string             `bson:"subject,omitempty" json:"subject,omitempty"`
	Message   string             `bson:"message" json:"message"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type NewsletterSubscriber struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	Subscribed   bool               `bson:"subscribed" json:"subscribed"`
	SubscribedAt time.Time          `bson:"subscribed_at" json:"subscribed_at"`
}

// Donation records an intent only. There is no payment processing behind it;
// the reference is handed back to the donor for offline follow-up.
type Donation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Reference string             `bson:"reference" json:"reference"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Email     string             `bson:"email" json:"email"`
	AmountUSD float64            `bson:"amount_usd" json:"amount_usd"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
