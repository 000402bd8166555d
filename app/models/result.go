package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// InsertResult reports a single-document insert. InsertedID is null when
// nothing was written.
type InsertResult struct {
	Acknowledged bool                `json:"acknowledged,omitempty"`
	InsertedID   *primitive.ObjectID `json:"insertedId"`
	Message      string              `json:"message,omitempty"`
}

// Inserted builds the result of a successful insert.
func Inserted(id primitive.ObjectID) InsertResult {
	return InsertResult{Acknowledged: true, InsertedID: &id}
}

type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// CheckoutResult bundles the two independent writes of a checkout.
type CheckoutResult struct {
	PaymentResult    InsertResult `json:"paymentResult"`
	DeleteCartResult DeleteResult `json:"deleteCartResult"`
}
