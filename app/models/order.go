package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is a pending selection of one menu item by one user.
type CartItem struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	MenuID primitive.ObjectID `bson:"menuId"        json:"menuId"`
	Email  string             `bson:"email"         json:"email"`
	Name   string             `bson:"name"          json:"name"`
	Image  string             `bson:"image"         json:"image"`
	Price  float64            `bson:"price"         json:"price"`
}

// Payment is a completed checkout. It is never updated after insert.
type Payment struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty"  json:"_id"`
	Email         string               `bson:"email"          json:"email"`
	Price         float64              `bson:"price"          json:"price"`
	TransactionID string               `bson:"transactionId"  json:"transactionId"`
	Date          time.Time            `bson:"date"           json:"date"`
	CartIDs       []primitive.ObjectID `bson:"cartIds"        json:"cartIds"`
	MenuItemIDs   []primitive.ObjectID `bson:"menuItemIds"    json:"menuItemIds"`
	Status        string               `bson:"status"         json:"status"`
}
