package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MenuItem is a dish on the menu.
type MenuItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name"          json:"name"`
	Recipe   string             `bson:"recipe"        json:"recipe"`
	Image    string             `bson:"image"         json:"image"`
	Category string             `bson:"category"      json:"category"`
	Price    float64            `bson:"price"         json:"price"`
}

// Review is a customer testimonial.
type Review struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name    string             `bson:"name"          json:"name"`
	Details string             `bson:"details"       json:"details"`
	Rating  float64            `bson:"rating"        json:"rating"`
}
