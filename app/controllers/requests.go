package controllers

import (
	"time"

	"github.com/masudmolla6/bistro-restaurant-server/app/models"
)

// UserInput is the body of POST /users. Any role in the body is ignored.
type UserInput struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"required,email"`
}

// MenuInput is the body of POST /menu and PATCH /menu/{id}.
type MenuInput struct {
	Name     string  `json:"name"     validate:"required,max=120"`
	Recipe   string  `json:"recipe"`
	Image    string  `json:"image"    validate:"nullable,url"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price"    validate:"gt=0"`
}

func (in MenuInput) item() models.MenuItem {
	return models.MenuItem{
		Name:     in.Name,
		Recipe:   in.Recipe,
		Image:    in.Image,
		Category: in.Category,
		Price:    in.Price,
	}
}

// CartInput is the body of POST /carts.
type CartInput struct {
	MenuID string  `json:"menuId" validate:"required,objectid"`
	Email  string  `json:"email"  validate:"required,email"`
	Name   string  `json:"name"`
	Image  string  `json:"image"`
	Price  float64 `json:"price"  validate:"gte=0"`
}

// IntentInput is the body of POST /create-payment-intent. The price is
// checked by the payment service.
type IntentInput struct {
	Price float64 `json:"price"`
}

// PaymentInput is the body of POST /payments.
type PaymentInput struct {
	Email         string     `json:"email"         validate:"required,email"`
	Price         float64    `json:"price"         validate:"gt=0"`
	TransactionID string     `json:"transactionId" validate:"required"`
	Date          *time.Time `json:"date"`
	CartIDs       []string   `json:"cartIds"       validate:"objectid"`
	MenuItemIDs   []string   `json:"menuItemIds"   validate:"objectid"`
	Status        string     `json:"status"        validate:"nullable,in=pending|paid|delivered"`
}
