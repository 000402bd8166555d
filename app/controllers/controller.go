// Package controllers holds the HTTP handlers of the Bistro API. Each
// controller receives its dependencies through its constructor.
package controllers

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/masudmolla6/bistro-restaurant-server/app/models"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/ctx"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/payment"
)

// fail maps a service error to a response. Unknown errors become an opaque
// 500 and are logged.
func fail(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidID):
		c.BadRequest("invalid id")
	case errors.Is(err, payment.ErrInvalidAmount):
		c.BadRequest("price must be a positive amount")
	default:
		c.InternalError(err)
	}
}

// pathID parses the {id} route parameter. On failure the 400 is already
// written.
func pathID(c *ctx.Context) (primitive.ObjectID, bool) {
	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		fail(c, err)
		return id, false
	}
	return id, true
}
