package controllers

import (
	"time"

	"github.com/masudmolla6/bistro-restaurant-server/app/models"
	"github.com/masudmolla6/bistro-restaurant-server/app/services"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/ctx"
)

type PaymentController struct {
	payments *services.PaymentService
	now      func() time.Time
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments, now: time.Now}
}

// Intent handles POST /create-payment-intent.
func (h *PaymentController) Intent(c *ctx.Context) {
	var in IntentInput
	if !c.BindJSON(&in) {
		return
	}

	secret, err := h.payments.CreateIntent(c.Context(), in.Price)
	if err != nil {
		fail(c, err)
		return
	}
	c.OK(map[string]string{"clientSecret": secret})
}

// Store handles POST /payments: it records the payment and clears the paid
// cart rows.
func (h *PaymentController) Store(c *ctx.Context) {
	var in PaymentInput
	if !c.BindJSON(&in) {
		return
	}

	cartIDs, err := models.ParseIDs(in.CartIDs)
	if err != nil {
		fail(c, err)
		return
	}
	menuIDs, err := models.ParseIDs(in.MenuItemIDs)
	if err != nil {
		fail(c, err)
		return
	}

	p := &models.Payment{
		Email:         in.Email,
		Price:         in.Price,
		TransactionID: in.TransactionID,
		Date:          h.now().UTC(),
		CartIDs:       cartIDs,
		MenuItemIDs:   menuIDs,
		Status:        in.Status,
	}
	if in.Date != nil {
		p.Date = in.Date.UTC()
	}
	if p.Status == "" {
		p.Status = "pending"
	}

	res, err := h.payments.Checkout(c.Context(), p)
	if err != nil {
		fail(c, err)
		return
	}
	c.OK(res)
}

// History handles GET /payment/{email}.
func (h *PaymentController) History(c *ctx.Context) {
	list, err := h.payments.History(c.Context(), c.Param("email"))
	if err != nil {
		c.InternalError(err)
		return
	}
	c.OK(list)
}
