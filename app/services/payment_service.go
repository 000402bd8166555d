package services

import (
	"context"
	"fmt"

	"github.com/masudmolla6/bistro-restaurant-server/app/models"
	"github.com/masudmolla6/bistro-restaurant-server/app/repositories"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/logger"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/metrics"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/payment"
)

type PaymentService struct {
	payments repositories.PaymentRepository
	carts    repositories.CartRepository
	gateway  payment.Gateway
	currency string
}

func NewPaymentService(payments repositories.PaymentRepository, carts repositories.CartRepository, gateway payment.Gateway, currency string) *PaymentService {
	return &PaymentService{payments: payments, carts: carts, gateway: gateway, currency: currency}
}

// CreateIntent converts price to minor units and opens a card intent.
// Returns the client secret. payment.ErrInvalidAmount for bad prices.
func (s *PaymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	amount, err := payment.AmountFromPrice(price)
	if err != nil {
		return "", err
	}

	intent, err := s.gateway.CreateIntent(ctx, amount, s.currency)
	if err != nil {
		return "", err
	}
	metrics.PaymentIntentAmount.Observe(float64(amount))
	logger.WithCtx(ctx).Info("payment intent created", "intent_id", intent.ID, "amount", amount)
	return intent.ClientSecret, nil
}

// Checkout records p, then clears the cart rows it lists. The two writes are
// independent: if the delete fails the payment stays recorded and the error
// is returned.
func (s *PaymentService) Checkout(ctx context.Context, p *models.Payment) (models.CheckoutResult, error) {
	if err := s.payments.Insert(ctx, p); err != nil {
		return models.CheckoutResult{}, err
	}
	metrics.PaymentsRecorded.Inc()
	log := logger.WithCtx(ctx).With("payment_id", p.ID.Hex(), "transaction_id", p.TransactionID)
	log.Info("payment recorded", "email", p.Email, "price", p.Price, "items", len(p.MenuItemIDs))

	deleted, err := s.carts.DeleteMany(ctx, p.CartIDs)
	if err != nil {
		log.Error("cart cleanup failed after payment", "cart_ids", len(p.CartIDs), "error", err)
		return models.CheckoutResult{}, fmt.Errorf("checkout: clear carts: %w", err)
	}

	return models.CheckoutResult{
		PaymentResult:    models.Inserted(p.ID),
		DeleteCartResult: deleted,
	}, nil
}

// History lists the payments of email.
func (s *PaymentService) History(ctx context.Context, email string) ([]models.Payment, error) {
	return s.payments.ByEmail(ctx, email)
}
