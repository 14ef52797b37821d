package payment

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillspring/server/core"
)

type (
	Repository interface {
		CreatePayment(ctx context.Context, p Payment) (primitive.ObjectID, error)
		QueryPayments(ctx context.Context, filter QueryFilter) ([]Payment, error)
	}

	// Gateway creates payment intents with a payment provider.
	Gateway interface {
		// CreateIntent returns the client secret of the new intent.
		CreateIntent(ctx context.Context, params IntentParams) (string, error)
	}

	Service struct {
		repo     Repository
		gateway  Gateway
		currency string
	}
)

func NewService(repo Repository, gateway Gateway, currency string) *Service {
	if currency == "" {
		currency = "usd"
	}
	return &Service{repo: repo, gateway: gateway, currency: currency}
}

// CreateIntent creates a card payment intent for the requested price.
// Payments are recorded separately through Create once the client confirms the intent.
func (svc *Service) CreateIntent(ctx context.Context, ir IntentRequest, idempotencyKey string) (IntentResponse, error) {
	secret, err := svc.gateway.CreateIntent(ctx, IntentParams{
		Amount:         ToCents(ir.Price),
		Currency:       svc.currency,
		IdempotencyKey: core.CleanString(idempotencyKey),
	})
	if err != nil {
		return IntentResponse{}, errors.Wrap(err, "creating payment intent")
	}
	return IntentResponse{ClientSecret: secret}, nil
}

func (svc *Service) Create(ctx context.Context, np NewPayment) (core.InsertResult, error) {
	p := Payment{
		ClassID:       np.ClassID,
		Email:         np.Email,
		Name:          np.Name,
		Price:         np.Price,
		TransactionID: np.TransactionID,
		Status:        np.Status,
		Date:          np.Date.UTC(),
	}
	if p.Status == "" {
		p.Status = StatusSucceeded
	}
	if np.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	id, err := svc.repo.CreatePayment(ctx, p)
	if err != nil {
		return core.InsertResult{}, errors.Wrap(err, "creating payment")
	}
	return core.NewInsertResult(id), nil
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Payment, error) {
	filter.Clean()
	return svc.repo.QueryPayments(ctx, filter)
}
