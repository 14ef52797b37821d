package payment

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillspring/server/core"
)

const StatusSucceeded = "succeeded"

// Payment records a completed class purchase.
type Payment struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ClassID       string             `json:"classId" bson:"classId"`
	Email         string             `json:"email" bson:"email"`
	Name          string             `json:"name" bson:"name"`
	Price         float64            `json:"price" bson:"price"`
	TransactionID string             `json:"transactionId" bson:"transactionId"`
	Status        string             `json:"status" bson:"status"`
	Date          time.Time          `json:"date" bson:"date"` // UTC
}

type NewPayment struct {
	ClassID       string    `json:"classId" validate:"required,objectid"`
	Email         string    `json:"email" validate:"required,email"`
	Name          string    `json:"name"`
	Price         float64   `json:"price" validate:"gt=0"`
	TransactionID string    `json:"transactionId" validate:"required"`
	Status        string    `json:"status"`
	Date          time.Time `json:"date"`
}

func (np *NewPayment) Validate(validate *validator.Validate) error {
	np.ClassID = core.CleanString(np.ClassID)
	np.Email = core.CleanString(np.Email, true /* lower */)
	np.Name = core.CleanString(np.Name)
	np.TransactionID = core.CleanString(np.TransactionID)
	np.Status = core.CleanString(np.Status, true /* lower */)
	return validate.Struct(np)
}

type QueryFilter struct {
	Email string `query:"email"`
}

func (qf *QueryFilter) Clean() {
	qf.Email = core.CleanString(qf.Email, true /* lower */)
}

func (qf QueryFilter) Match(p Payment) bool {
	return qf.Email == "" || p.Email == qf.Email
}

// IntentRequest asks for a card payment intent for `price` dollars, at most 999999.99 so the
// amount in cents fits an int64.
type IntentRequest struct {
	Price float64 `json:"price" validate:"gt=0,lte=999999.99"`
}

func (ir *IntentRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(ir)
}

type IntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// IntentParams are the provider-facing parameters of a payment intent.
type IntentParams struct {
	Amount         int64 // smallest currency unit
	Currency       string
	IdempotencyKey string
}

// ToCents converts a price to the smallest currency unit, truncating fractions of a cent.
func ToCents(price float64) int64 {
	return int64(price * 100)
}
