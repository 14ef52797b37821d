package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillspring/server/core/payment"
	"github.com/skillspring/server/storage/database"
)

type paymentRepository struct {
	coll *mongo.Collection
}

var _ payment.Repository = (*paymentRepository)(nil)

func NewPaymentRepository(db *mongo.Database) payment.Repository {
	return &paymentRepository{coll: db.Collection(database.PaymentsCollection)}
}

func (repo *paymentRepository) CreatePayment(ctx context.Context, p payment.Payment) (primitive.ObjectID, error) {
	res, err := repo.coll.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, errors.Wrap(storeError(err), "inserting payment")
	}
	return insertedID(res)
}

func (repo *paymentRepository) QueryPayments(ctx context.Context, filter payment.QueryFilter) ([]payment.Payment, error) {
	query := bson.M{}
	if filter.Email != "" {
		query["email"] = filter.Email
	}
	payments, err := findAll[payment.Payment](ctx, repo.coll, query)
	return payments, errors.Wrap(storeError(err), "querying payments")
}
