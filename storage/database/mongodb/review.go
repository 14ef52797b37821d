package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillspring/server/core/review"
	"github.com/skillspring/server/storage/database"
)

type reviewRepository struct {
	coll *mongo.Collection
}

var _ review.Repository = (*reviewRepository)(nil)

func NewReviewRepository(db *mongo.Database) review.Repository {
	return &reviewRepository{coll: db.Collection(database.ReviewsCollection)}
}

func (repo *reviewRepository) CreateReview(ctx context.Context, r review.Review) (primitive.ObjectID, error) {
	res, err := repo.coll.InsertOne(ctx, r)
	if err != nil {
		return primitive.NilObjectID, errors.Wrap(storeError(err), "inserting review")
	}
	return insertedID(res)
}

func (repo *reviewRepository) QueryReviews(ctx context.Context, filter review.QueryFilter) ([]review.Review, error) {
	query := bson.M{}
	if filter.ClassID != "" {
		query["classId"] = filter.ClassID
	}
	reviews, err := findAll[review.Review](ctx, repo.coll, query)
	return reviews, errors.Wrap(storeError(err), "querying reviews")
}
