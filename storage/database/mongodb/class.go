package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillspring/server/core"
	"github.com/skillspring/server/core/class"
	"github.com/skillspring/server/storage/database"
)

type classRepository struct {
	coll *mongo.Collection
}

var _ class.Repository = (*classRepository)(nil)

func NewClassRepository(db *mongo.Database) class.Repository {
	return &classRepository{coll: db.Collection(database.ClassesCollection)}
}

func (repo *classRepository) CreateClass(ctx context.Context, cls class.Class) (primitive.ObjectID, error) {
	res, err := repo.coll.InsertOne(ctx, cls)
	if err != nil {
		return primitive.NilObjectID, errors.Wrap(storeError(err), "inserting class")
	}
	return insertedID(res)
}

func (repo *classRepository) QueryClasses(ctx context.Context, filter class.QueryFilter) ([]class.Class, error) {
	query := bson.M{}
	if filter.Search != "" {
		query = searchFilter(filter.Search, "name", "title")
	}
	if filter.Email != "" {
		query["email"] = filter.Email
	}
	classes, err := findAll[class.Class](ctx, repo.coll, query)
	return classes, errors.Wrap(storeError(err), "querying classes")
}

func (repo *classRepository) GetClass(ctx context.Context, id primitive.ObjectID) (class.Class, error) {
	cls, err := findOne[class.Class](ctx, repo.coll, byID(id))
	if err != nil && err != core.ErrNotFound {
		return cls, errors.Wrap(storeError(err), "finding class")
	}
	return cls, err
}

func (repo *classRepository) update(ctx context.Context, id primitive.ObjectID, update bson.M) (core.UpdateResult, error) {
	res, err := repo.coll.UpdateOne(ctx, byID(id), update)
	if err != nil {
		return core.UpdateResult{}, errors.Wrap(storeError(err), "updating class")
	}
	return updateResult(res), nil
}

func (repo *classRepository) UpdateClass(ctx context.Context, id primitive.ObjectID, uc class.UpdateClass) (core.UpdateResult, error) {
	return repo.update(ctx, id, bson.M{"$set": uc})
}

func (repo *classRepository) SetClassStatus(ctx context.Context, id primitive.ObjectID, status string) (core.UpdateResult, error) {
	return repo.update(ctx, id, bson.M{"$set": bson.M{"status": status}})
}

func (repo *classRepository) IncrementEnroll(ctx context.Context, id primitive.ObjectID) (core.UpdateResult, error) {
	return repo.update(ctx, id, bson.M{"$inc": bson.M{"enroll": 1}})
}

func (repo *classRepository) DeleteClass(ctx context.Context, id primitive.ObjectID) (core.DeleteResult, error) {
	res, err := repo.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return core.DeleteResult{}, errors.Wrap(storeError(err), "deleting class")
	}
	return core.NewDeleteResult(res.DeletedCount), nil
}

func (repo *classRepository) TopEnrolled(ctx context.Context, limit int64) ([]class.Class, error) {
	opts := options.Find().SetSort(bson.D{{Key: "enroll", Value: -1}}).SetLimit(limit)
	classes, err := findAll[class.Class](ctx, repo.coll, bson.M{}, opts)
	return classes, errors.Wrap(storeError(err), "querying featured classes")
}
