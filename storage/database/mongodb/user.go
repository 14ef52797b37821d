package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillspring/server/core"
	"github.com/skillspring/server/core/user"
	"github.com/skillspring/server/storage/database"
)

type userRepository struct {
	coll *mongo.Collection
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *mongo.Database) user.Repository {
	return &userRepository{coll: db.Collection(database.UsersCollection)}
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (primitive.ObjectID, error) {
	res, err := repo.coll.InsertOne(ctx, usr)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, user.ErrEmailExists
		}
		return primitive.NilObjectID, errors.Wrap(storeError(err), "inserting user")
	}
	return insertedID(res)
}

func (repo *userRepository) QueryUsers(ctx context.Context, filter user.QueryFilter) ([]user.User, error) {
	query := bson.M{}
	if filter.Search != "" {
		query = searchFilter(filter.Search, "name", "email")
	}
	users, err := findAll[user.User](ctx, repo.coll, query)
	return users, errors.Wrap(storeError(err), "querying users")
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	usr, err := findOne[user.User](ctx, repo.coll, bson.M{"email": email})
	if err != nil && err != core.ErrNotFound {
		return usr, errors.Wrap(storeError(err), "finding user by email")
	}
	return usr, err
}

func (repo *userRepository) SetUserRole(ctx context.Context, email, role string) (core.UpdateResult, error) {
	res, err := repo.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return core.UpdateResult{}, errors.Wrap(storeError(err), "setting user role")
	}
	return updateResult(res), nil
}
