package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillspring/server/core"
	"github.com/skillspring/server/core/teacher"
	"github.com/skillspring/server/storage/database"
)

type teacherRepository struct {
	coll *mongo.Collection
}

var _ teacher.Repository = (*teacherRepository)(nil)

func NewTeacherRepository(db *mongo.Database) teacher.Repository {
	return &teacherRepository{coll: db.Collection(database.TeachersCollection)}
}

func (repo *teacherRepository) CreateTeacher(ctx context.Context, tchr teacher.Teacher) (primitive.ObjectID, error) {
	res, err := repo.coll.InsertOne(ctx, tchr)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, teacher.ErrEmailExists
		}
		return primitive.NilObjectID, errors.Wrap(storeError(err), "inserting teacher")
	}
	return insertedID(res)
}

func (repo *teacherRepository) QueryTeachers(ctx context.Context) ([]teacher.Teacher, error) {
	teachers, err := findAll[teacher.Teacher](ctx, repo.coll, bson.M{})
	return teachers, errors.Wrap(storeError(err), "querying teachers")
}

func (repo *teacherRepository) GetTeacherByEmail(ctx context.Context, email string) (teacher.Teacher, error) {
	tchr, err := findOne[teacher.Teacher](ctx, repo.coll, bson.M{"email": email})
	if err != nil && err != core.ErrNotFound {
		return tchr, errors.Wrap(storeError(err), "finding teacher by email")
	}
	return tchr, err
}

func (repo *teacherRepository) UpdateTeacherStatus(ctx context.Context, email, status, role string) (core.UpdateResult, error) {
	set := bson.M{"status": status}
	if role != "" {
		set["role"] = role
	}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": set})
	if err != nil {
		return core.UpdateResult{}, errors.Wrap(storeError(err), "updating teacher status")
	}
	return updateResult(res), nil
}
