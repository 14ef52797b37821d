package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillspring/server/core"
	"github.com/skillspring/server/core/assignment"
	"github.com/skillspring/server/storage/database"
)

type assignmentRepository struct {
	assignments *mongo.Collection
	submissions *mongo.Collection
}

var _ assignment.Repository = (*assignmentRepository)(nil)

func NewAssignmentRepository(db *mongo.Database) assignment.Repository {
	return &assignmentRepository{
		assignments: db.Collection(database.AssignmentsCollection),
		submissions: db.Collection(database.SubmittedAssignmentsCollection),
	}
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, a assignment.Assignment) (primitive.ObjectID, error) {
	res, err := repo.assignments.InsertOne(ctx, a)
	if err != nil {
		return primitive.NilObjectID, errors.Wrap(storeError(err), "inserting assignment")
	}
	return insertedID(res)
}

func (repo *assignmentRepository) QueryAssignments(ctx context.Context, filter assignment.QueryFilter) ([]assignment.Assignment, error) {
	query := bson.M{}
	if filter.ClassID != "" {
		query["classId"] = filter.ClassID
	}
	assignments, err := findAll[assignment.Assignment](ctx, repo.assignments, query)
	return assignments, errors.Wrap(storeError(err), "querying assignments")
}

func (repo *assignmentRepository) IncrementSubmission(ctx context.Context, id primitive.ObjectID) (core.UpdateResult, error) {
	res, err := repo.assignments.UpdateOne(ctx, byID(id), bson.M{"$inc": bson.M{"submission": 1}})
	if err != nil {
		return core.UpdateResult{}, errors.Wrap(storeError(err), "incrementing submission")
	}
	return updateResult(res), nil
}

func (repo *assignmentRepository) CreateSubmission(ctx context.Context, s assignment.SubmittedAssignment) (primitive.ObjectID, error) {
	res, err := repo.submissions.InsertOne(ctx, s)
	if err != nil {
		return primitive.NilObjectID, errors.Wrap(storeError(err), "inserting submission")
	}
	return insertedID(res)
}

func (repo *assignmentRepository) QuerySubmissions(ctx context.Context, filter assignment.QueryFilter) ([]assignment.SubmittedAssignment, error) {
	query := bson.M{}
	if filter.ClassID != "" {
		query["classId"] = filter.ClassID
	}
	if filter.Email != "" {
		query["email"] = filter.Email
	}
	subs, err := findAll[assignment.SubmittedAssignment](ctx, repo.submissions, query)
	return subs, errors.Wrap(storeError(err), "querying submissions")
}
