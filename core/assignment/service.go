package assignment

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillspring/server/core"
)

type (
	Repository interface {
		CreateAssignment(ctx context.Context, a Assignment) (primitive.ObjectID, error)
		QueryAssignments(ctx context.Context, filter QueryFilter) ([]Assignment, error)
		// IncrementSubmission atomically adds one to the assignment's submission count.
		IncrementSubmission(ctx context.Context, id primitive.ObjectID) (core.UpdateResult, error)

		CreateSubmission(ctx context.Context, s SubmittedAssignment) (primitive.ObjectID, error)
		QuerySubmissions(ctx context.Context, filter QueryFilter) ([]SubmittedAssignment, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, na NewAssignment) (core.InsertResult, error) {
	a := Assignment{
		ClassID:     na.ClassID,
		Title:       na.Title,
		Description: na.Description,
		Deadline:    na.Deadline,
	}
	id, err := svc.repo.CreateAssignment(ctx, a)
	if err != nil {
		return core.InsertResult{}, errors.Wrap(err, "creating assignment")
	}
	return core.NewInsertResult(id), nil
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Assignment, error) {
	filter.Clean()
	return svc.repo.QueryAssignments(ctx, filter)
}

// CountSubmission records one more submission on the assignment. It does not insert the
// submission itself.
func (svc *Service) CountSubmission(ctx context.Context, id string) (core.UpdateResult, error) {
	oid, err := core.ParseID("id", id)
	if err != nil {
		return core.UpdateResult{}, err
	}
	return svc.repo.IncrementSubmission(ctx, oid)
}

func (svc *Service) Submit(ctx context.Context, ns NewSubmission) (core.InsertResult, error) {
	s := SubmittedAssignment{
		AssignmentID: ns.AssignmentID,
		ClassID:      ns.ClassID,
		Title:        ns.Title,
		Name:         ns.Name,
		Email:        ns.Email,
		Link:         ns.Link,
		SubmittedAt:  time.Now().UTC(),
	}
	id, err := svc.repo.CreateSubmission(ctx, s)
	if err != nil {
		return core.InsertResult{}, errors.Wrap(err, "creating submission")
	}
	return core.NewInsertResult(id), nil
}

func (svc *Service) QuerySubmissions(ctx context.Context, filter QueryFilter) ([]SubmittedAssignment, error) {
	filter.Clean()
	return svc.repo.QuerySubmissions(ctx, filter)
}
