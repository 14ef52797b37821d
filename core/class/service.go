package class

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillspring/server/core"
)

type (
	Repository interface {
		CreateClass(ctx context.Context, cls Class) (primitive.ObjectID, error)
		QueryClasses(ctx context.Context, filter QueryFilter) ([]Class, error)
		GetClass(ctx context.Context, id primitive.ObjectID) (Class, error)
		UpdateClass(ctx context.Context, id primitive.ObjectID, uc UpdateClass) (core.UpdateResult, error)
		SetClassStatus(ctx context.Context, id primitive.ObjectID, status string) (core.UpdateResult, error)
		// IncrementEnroll atomically adds one to the class' enroll count.
		IncrementEnroll(ctx context.Context, id primitive.ObjectID) (core.UpdateResult, error)
		DeleteClass(ctx context.Context, id primitive.ObjectID) (core.DeleteResult, error)
		// TopEnrolled returns at most `limit` classes sorted by enroll count, highest first.
		TopEnrolled(ctx context.Context, limit int64) ([]Class, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nc NewClass) (core.InsertResult, error) {
	cls := Class{
		Title:       nc.Title,
		Name:        nc.Name,
		Email:       nc.Email,
		Image:       nc.Image,
		Price:       nc.Price,
		Description: nc.Description,
		Status:      core.StatusPending,
	}
	id, err := svc.repo.CreateClass(ctx, cls)
	if err != nil {
		return core.InsertResult{}, errors.Wrap(err, "creating class")
	}
	return core.NewInsertResult(id), nil
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Class, error) {
	filter.Clean()
	return svc.repo.QueryClasses(ctx, filter)
}

func (svc *Service) Get(ctx context.Context, id string) (Class, error) {
	oid, err := core.ParseID("id", id)
	if err != nil {
		return Class{}, err
	}
	return svc.repo.GetClass(ctx, oid)
}

func (svc *Service) Update(ctx context.Context, id string, uc UpdateClass) (core.UpdateResult, error) {
	oid, err := core.ParseID("id", id)
	if err != nil {
		return core.UpdateResult{}, err
	}
	return svc.repo.UpdateClass(ctx, oid, uc)
}

func (svc *Service) SetStatus(ctx context.Context, id string, us UpdateStatus) (core.UpdateResult, error) {
	oid, err := core.ParseID("id", id)
	if err != nil {
		return core.UpdateResult{}, err
	}
	return svc.repo.SetClassStatus(ctx, oid, us.Status)
}

func (svc *Service) Enroll(ctx context.Context, id string) (core.UpdateResult, error) {
	oid, err := core.ParseID("id", id)
	if err != nil {
		return core.UpdateResult{}, err
	}
	return svc.repo.IncrementEnroll(ctx, oid)
}

func (svc *Service) Delete(ctx context.Context, id string) (core.DeleteResult, error) {
	oid, err := core.ParseID("id", id)
	if err != nil {
		return core.DeleteResult{}, err
	}
	return svc.repo.DeleteClass(ctx, oid)
}

func (svc *Service) Featured(ctx context.Context) ([]Class, error) {
	return svc.repo.TopEnrolled(ctx, FeaturedLimit)
}
