package review

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillspring/server/core"
)

type Review struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ClassID     string             `json:"classId" bson:"classId"`
	Title       string             `json:"title" bson:"title"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	Photo       string             `json:"photo" bson:"photo"`
	Rating      int                `json:"rating" bson:"rating"`
	Description string             `json:"description" bson:"description"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"` // UTC
}

type NewReview struct {
	ClassID     string `json:"classId" validate:"required,objectid"`
	Title       string `json:"title"`
	Name        string `json:"name"`
	Email       string `json:"email" validate:"required,email"`
	Photo       string `json:"photo" validate:"omitempty,url"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Description string `json:"description"`
}

func (nr *NewReview) Validate(validate *validator.Validate) error {
	nr.ClassID = core.CleanString(nr.ClassID)
	nr.Title = core.CleanString(nr.Title)
	nr.Name = core.CleanString(nr.Name)
	nr.Email = core.CleanString(nr.Email, true /* lower */)
	nr.Photo = core.CleanString(nr.Photo)
	nr.Description = core.CleanString(nr.Description)
	return validate.Struct(nr)
}

type QueryFilter struct {
	ClassID string `query:"classId"`
}

func (qf *QueryFilter) Clean() {
	qf.ClassID = core.CleanString(qf.ClassID)
}

func (qf QueryFilter) Match(r Review) bool {
	return qf.ClassID == "" || r.ClassID == qf.ClassID
}

type (
	Repository interface {
		CreateReview(ctx context.Context, r Review) (primitive.ObjectID, error)
		QueryReviews(ctx context.Context, filter QueryFilter) ([]Review, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nr NewReview) (core.InsertResult, error) {
	r := Review{
		ClassID:     nr.ClassID,
		Title:       nr.Title,
		Name:        nr.Name,
		Email:       nr.Email,
		Photo:       nr.Photo,
		Rating:      nr.Rating,
		Description: nr.Description,
		CreatedAt:   time.Now().UTC(),
	}
	id, err := svc.repo.CreateReview(ctx, r)
	if err != nil {
		return core.InsertResult{}, errors.Wrap(err, "creating review")
	}
	return core.NewInsertResult(id), nil
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Review, error) {
	filter.Clean()
	return svc.repo.QueryReviews(ctx, filter)
}
