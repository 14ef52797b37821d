package user

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillspring/server/core"
)

var (
	// errors
	ErrEmailExists = errors.New("a user with this email already exists")

	msgUserExists = "user already exists"
)

type (
	Repository interface {
		// CreateUser fails with ErrEmailExists when the email is already registered.
		CreateUser(ctx context.Context, usr User) (primitive.ObjectID, error)
		QueryUsers(ctx context.Context, filter QueryFilter) ([]User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		SetUserRole(ctx context.Context, email, role string) (core.UpdateResult, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a user. Registering an existing email is not an error: nothing is inserted
// and the result is unacknowledged.
func (svc *Service) Create(ctx context.Context, nu NewUser) (core.InsertResult, error) {
	usr := User{
		Email:     nu.Email,
		Name:      nu.Name,
		Photo:     nu.Photo,
		Role:      RoleStudent,
		CreatedAt: time.Now().UTC(),
	}
	id, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		if errors.Cause(err) == ErrEmailExists {
			return core.InsertResult{Message: msgUserExists}, nil
		}
		return core.InsertResult{}, errors.Wrap(err, "creating user")
	}
	return core.NewInsertResult(id), nil
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]User, error) {
	filter.Clean()
	return svc.repo.QueryUsers(ctx, filter)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) MakeAdmin(ctx context.Context, email string) (core.UpdateResult, error) {
	return svc.repo.SetUserRole(ctx, core.CleanString(email, true /* lower */), RoleAdmin)
}
