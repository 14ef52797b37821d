package class

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillspring/server/core"
)

// FeaturedLimit is the number of classes listed as featured.
const FeaturedLimit = 6

type Class struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Name        string             `json:"name" bson:"name"`   // teacher's name
	Email       string             `json:"email" bson:"email"` // teacher's email
	Image       string             `json:"image" bson:"image"`
	Price       float64            `json:"price" bson:"price"`
	Description string             `json:"description" bson:"description"`
	Status      string             `json:"status" bson:"status"`
	Enroll      int64              `json:"enroll" bson:"enroll"`
}

type NewClass struct {
	Title       string  `json:"title" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Image       string  `json:"image" validate:"omitempty,url"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
}

func (nc *NewClass) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	nc.Name = core.CleanString(nc.Name)
	nc.Email = core.CleanString(nc.Email, true /* lower */)
	nc.Image = core.CleanString(nc.Image)
	nc.Description = core.CleanString(nc.Description)
	return validate.Struct(nc)
}

// UpdateClass holds the fields a teacher may edit.
type UpdateClass struct {
	Title       string  `json:"title" bson:"title" validate:"required"`
	Price       float64 `json:"price" bson:"price" validate:"gte=0"`
	Description string  `json:"description" bson:"description"`
	Status      string  `json:"status" bson:"status" validate:"required,status"`
}

func (uc *UpdateClass) Validate(validate *validator.Validate) error {
	uc.Title = core.CleanString(uc.Title)
	uc.Description = core.CleanString(uc.Description)
	uc.Status = core.CleanString(uc.Status, true /* lower */)
	return validate.Struct(uc)
}

type UpdateStatus struct {
	Status string `json:"status" validate:"required,status"`
}

func (us *UpdateStatus) Validate(validate *validator.Validate) error {
	us.Status = core.CleanString(us.Status, true /* lower */)
	return validate.Struct(us)
}

type QueryFilter struct {
	Search string `query:"search"`
	Email  string `query:"email"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Email = core.CleanString(qf.Email, true /* lower */)
}

// Match reports whether cls matches the filter. Search is a case-insensitive substring of the
// teacher's name or the title; Email is the teacher's exact email.
func (qf QueryFilter) Match(cls Class) bool {
	if qf.Email != "" && cls.Email != qf.Email {
		return false
	}
	if qf.Search == "" {
		return true
	}
	return core.ContainsFold(cls.Name, qf.Search) || core.ContainsFold(cls.Title, qf.Search)
}
