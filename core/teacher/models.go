package teacher

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillspring/server/core"
)

// Teacher is an application to teach on the platform.
type Teacher struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email      string             `json:"email" bson:"email"`
	Name       string             `json:"name" bson:"name"`
	Photo      string             `json:"photo" bson:"photo"`
	Title      string             `json:"title" bson:"title"`
	Category   string             `json:"category" bson:"category"`
	Experience string             `json:"experience" bson:"experience"`
	Status     string             `json:"status" bson:"status"`
	Role       string             `json:"role" bson:"role"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"` // UTC
}

type NewTeacher struct {
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name" validate:"required"`
	Photo      string `json:"photo" validate:"omitempty,url"`
	Title      string `json:"title" validate:"required"`
	Category   string `json:"category" validate:"required"`
	Experience string `json:"experience"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.Name = core.CleanString(nt.Name)
	nt.Photo = core.CleanString(nt.Photo)
	nt.Title = core.CleanString(nt.Title)
	nt.Category = core.CleanString(nt.Category)
	nt.Experience = core.CleanString(nt.Experience)
	return validate.Struct(nt)
}

// UpdateStatus reviews an application.
type UpdateStatus struct {
	Status string `json:"status" validate:"required,status"`
	Role   string `json:"role" validate:"omitempty,userrole"`
}

func (us *UpdateStatus) Validate(validate *validator.Validate) error {
	us.Status = core.CleanString(us.Status, true /* lower */)
	us.Role = core.CleanString(us.Role, true /* lower */)
	return validate.Struct(us)
}

// statusMailData feeds the "teacher_status" email template.
type statusMailData struct {
	Name   string
	Title  string
	Status string
}
