package assignment

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillspring/server/core"
)

type Assignment struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ClassID     string             `json:"classId" bson:"classId"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Deadline    string             `json:"deadline" bson:"deadline"`
	Submission  int64              `json:"submission" bson:"submission"`
}

type NewAssignment struct {
	ClassID     string `json:"classId" validate:"required,objectid"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Deadline    string `json:"deadline" validate:"required"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.ClassID = core.CleanString(na.ClassID)
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	na.Deadline = core.CleanString(na.Deadline)
	return validate.Struct(na)
}

// SubmittedAssignment is a student's submission of an Assignment.
type SubmittedAssignment struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	AssignmentID string             `json:"assignmentId" bson:"assignmentId"`
	ClassID      string             `json:"classId" bson:"classId"`
	Title        string             `json:"title" bson:"title"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	Link         string             `json:"link" bson:"link"`
	SubmittedAt  time.Time          `json:"submittedAt" bson:"submittedAt"` // UTC
}

type NewSubmission struct {
	AssignmentID string `json:"assignmentId" validate:"required,objectid"`
	ClassID      string `json:"classId" validate:"required,objectid"`
	Title        string `json:"title"`
	Name         string `json:"name"`
	Email        string `json:"email" validate:"required,email"`
	Link         string `json:"link" validate:"required,url"`
}

func (ns *NewSubmission) Validate(validate *validator.Validate) error {
	ns.AssignmentID = core.CleanString(ns.AssignmentID)
	ns.ClassID = core.CleanString(ns.ClassID)
	ns.Title = core.CleanString(ns.Title)
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Link = core.CleanString(ns.Link)
	return validate.Struct(ns)
}

type QueryFilter struct {
	ClassID string `query:"classId"`
	Email   string `query:"email"`
}

func (qf *QueryFilter) Clean() {
	qf.ClassID = core.CleanString(qf.ClassID)
	qf.Email = core.CleanString(qf.Email, true /* lower */)
}

func (qf QueryFilter) MatchAssignment(a Assignment) bool {
	return qf.ClassID == "" || a.ClassID == qf.ClassID
}

func (qf QueryFilter) MatchSubmission(s SubmittedAssignment) bool {
	return (qf.ClassID == "" || s.ClassID == qf.ClassID) && (qf.Email == "" || s.Email == qf.Email)
}
