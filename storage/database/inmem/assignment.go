package inmemdb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillspring/server/core"
	"github.com/skillspring/server/core/assignment"
	"github.com/skillspring/server/core/payment"
	"github.com/skillspring/server/core/review"
)

type assignmentRepository struct {
	assignments *table[assignment.Assignment]
	submissions *table[assignment.SubmittedAssignment]
}

var _ assignment.Repository = (*assignmentRepository)(nil)

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{assignments: db.assignments, submissions: db.submissions}
}

func (repo *assignmentRepository) CreateAssignment(_ context.Context, a assignment.Assignment) (primitive.ObjectID, error) {
	a.ID = newID()
	repo.assignments.insert(a)
	return a.ID, nil
}

func (repo *assignmentRepository) QueryAssignments(_ context.Context, filter assignment.QueryFilter) ([]assignment.Assignment, error) {
	return repo.assignments.filter(filter.MatchAssignment), nil
}

func (repo *assignmentRepository) IncrementSubmission(_ context.Context, id primitive.ObjectID) (core.UpdateResult, error) {
	return repo.assignments.updateOne(
		func(a assignment.Assignment) bool { return a.ID == id },
		func(a *assignment.Assignment) bool {
			a.Submission++
			return true
		},
	), nil
}

func (repo *assignmentRepository) CreateSubmission(_ context.Context, s assignment.SubmittedAssignment) (primitive.ObjectID, error) {
	s.ID = newID()
	repo.submissions.insert(s)
	return s.ID, nil
}

func (repo *assignmentRepository) QuerySubmissions(_ context.Context, filter assignment.QueryFilter) ([]assignment.SubmittedAssignment, error) {
	return repo.submissions.filter(filter.MatchSubmission), nil
}

type paymentRepository struct {
	db *table[payment.Payment]
}

var _ payment.Repository = (*paymentRepository)(nil)

func NewPaymentRepository(db *DB) payment.Repository {
	return &paymentRepository{db: db.payments}
}

func (repo *paymentRepository) CreatePayment(_ context.Context, p payment.Payment) (primitive.ObjectID, error) {
	p.ID = newID()
	repo.db.insert(p)
	return p.ID, nil
}

func (repo *paymentRepository) QueryPayments(_ context.Context, filter payment.QueryFilter) ([]payment.Payment, error) {
	return repo.db.filter(filter.Match), nil
}

type reviewRepository struct {
	db *table[review.Review]
}

var _ review.Repository = (*reviewRepository)(nil)

func NewReviewRepository(db *DB) review.Repository {
	return &reviewRepository{db: db.reviews}
}

func (repo *reviewRepository) CreateReview(_ context.Context, r review.Review) (primitive.ObjectID, error) {
	r.ID = newID()
	repo.db.insert(r)
	return r.ID, nil
}

func (repo *reviewRepository) QueryReviews(_ context.Context, filter review.QueryFilter) ([]review.Review, error) {
	return repo.db.filter(filter.Match), nil
}
