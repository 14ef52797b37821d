package teacher

import (
	"context"
	"net/mail"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillspring/server/core"
)

var (
	// errors
	ErrEmailExists = errors.New("an application with this email already exists")
)

type (
	Repository interface {
		// CreateTeacher fails with ErrEmailExists when the email already applied.
		CreateTeacher(ctx context.Context, tchr Teacher) (primitive.ObjectID, error)
		QueryTeachers(ctx context.Context) ([]Teacher, error)
		GetTeacherByEmail(ctx context.Context, email string) (Teacher, error)
		UpdateTeacherStatus(ctx context.Context, email, status, role string) (core.UpdateResult, error)
	}

	// UserRoleSetter updates the role of the applicant's user account.
	UserRoleSetter interface {
		SetUserRole(ctx context.Context, email, role string) (core.UpdateResult, error)
	}

	Service struct {
		repo    Repository
		users   UserRoleSetter
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, users UserRoleSetter, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, users: users, mailSvc: mailSvc}
}

// Apply stores a pending application.
func (svc *Service) Apply(ctx context.Context, nt NewTeacher) (core.InsertResult, error) {
	tchr := Teacher{
		Email:      nt.Email,
		Name:       nt.Name,
		Photo:      nt.Photo,
		Title:      nt.Title,
		Category:   nt.Category,
		Experience: nt.Experience,
		Status:     core.StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	id, err := svc.repo.CreateTeacher(ctx, tchr)
	if err != nil {
		if errors.Cause(err) == ErrEmailExists {
			return core.InsertResult{}, core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return core.InsertResult{}, errors.Wrap(err, "creating teacher")
	}
	return core.NewInsertResult(id), nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Teacher, error) {
	return svc.repo.QueryTeachers(ctx)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (Teacher, error) {
	return svc.repo.GetTeacherByEmail(ctx, core.CleanString(email, true /* lower */))
}

// UpdateStatus sets the application's status and role, notifying the applicant when it gets
// approved or rejected. Approving an application with a role grants that role to the
// applicant's user account.
func (svc *Service) UpdateStatus(ctx context.Context, email string, us UpdateStatus) (core.UpdateResult, error) {
	email = core.CleanString(email, true /* lower */)

	prev, err := svc.repo.GetTeacherByEmail(ctx, email)
	if err != nil && errors.Cause(err) != core.ErrNotFound {
		return core.UpdateResult{}, errors.Wrap(err, "finding teacher by email")
	}

	res, err := svc.repo.UpdateTeacherStatus(ctx, email, us.Status, us.Role)
	if err != nil {
		return core.UpdateResult{}, errors.Wrap(err, "updating teacher status")
	}
	if res.ModifiedCount == 0 {
		return res, nil
	}

	if us.Status == core.StatusApproved && us.Role != "" {
		if _, err = svc.users.SetUserRole(ctx, email, us.Role); err != nil {
			return core.UpdateResult{}, errors.Wrap(err, "granting user role")
		}
	}

	if prev.Status != us.Status && us.Status != core.StatusPending {
		svc.sendStatusMail(prev, us.Status)
	}
	return res, nil
}

func (svc *Service) sendStatusMail(tchr Teacher, status string) {
	msg := &core.EmailMessage{
		To:           []mail.Address{{Name: tchr.Name, Address: tchr.Email}},
		Subject:      "Your teacher application has been " + status,
		TemplateName: "teacher_status",
		TemplateData: statusMailData{Name: tchr.Name, Title: tchr.Title, Status: status},
	}
	svc.mailSvc.SendMessages(msg)
}
