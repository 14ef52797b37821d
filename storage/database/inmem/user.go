package inmemdb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillspring/server/core"
	"github.com/skillspring/server/core/teacher"
	"github.com/skillspring/server/core/user"
)

type userRepository struct {
	db *table[user.User]
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.users}
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User) (primitive.ObjectID, error) {
	usr.ID = newID()
	if !repo.db.insertUnique(usr, func(u user.User) bool { return u.Email == usr.Email }) {
		return primitive.NilObjectID, user.ErrEmailExists
	}
	return usr.ID, nil
}

func (repo *userRepository) QueryUsers(_ context.Context, filter user.QueryFilter) ([]user.User, error) {
	return repo.db.filter(filter.Match), nil
}

func (repo *userRepository) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	return repo.db.find(func(u user.User) bool { return u.Email == email })
}

func (repo *userRepository) SetUserRole(_ context.Context, email, role string) (core.UpdateResult, error) {
	return repo.db.updateOne(
		func(u user.User) bool { return u.Email == email },
		func(u *user.User) bool {
			if u.Role == role {
				return false
			}
			u.Role = role
			return true
		},
	), nil
}

type teacherRepository struct {
	db *table[teacher.Teacher]
}

var _ teacher.Repository = (*teacherRepository)(nil)

func NewTeacherRepository(db *DB) teacher.Repository {
	return &teacherRepository{db: db.teachers}
}

func (repo *teacherRepository) CreateTeacher(_ context.Context, tchr teacher.Teacher) (primitive.ObjectID, error) {
	tchr.ID = newID()
	if !repo.db.insertUnique(tchr, func(t teacher.Teacher) bool { return t.Email == tchr.Email }) {
		return primitive.NilObjectID, teacher.ErrEmailExists
	}
	return tchr.ID, nil
}

func (repo *teacherRepository) QueryTeachers(_ context.Context) ([]teacher.Teacher, error) {
	return repo.db.filter(all[teacher.Teacher]), nil
}

func (repo *teacherRepository) GetTeacherByEmail(_ context.Context, email string) (teacher.Teacher, error) {
	return repo.db.find(func(t teacher.Teacher) bool { return t.Email == email })
}

func (repo *teacherRepository) UpdateTeacherStatus(_ context.Context, email, status, role string) (core.UpdateResult, error) {
	return repo.db.updateOne(
		func(t teacher.Teacher) bool { return t.Email == email },
		func(t *teacher.Teacher) bool {
			modified := t.Status != status
			t.Status = status
			if role != "" && t.Role != role {
				t.Role = role
				modified = true
			}
			return modified
		},
	), nil
}
