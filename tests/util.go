package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillspring/server/core"
	"github.com/skillspring/server/core/assignment"
	"github.com/skillspring/server/core/class"
	"github.com/skillspring/server/core/teacher"
	"github.com/skillspring/server/core/user"
)

func CreateUser(t *testing.T, repo user.Repository, name, email, role string, createdAt ...time.Time) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: tstamp,
	}
	id, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	usr.ID = id
	return usr
}

func CreateTeacher(t *testing.T, repo teacher.Repository, name, email, status string) teacher.Teacher {
	tchr := teacher.Teacher{
		Email:     email,
		Name:      name,
		Title:     "Instructor",
		Category:  "Programming",
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	id, err := repo.CreateTeacher(context.Background(), tchr)
	if err != nil {
		t.Fatalf("createTeacher() failed: %v", err)
	}
	tchr.ID = id
	return tchr
}

func CreateClass(t *testing.T, repo class.Repository, title, teacherName, teacherEmail string, price float64, enroll int64) class.Class {
	cls := class.Class{
		Title:  title,
		Name:   teacherName,
		Email:  teacherEmail,
		Price:  price,
		Status: core.StatusApproved,
		Enroll: enroll,
	}
	id, err := repo.CreateClass(context.Background(), cls)
	if err != nil {
		t.Fatalf("createClass() failed: %v", err)
	}
	cls.ID = id
	return cls
}

func CreateAssignment(t *testing.T, repo assignment.Repository, classID primitive.ObjectID, title string) assignment.Assignment {
	asgmt := assignment.Assignment{
		ClassID:  classID.Hex(),
		Title:    title,
		Deadline: "2030-01-01",
	}
	id, err := repo.CreateAssignment(context.Background(), asgmt)
	if err != nil {
		t.Fatalf("createAssignment() failed: %v", err)
	}
	asgmt.ID = id
	return asgmt
}
