package inmemdb

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillspring/server/core"
	"github.com/skillspring/server/core/class"
)

type classRepository struct {
	db *table[class.Class]
}

var _ class.Repository = (*classRepository)(nil)

func NewClassRepository(db *DB) class.Repository {
	return &classRepository{db: db.classes}
}

func byClassID(id primitive.ObjectID) func(class.Class) bool {
	return func(c class.Class) bool { return c.ID == id }
}

func (repo *classRepository) CreateClass(_ context.Context, cls class.Class) (primitive.ObjectID, error) {
	cls.ID = newID()
	repo.db.insert(cls)
	return cls.ID, nil
}

func (repo *classRepository) QueryClasses(_ context.Context, filter class.QueryFilter) ([]class.Class, error) {
	return repo.db.filter(filter.Match), nil
}

func (repo *classRepository) GetClass(_ context.Context, id primitive.ObjectID) (class.Class, error) {
	return repo.db.find(byClassID(id))
}

func (repo *classRepository) UpdateClass(_ context.Context, id primitive.ObjectID, uc class.UpdateClass) (core.UpdateResult, error) {
	return repo.db.updateOne(byClassID(id), func(c *class.Class) bool {
		before := *c
		c.Title = uc.Title
		c.Price = uc.Price
		c.Description = uc.Description
		c.Status = uc.Status
		return before != *c
	}), nil
}

func (repo *classRepository) SetClassStatus(_ context.Context, id primitive.ObjectID, status string) (core.UpdateResult, error) {
	return repo.db.updateOne(byClassID(id), func(c *class.Class) bool {
		if c.Status == status {
			return false
		}
		c.Status = status
		return true
	}), nil
}

func (repo *classRepository) IncrementEnroll(_ context.Context, id primitive.ObjectID) (core.UpdateResult, error) {
	return repo.db.updateOne(byClassID(id), func(c *class.Class) bool {
		c.Enroll++
		return true
	}), nil
}

func (repo *classRepository) DeleteClass(_ context.Context, id primitive.ObjectID) (core.DeleteResult, error) {
	return repo.db.deleteOne(byClassID(id)), nil
}

func (repo *classRepository) TopEnrolled(_ context.Context, limit int64) ([]class.Class, error) {
	classes := repo.db.filter(all[class.Class])
	sort.SliceStable(classes, func(i, j int) bool { return classes[i].Enroll > classes[j].Enroll })
	if int64(len(classes)) > limit {
		classes = classes[:limit]
	}
	return classes, nil
}
