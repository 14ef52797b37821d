package inmemdb

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillspring/server/core"
	"github.com/skillspring/server/core/assignment"
	"github.com/skillspring/server/core/class"
	"github.com/skillspring/server/core/payment"
	"github.com/skillspring/server/core/review"
	"github.com/skillspring/server/core/teacher"
	"github.com/skillspring/server/core/user"
)

// table keeps documents in insertion order.
type table[T any] struct {
	mutex sync.RWMutex
	rows  []*T
}

// DB is an in-process store with one table per collection.
type DB struct {
	users       *table[user.User]
	teachers    *table[teacher.Teacher]
	classes     *table[class.Class]
	assignments *table[assignment.Assignment]
	submissions *table[assignment.SubmittedAssignment]
	payments    *table[payment.Payment]
	reviews     *table[review.Review]
}

func Open() *DB {
	return &DB{
		users:       new(table[user.User]),
		teachers:    new(table[teacher.Teacher]),
		classes:     new(table[class.Class]),
		assignments: new(table[assignment.Assignment]),
		submissions: new(table[assignment.SubmittedAssignment]),
		payments:    new(table[payment.Payment]),
		reviews:     new(table[review.Review]),
	}
}

// Reset drops every document.
func (db *DB) Reset() {
	db.users.reset()
	db.teachers.reset()
	db.classes.reset()
	db.assignments.reset()
	db.submissions.reset()
	db.payments.reset()
	db.reviews.reset()
}

func (t *table[T]) reset() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.rows = nil
}

func (t *table[T]) insert(doc T) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.rows = append(t.rows, &doc)
}

// insertUnique inserts doc unless a document conflicts with it, like a unique index would.
func (t *table[T]) insertUnique(doc T, conflicts func(T) bool) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	for _, row := range t.rows {
		if conflicts(*row) {
			return false
		}
	}
	t.rows = append(t.rows, &doc)
	return true
}

// filter returns copies of the matching documents. It never returns a nil slice.
func (t *table[T]) filter(match func(T) bool) []T {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	docs := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		if match(*row) {
			docs = append(docs, *row)
		}
	}
	return docs
}

func (t *table[T]) find(match func(T) bool) (T, error) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	for _, row := range t.rows {
		if match(*row) {
			return *row, nil
		}
	}
	var zero T
	return zero, core.ErrNotFound
}

// updateOne applies `update` to the first matching document; update reports whether it changed it.
func (t *table[T]) updateOne(match func(T) bool, update func(*T) bool) core.UpdateResult {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	for _, row := range t.rows {
		if match(*row) {
			var modified int64
			if update(row) {
				modified = 1
			}
			return core.NewUpdateResult(1, modified)
		}
	}
	return core.NewUpdateResult(0, 0)
}

func (t *table[T]) deleteOne(match func(T) bool) core.DeleteResult {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	for i, row := range t.rows {
		if match(*row) {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return core.NewDeleteResult(1)
		}
	}
	return core.NewDeleteResult(0)
}

func all[T any](T) bool { return true }

func newID() primitive.ObjectID { return primitive.NewObjectID() }
