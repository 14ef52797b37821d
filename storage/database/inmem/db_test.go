package inmemdb

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillspring/server/core"
	"github.com/skillspring/server/core/assignment"
	"github.com/skillspring/server/core/class"
	"github.com/skillspring/server/core/user"
)

func TestTable(t *testing.T) {
	tbl := new(table[int])
	byValue := func(v int) func(int) bool { return func(i int) bool { return i == v } }

	tbl.insert(1)
	assert.True(t, tbl.insertUnique(2, byValue(2)))
	assert.False(t, tbl.insertUnique(2, byValue(2)))
	assert.Equal(t, []int{1, 2}, tbl.filter(all[int]))

	_, err := tbl.find(byValue(3))
	assert.Equal(t, core.ErrNotFound, err)

	res := tbl.updateOne(byValue(2), func(i *int) bool { *i = 20; return true })
	assert.Equal(t, core.NewUpdateResult(1, 1), res)
	res = tbl.updateOne(byValue(20), func(*int) bool { return false })
	assert.Equal(t, core.NewUpdateResult(1, 0), res)
	res = tbl.updateOne(byValue(2), func(*int) bool { return true })
	assert.Equal(t, core.NewUpdateResult(0, 0), res)

	assert.Equal(t, core.NewDeleteResult(1), tbl.deleteOne(byValue(1)))
	assert.Equal(t, core.NewDeleteResult(0), tbl.deleteOne(byValue(1)))
	assert.Equal(t, []int{20}, tbl.filter(all[int]))

	tbl.reset()
	assert.Empty(t, tbl.filter(all[int]))
}

func TestUserRepository_uniqueEmail(t *testing.T) {
	repo := NewUserRepository(Open())
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, user.User{Email: "awe@test.cd"})
	require.NoError(t, err)
	_, err = repo.CreateUser(ctx, user.User{Email: "awe@test.cd", Name: "Again"})
	assert.Equal(t, user.ErrEmailExists, err)

	users, err := repo.QueryUsers(ctx, user.QueryFilter{})
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestClassRepository(t *testing.T) {
	repo := NewClassRepository(Open())
	ctx := context.Background()

	ids := make([]primitive.ObjectID, 0, 8)
	for _, enroll := range []int64{3, 9, 1, 9, 4, 0, 7, 2} {
		id, err := repo.CreateClass(ctx, class.Class{Title: "Class", Enroll: enroll})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.IncrementEnroll(ctx, ids[5])
		}()
	}
	wg.Wait()

	cls, err := repo.GetClass(ctx, ids[5])
	require.NoError(t, err)
	assert.EqualValues(t, n, cls.Enroll)

	top, err := repo.TopEnrolled(ctx, class.FeaturedLimit)
	require.NoError(t, err)
	require.Len(t, top, class.FeaturedLimit)
	enrolls := make([]int64, 0, len(top))
	for _, c := range top {
		enrolls = append(enrolls, c.Enroll)
	}
	assert.Equal(t, []int64{n, 9, 9, 7, 4, 3}, enrolls)
	assert.Equal(t, ids[1], top[1].ID) // ties keep insertion order
}

func TestAssignmentRepository_submissions(t *testing.T) {
	repo := NewAssignmentRepository(Open())
	ctx := context.Background()

	id, err := repo.CreateAssignment(ctx, assignment.Assignment{ClassID: "c1", Title: "Hello"})
	require.NoError(t, err)

	_, err = repo.CreateSubmission(ctx, assignment.SubmittedAssignment{AssignmentID: id.Hex(), ClassID: "c1", Email: "a@test.cd"})
	require.NoError(t, err)
	_, err = repo.CreateSubmission(ctx, assignment.SubmittedAssignment{AssignmentID: id.Hex(), ClassID: "c2", Email: "b@test.cd"})
	require.NoError(t, err)

	res, err := repo.IncrementSubmission(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, core.NewUpdateResult(1, 1), res)

	subs, err := repo.QuerySubmissions(ctx, assignment.QueryFilter{Email: "b@test.cd"})
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "c2", subs[0].ClassID)

	asgmts, err := repo.QueryAssignments(ctx, assignment.QueryFilter{ClassID: "c1"})
	require.NoError(t, err)
	require.Len(t, asgmts, 1)
	assert.EqualValues(t, 1, asgmts[0].Submission)
}
