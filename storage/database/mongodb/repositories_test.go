package mongorepos_test

import (
	"context"
	"fmt"
	"sync"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillspring/server/core"
	"github.com/skillspring/server/core/assignment"
	"github.com/skillspring/server/core/class"
	"github.com/skillspring/server/core/teacher"
	"github.com/skillspring/server/core/user"
	mongorepos "github.com/skillspring/server/storage/database/mongodb"
)

var _ = Describe("Users", func() {
	var repo user.Repository
	ctx := context.Background()

	BeforeEach(func() {
		cleanupMongo()
		repo = mongorepos.NewUserRepository(db)
	})

	It("rejects a second user with the same email", func() {
		_, err := repo.CreateUser(ctx, user.User{Email: "ann@test.cd", Name: "Ann", Role: user.RoleStudent})
		Expect(err).To(BeNil())

		_, err = repo.CreateUser(ctx, user.User{Email: "ann@test.cd", Name: "Other"})
		Expect(err).To(Equal(user.ErrEmailExists))

		users, err := repo.QueryUsers(ctx, user.QueryFilter{})
		Expect(err).To(BeNil())
		Expect(users).To(HaveLen(1))
	})

	It("searches name and email literally and case-insensitively", func() {
		for _, u := range []user.User{
			{Email: "ann@test.cd", Name: "Ann Smith"},
			{Email: "bob@smith.io", Name: "Bob"},
			{Email: "c.d@test.cd", Name: "Carl"},
		} {
			_, err := repo.CreateUser(ctx, u)
			Expect(err).To(BeNil())
		}

		users, err := repo.QueryUsers(ctx, user.QueryFilter{Search: "SMITH"})
		Expect(err).To(BeNil())
		Expect(users).To(HaveLen(2))

		users, err = repo.QueryUsers(ctx, user.QueryFilter{Search: "c.d"})
		Expect(err).To(BeNil())
		Expect(users).To(HaveLen(1))

		users, err = repo.QueryUsers(ctx, user.QueryFilter{Search: ".*"})
		Expect(err).To(BeNil())
		Expect(users).To(BeEmpty())
	})

	It("promotes a user to admin", func() {
		_, err := repo.CreateUser(ctx, user.User{Email: "ann@test.cd", Role: user.RoleStudent})
		Expect(err).To(BeNil())

		res, err := repo.SetUserRole(ctx, "ann@test.cd", user.RoleAdmin)
		Expect(err).To(BeNil())
		Expect(res.MatchedCount).To(BeEquivalentTo(1))
		Expect(res.ModifiedCount).To(BeEquivalentTo(1))

		usr, err := repo.GetUserByEmail(ctx, "ann@test.cd")
		Expect(err).To(BeNil())
		Expect(usr.Role).To(Equal(user.RoleAdmin))

		_, err = repo.GetUserByEmail(ctx, "nobody@test.cd")
		Expect(err).To(Equal(core.ErrNotFound))
	})
})

var _ = Describe("Teachers", func() {
	var repo teacher.Repository
	ctx := context.Background()

	BeforeEach(func() {
		cleanupMongo()
		repo = mongorepos.NewTeacherRepository(db)
	})

	It("keeps one application per email and updates its status", func() {
		_, err := repo.CreateTeacher(ctx, teacher.Teacher{Email: "t@test.cd", Status: core.StatusPending})
		Expect(err).To(BeNil())
		_, err = repo.CreateTeacher(ctx, teacher.Teacher{Email: "t@test.cd"})
		Expect(err).To(Equal(teacher.ErrEmailExists))

		res, err := repo.UpdateTeacherStatus(ctx, "t@test.cd", core.StatusApproved, user.RoleTeacher)
		Expect(err).To(BeNil())
		Expect(res.ModifiedCount).To(BeEquivalentTo(1))

		tchr, err := repo.GetTeacherByEmail(ctx, "t@test.cd")
		Expect(err).To(BeNil())
		Expect(tchr.Status).To(Equal(core.StatusApproved))
		Expect(tchr.Role).To(Equal(user.RoleTeacher))
	})
})

var _ = Describe("Classes", func() {
	var repo class.Repository
	ctx := context.Background()

	BeforeEach(func() {
		cleanupMongo()
		repo = mongorepos.NewClassRepository(db)
	})

	It("counts concurrent enrollments exactly", func() {
		id, err := repo.CreateClass(ctx, class.Class{Title: "Go", Status: core.StatusPending})
		Expect(err).To(BeNil())

		const n = 20
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				_, err := repo.IncrementEnroll(ctx, id)
				Expect(err).To(BeNil())
			}()
		}
		wg.Wait()

		cls, err := repo.GetClass(ctx, id)
		Expect(err).To(BeNil())
		Expect(cls.Enroll).To(BeEquivalentTo(n))
	})

	It("lists at most six featured classes by enrollment", func() {
		for i := 0; i < 8; i++ {
			_, err := repo.CreateClass(ctx, class.Class{Title: fmt.Sprintf("class %d", i), Enroll: int64(i)})
			Expect(err).To(BeNil())
		}

		classes, err := repo.TopEnrolled(ctx, class.FeaturedLimit)
		Expect(err).To(BeNil())
		Expect(classes).To(HaveLen(class.FeaturedLimit))
		for i, cls := range classes {
			Expect(cls.Enroll).To(BeEquivalentTo(7 - i))
		}
	})

	It("deletes a class once", func() {
		id, err := repo.CreateClass(ctx, class.Class{Title: "Go"})
		Expect(err).To(BeNil())

		res, err := repo.DeleteClass(ctx, id)
		Expect(err).To(BeNil())
		Expect(res.DeletedCount).To(BeEquivalentTo(1))

		res, err = repo.DeleteClass(ctx, id)
		Expect(err).To(BeNil())
		Expect(res.DeletedCount).To(BeEquivalentTo(0))

		_, err = repo.GetClass(ctx, id)
		Expect(err).To(Equal(core.ErrNotFound))
	})

	It("updates the editable fields", func() {
		id, err := repo.CreateClass(ctx, class.Class{Title: "Go", Price: 10, Status: core.StatusPending})
		Expect(err).To(BeNil())

		res, err := repo.UpdateClass(ctx, id, class.UpdateClass{Title: "Go 2", Price: 20, Description: "new", Status: core.StatusApproved})
		Expect(err).To(BeNil())
		Expect(res.MatchedCount).To(BeEquivalentTo(1))

		cls, err := repo.GetClass(ctx, id)
		Expect(err).To(BeNil())
		Expect(cls.Title).To(Equal("Go 2"))
		Expect(cls.Price).To(Equal(20.0))
		Expect(cls.Status).To(Equal(core.StatusApproved))

		res, err = repo.SetClassStatus(ctx, primitive.NewObjectID(), core.StatusRejected)
		Expect(err).To(BeNil())
		Expect(res.MatchedCount).To(BeEquivalentTo(0))
	})
})

var _ = Describe("Assignments", func() {
	var repo assignment.Repository
	ctx := context.Background()

	BeforeEach(func() {
		cleanupMongo()
		repo = mongorepos.NewAssignmentRepository(db)
	})

	It("keeps submissions and the submission count independent", func() {
		classID := primitive.NewObjectID().Hex()
		id, err := repo.CreateAssignment(ctx, assignment.Assignment{ClassID: classID, Title: "hw"})
		Expect(err).To(BeNil())

		_, err = repo.CreateSubmission(ctx, assignment.SubmittedAssignment{AssignmentID: id.Hex(), ClassID: classID, Email: "s@test.cd"})
		Expect(err).To(BeNil())

		assignments, err := repo.QueryAssignments(ctx, assignment.QueryFilter{ClassID: classID})
		Expect(err).To(BeNil())
		Expect(assignments).To(HaveLen(1))
		Expect(assignments[0].Submission).To(BeEquivalentTo(0))

		_, err = repo.IncrementSubmission(ctx, id)
		Expect(err).To(BeNil())
		assignments, err = repo.QueryAssignments(ctx, assignment.QueryFilter{})
		Expect(err).To(BeNil())
		Expect(assignments[0].Submission).To(BeEquivalentTo(1))

		subs, err := repo.QuerySubmissions(ctx, assignment.QueryFilter{Email: "s@test.cd"})
		Expect(err).To(BeNil())
		Expect(subs).To(HaveLen(1))
	})
})
