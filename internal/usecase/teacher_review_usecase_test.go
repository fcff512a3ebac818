package usecase

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
	"studymarket/pkg/utils"
)

func TestCreateTeacherReviewDedupesByNormalizedName(t *testing.T) {
	f := newFixture(t)
	student := f.user(t, entity.RoleStudent, 0)
	course := f.course(t, "CHEM2")

	review, err := f.teacherRevs.CreateTeacherReview(f.ctx, student.ID, CreateTeacherReviewInput{
		CourseID: course.ID, TeacherName: "Dr. Smith", Rating: 5, Text: "great",
	})
	require.NoError(t, err)
	assert.Equal(t, "dr. smith", review.NormalizedName)
	assert.Nil(t, review.TeacherID)

	_, err = f.teacherRevs.CreateTeacherReview(f.ctx, student.ID, CreateTeacherReviewInput{
		CourseID: course.ID, TeacherName: "  dr.   smith ", Rating: 1, Text: "changed my mind",
	})
	requireAppError(t, err, http.StatusBadRequest, "You already reviewed this teacher")

	// the same teacher in another course is a separate review
	other := f.course(t, "CHEM3")
	_, err = f.teacherRevs.CreateTeacherReview(f.ctx, student.ID, CreateTeacherReviewInput{
		CourseID: other.ID, TeacherName: "Dr. Smith", Rating: 4, Text: "fine",
	})
	require.NoError(t, err)

	_, err = f.teacherRevs.CreateTeacherReview(f.ctx, student.ID, CreateTeacherReviewInput{
		CourseID: course.ID, TeacherName: "   ", Rating: 4, Text: "blank",
	})
	requireAppError(t, err, http.StatusBadRequest, "teacherName is required")
}

func TestRemovedTeacherReviewFreesTheName(t *testing.T) {
	f := newFixture(t)
	student := f.user(t, entity.RoleStudent, 0)
	staff := f.user(t, entity.RoleStaff, 0)
	course := f.course(t, "CHEM2")

	review, err := f.teacherRevs.CreateTeacherReview(f.ctx, student.ID, CreateTeacherReviewInput{
		CourseID: course.ID, TeacherName: "Dr. Smith", Rating: 1, Text: "rant",
	})
	require.NoError(t, err)

	reason := "off topic"
	removed, err := f.moderation.RemoveTeacherReview(f.ctx, review.ID, staff.ID, &reason)
	require.NoError(t, err)
	assert.Equal(t, entity.ReviewRemoved, removed.Status)
	require.NotNil(t, removed.DecisionReason)
	assert.Equal(t, reason, *removed.DecisionReason)

	_, err = f.teacherRevs.CreateTeacherReview(f.ctx, student.ID, CreateTeacherReviewInput{
		CourseID: course.ID, TeacherName: "DR. SMITH", Rating: 3, Text: "calmer now",
	})
	require.NoError(t, err)
}

func TestApproveTeacherReviewLinksTeacher(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, entity.RoleStudent, 0)
	bob := f.user(t, entity.RoleStudent, 0)
	staff := f.user(t, entity.RoleStaff, 0)
	course := f.course(t, "CHEM2")

	first, err := f.teacherRevs.CreateTeacherReview(f.ctx, alice.ID, CreateTeacherReviewInput{
		CourseID: course.ID, TeacherName: "Dr.  Smith", Rating: 5, Text: "great",
	})
	require.NoError(t, err)
	second, err := f.teacherRevs.CreateTeacherReview(f.ctx, bob.ID, CreateTeacherReviewInput{
		CourseID: course.ID, TeacherName: "Dr. Smith", Rating: 4, Text: "good",
	})
	require.NoError(t, err)

	approved, err := f.moderation.ApproveTeacherReview(f.ctx, first.ID, staff.ID)
	require.NoError(t, err)
	require.NotNil(t, approved.TeacherID)
	require.NotNil(t, approved.ReviewedByID)
	assert.Equal(t, staff.ID, *approved.ReviewedByID)

	again, err := f.moderation.ApproveTeacherReview(f.ctx, second.ID, staff.ID)
	require.NoError(t, err)
	require.NotNil(t, again.TeacherID)
	assert.Equal(t, *approved.TeacherID, *again.TeacherID)
	assert.EqualValues(t, 1, f.store.CounterValue(repository.SeqTeachers))

	teachers, err := f.courses.ListTeachers(f.ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, "Dr. Smith", teachers[0].Name)

	reviews, err := f.courses.ListReviewsForTeacher(f.ctx, course.ID, teachers[0].ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestTeacherReviewVisibilityForViewer(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, entity.RoleStudent, 0)
	reporter := f.user(t, entity.RoleStudent, 0)
	course := f.course(t, "CHEM2")

	review, err := f.teacherRevs.CreateTeacherReview(f.ctx, author.ID, CreateTeacherReviewInput{
		CourseID: course.ID, TeacherName: "Prof. Jones", Rating: 2, Text: "hard grader",
	})
	require.NoError(t, err)

	_, err = f.reports.File(f.ctx, reporter.ID, entity.ReportTargetTeacherReview, review.ID, "")
	require.NoError(t, err)

	anonymous, err := f.courses.ListTeacherReviews(f.ctx, course.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, anonymous)

	own, err := f.courses.ListTeacherReviews(f.ctx, course.ID, author.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, entity.ReviewUnderReview, own[0].Status)

	queue, err := f.moderation.ListTeacherReviews(f.ctx, entity.ReviewUnderReview, utils.NewPaginationParams(1, 10))
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, review.ID, queue[0].ID)
}
