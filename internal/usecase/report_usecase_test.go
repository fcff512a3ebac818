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

func TestFileReportFlagsTarget(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, entity.RoleStudent, 0)
	reporter := f.user(t, entity.RoleStudent, 0)
	review := f.review(t, author, f.course(t, "BIO1"))

	report, err := f.reports.File(f.ctx, reporter.ID, entity.ReportTargetReview, review.ID, " rude ")
	require.NoError(t, err)
	assert.Equal(t, entity.ReportPending, report.Status)
	assert.Equal(t, "rude", report.Reason)

	stored, err := f.store.Reviews().GetByID(f.ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReviewUnderReview, stored.Status)

	_, err = f.reports.File(f.ctx, reporter.ID, entity.ReportTargetReview, review.ID, "again")
	requireAppError(t, err, http.StatusConflict, "Report already submitted")

	// a second reporter on a target already under review is fine
	_, err = f.reports.File(f.ctx, author.ID, entity.ReportTargetReview, review.ID, "")
	require.NoError(t, err)

	pending, err := f.reports.List(f.ctx, entity.ReportPending, utils.NewPaginationParams(1, 10))
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestFileReportOnMissingTarget(t *testing.T) {
	f := newFixture(t)
	reporter := f.user(t, entity.RoleStudent, 0)

	_, err := f.reports.File(f.ctx, reporter.ID, entity.ReportTargetReview, 404, "gone")
	requireAppError(t, err, http.StatusNotFound, "Review not found")

	_, err = f.reports.File(f.ctx, reporter.ID, entity.ReportTargetTeacherReview, 404, "gone")
	requireAppError(t, err, http.StatusNotFound, "Teacher review not found")

	_, err = f.reports.File(f.ctx, reporter.ID, entity.ReportTargetType("COURSE"), 1, "bad")
	requireAppError(t, err, http.StatusBadRequest, "Invalid report target type")
	assert.EqualValues(t, 0, f.store.CounterValue(repository.SeqReports))
}

func TestRemoveTargetCascades(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, entity.RoleStudent, 0)
	first := f.user(t, entity.RoleStudent, 0)
	second := f.user(t, entity.RoleStudent, 0)
	admin := f.user(t, entity.RoleAdmin, 0)
	review := f.review(t, author, f.course(t, "BIO1"))

	_, err := f.reviews.Upvote(f.ctx, review.ID, first.ID)
	require.NoError(t, err)
	_, err = f.reviews.UpdateReview(f.ctx, review.ID, author.ID, 1, "edited")
	require.NoError(t, err)

	r1, err := f.reports.File(f.ctx, first.ID, entity.ReportTargetReview, review.ID, "spam")
	require.NoError(t, err)
	r2, err := f.reports.File(f.ctx, second.ID, entity.ReportTargetReview, review.ID, "spam too")
	require.NoError(t, err)

	result, err := f.reports.RemoveTarget(f.ctx, r1.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, r1.ID, result.ID)
	assert.Equal(t, entity.ReportResolved, result.Status)

	_, err = f.store.Reviews().GetByID(f.ctx, review.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 0, f.store.HistoryCount(review.ID))

	other, err := f.store.Reports().GetByID(f.ctx, r2.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReportResolved, other.Status)
	require.NotNil(t, other.ResolvedByID)
	assert.Equal(t, admin.ID, *other.ResolvedByID)

	_, err = f.reports.RemoveTarget(f.ctx, r1.ID, admin.ID)
	requireAppError(t, err, http.StatusBadRequest, "Report cannot be resolved")

	_, err = f.reports.File(f.ctx, first.ID, entity.ReportTargetReview, review.ID, "still there?")
	requireAppError(t, err, http.StatusNotFound, "Review not found")
}

func TestFileReportOnRemovedTeacherReview(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, entity.RoleStudent, 0)
	reporter := f.user(t, entity.RoleStudent, 0)
	staff := f.user(t, entity.RoleStaff, 0)
	course := f.course(t, "BIO1")

	review, err := f.teacherRevs.CreateTeacherReview(f.ctx, author.ID, CreateTeacherReviewInput{
		CourseID: course.ID, TeacherName: "Dr. Who", Rating: 3, Text: "ok",
	})
	require.NoError(t, err)

	_, err = f.moderation.RemoveTeacherReview(f.ctx, review.ID, staff.ID, nil)
	require.NoError(t, err)

	_, err = f.reports.File(f.ctx, reporter.ID, entity.ReportTargetTeacherReview, review.ID, "")
	requireAppError(t, err, http.StatusNotFound, "Teacher review not found")
}

func TestUpdateReportStatus(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, entity.RoleStudent, 0)
	reporter := f.user(t, entity.RoleStudent, 0)
	admin := f.user(t, entity.RoleAdmin, 0)
	review := f.review(t, author, f.course(t, "BIO1"))

	report, err := f.reports.File(f.ctx, reporter.ID, entity.ReportTargetReview, review.ID, "spam")
	require.NoError(t, err)

	_, err = f.reports.UpdateStatus(f.ctx, report.ID, admin.ID, entity.ReportPending)
	requireAppError(t, err, http.StatusBadRequest, "status must be one of: RESOLVED REJECTED")

	result, err := f.reports.UpdateStatus(f.ctx, report.ID, admin.ID, entity.ReportRejected)
	require.NoError(t, err)
	assert.Equal(t, entity.ReportRejected, result.Status)

	_, err = f.reports.UpdateStatus(f.ctx, report.ID, admin.ID, entity.ReportResolved)
	requireAppError(t, err, http.StatusBadRequest, "Report cannot be updated")

	_, err = f.reports.UpdateStatus(f.ctx, 999, admin.ID, entity.ReportResolved)
	requireAppError(t, err, http.StatusNotFound, "Report not found")

	logs, err := f.store.AuditLogs().ListByEntity(f.ctx, entity.EntityReport, report.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditReportRejected, logs[0].Action)

	// rejecting the report leaves the review under review for moderators
	stored, err := f.store.Reviews().GetByID(f.ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReviewUnderReview, stored.Status)
}
