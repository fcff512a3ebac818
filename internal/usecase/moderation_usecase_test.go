package usecase

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studymarket/internal/domain/entity"
	"studymarket/pkg/utils"
)

func TestDecideStudySheetRequiresReasonOnReject(t *testing.T) {
	f := newFixture(t)
	seller := f.user(t, entity.RoleStudent, 0)
	staff := f.user(t, entity.RoleStaff, 0)

	sheet, err := f.sheets.Create(f.ctx, seller.ID, CreateStudySheetInput{
		Title: "Notes", FileURL: "https://files.example.com/x.pdf", PriceCents: 100, CourseCode: "ECON1",
	})
	require.NoError(t, err)

	_, err = f.moderation.DecideStudySheet(f.ctx, DecisionInput{EntityID: sheet.ID, ActorID: staff.ID, Decision: entity.DecisionRejected})
	requireAppError(t, err, http.StatusBadRequest, "reason is required")

	blank := "   "
	_, err = f.moderation.DecideStudySheet(f.ctx, DecisionInput{EntityID: sheet.ID, ActorID: staff.ID, Decision: entity.DecisionRejected, Reason: &blank})
	requireAppError(t, err, http.StatusBadRequest, "reason is required")

	reason := "blurry scan"
	rejected, err := f.moderation.DecideStudySheet(f.ctx, DecisionInput{EntityID: sheet.ID, ActorID: staff.ID, Decision: entity.DecisionRejected, Reason: &reason})
	require.NoError(t, err)
	assert.Equal(t, entity.StudySheetRejected, rejected.Status)

	approval, err := f.store.Approvals().GetByEntity(f.ctx, entity.EntityStudySheet, sheet.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DecisionRejected, approval.Decision)
	require.NotNil(t, approval.Reason)
	assert.Equal(t, reason, *approval.Reason)

	_, err = f.moderation.DecideStudySheet(f.ctx, DecisionInput{EntityID: sheet.ID, ActorID: staff.ID, Decision: entity.DecisionApproved})
	requireAppError(t, err, http.StatusBadRequest, "Study sheet cannot be approved")
}

func TestDecideStudySheetOnlyFromPending(t *testing.T) {
	f := newFixture(t)
	seller := f.user(t, entity.RoleStudent, 0)
	staff := f.user(t, entity.RoleStaff, 0)
	sheet := f.approvedSheet(t, seller, staff, 100)

	_, err := f.moderation.DecideStudySheet(f.ctx, DecisionInput{EntityID: sheet.ID, ActorID: staff.ID, Decision: entity.DecisionApproved})
	requireAppError(t, err, http.StatusBadRequest, "Study sheet cannot be approved")

	_, err = f.moderation.DecideStudySheet(f.ctx, DecisionInput{EntityID: 555, ActorID: staff.ID, Decision: entity.DecisionApproved})
	requireAppError(t, err, http.StatusNotFound, "Study sheet not found")

	queue, err := f.moderation.ListStudySheets(f.ctx, entity.StudySheetPending, utils.NewPaginationParams(1, 10))
	require.NoError(t, err)
	assert.Empty(t, queue)
}

func TestModerateReviews(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, entity.RoleStudent, 0)
	reporter := f.user(t, entity.RoleStudent, 0)
	staff := f.user(t, entity.RoleStaff, 0)
	review := f.review(t, author, f.course(t, "ECON1"))

	_, err := f.reports.File(f.ctx, reporter.ID, entity.ReportTargetReview, review.ID, "spam")
	require.NoError(t, err)

	queue, err := f.moderation.ListReviews(f.ctx, entity.ReviewUnderReview, utils.NewPaginationParams(1, 10))
	require.NoError(t, err)
	require.Len(t, queue, 1)

	restored, err := f.moderation.ApproveReview(f.ctx, review.ID, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReviewVisible, restored.Status)

	removed, err := f.moderation.RemoveReview(f.ctx, review.ID, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReviewRemoved, removed.Status)

	_, err = f.moderation.ApproveReview(f.ctx, review.ID, staff.ID)
	requireAppError(t, err, http.StatusBadRequest, "Review cannot be approved")

	visible, err := f.courses.ListReviews(f.ctx, review.CourseID)
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestDecideLeaseListing(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, entity.RoleStudent, 0)
	staff := f.user(t, entity.RoleStaff, 0)
	listing := f.leaseListing(t, owner)

	approved, err := f.moderation.DecideLeaseListing(f.ctx, DecisionInput{EntityID: listing.ID, ActorID: staff.ID, Decision: entity.DecisionApproved})
	require.NoError(t, err)
	assert.Equal(t, entity.LeaseListingApproved, approved.Status)

	reason := "too late"
	_, err = f.moderation.DecideLeaseListing(f.ctx, DecisionInput{EntityID: listing.ID, ActorID: staff.ID, Decision: entity.DecisionRejected, Reason: &reason})
	requireAppError(t, err, http.StatusBadRequest, "Lease listing cannot be rejected")
}
