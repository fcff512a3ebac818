package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	t.Run("study sheet", func(t *testing.T) {
		assert.True(t, StudySheetPending.CanTransition(StudySheetApproved))
		assert.True(t, StudySheetPending.CanTransition(StudySheetRejected))
		assert.False(t, StudySheetApproved.CanTransition(StudySheetRejected))
		assert.False(t, StudySheetRejected.CanTransition(StudySheetApproved))
	})

	t.Run("payment", func(t *testing.T) {
		assert.True(t, PaymentPending.CanTransition(PaymentApproved))
		assert.True(t, PaymentApproved.CanTransition(PaymentReleased))
		assert.False(t, PaymentPending.CanTransition(PaymentReleased))
		assert.False(t, PaymentReleased.CanTransition(PaymentApproved))
		assert.False(t, PaymentApproved.CanTransition(PaymentApproved))
	})

	t.Run("withdrawal", func(t *testing.T) {
		assert.True(t, WithdrawalPending.CanTransition(WithdrawalApproved))
		assert.True(t, WithdrawalPending.CanTransition(WithdrawalRejected))
		assert.False(t, WithdrawalApproved.CanTransition(WithdrawalRejected))
	})

	t.Run("lease listing", func(t *testing.T) {
		assert.True(t, LeaseListingPending.CanTransition(LeaseListingApproved))
		assert.True(t, LeaseListingApproved.CanTransition(LeaseListingTransferred))
		assert.False(t, LeaseListingPending.CanTransition(LeaseListingTransferred))
		assert.False(t, LeaseListingTransferred.CanTransition(LeaseListingApproved))
	})

	t.Run("review", func(t *testing.T) {
		assert.True(t, ReviewVisible.CanTransition(ReviewVisible))
		assert.True(t, ReviewVisible.CanTransition(ReviewUnderReview))
		assert.True(t, ReviewUnderReview.CanTransition(ReviewRemoved))
		assert.False(t, ReviewUnderReview.CanTransition(ReviewUnderReview))
		assert.False(t, ReviewRemoved.CanTransition(ReviewVisible))
	})

	t.Run("report", func(t *testing.T) {
		assert.True(t, ReportPending.CanTransition(ReportResolved))
		assert.True(t, ReportPending.CanTransition(ReportRejected))
		assert.False(t, ReportResolved.CanTransition(ReportRejected))
	})
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, RoleStaff.Valid())
	assert.False(t, Role("student").Valid())
	assert.True(t, DecisionRejected.Valid())
	assert.False(t, Decision("MAYBE").Valid())
	assert.True(t, ReportTargetTeacherReview.Valid())
	assert.False(t, ReportTargetType("COURSE").Valid())
	assert.False(t, PaymentStatus("").Valid())
}

func TestTeacherNames(t *testing.T) {
	assert.Equal(t, "dr. smith", NormalizeTeacherName("  Dr.   Smith "))
	assert.Equal(t, "Dr. Smith", CanonicalTeacherName("  Dr.\tSmith\n"))
	assert.Equal(t, "", NormalizeTeacherName("   "))
}

func TestValidateReportsField(t *testing.T) {
	now := time.Now()
	u := &User{ID: 1, Email: "a@example.com", Role: RoleStudent, CreatedAt: now}
	require.NoError(t, u.Validate())

	u.WalletBalance = -1
	err := u.Validate()
	require.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "user.walletBalance")

	var missing *Payment
	assert.ErrorIs(t, missing.Validate(), ErrMalformed)

	receipt := &PurchaseReceipt{ID: 3, ReferenceCode: "", Amount: 10}
	err = receipt.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reference_code")

	listing := &LeaseListing{ID: 1, OwnerID: 2, Title: "Room", Location: "Gate", StartDate: "2026-01-01", Status: LeaseListingPending, CreatedAt: now}
	err = listing.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leaseListing.dates")
}
