package usecase

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studymarket/internal/domain/entity"
	"studymarket/pkg/utils"
)

func TestWithdrawalRequestDebitsWallet(t *testing.T) {
	f := newFixture(t)
	seller := f.user(t, entity.RoleStudent, 500)

	_, err := f.withdrawals.Request(f.ctx, seller.ID, 501)
	requireAppError(t, err, http.StatusBadRequest, "Insufficient wallet balance")
	assert.EqualValues(t, 500, f.balance(t, seller.ID))

	w, err := f.withdrawals.Request(f.ctx, seller.ID, 500)
	require.NoError(t, err)
	assert.Equal(t, entity.WithdrawalPending, w.Status)
	assert.EqualValues(t, 0, f.balance(t, seller.ID))

	_, err = f.withdrawals.Request(f.ctx, seller.ID, 1)
	requireAppError(t, err, http.StatusBadRequest, "Insufficient wallet balance")

	mine, err := f.withdrawals.ListMine(f.ctx, seller.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, w.ID, mine[0].ID)
}

func TestWithdrawalRequestRejectsNonPositiveAmounts(t *testing.T) {
	f := newFixture(t)
	seller := f.user(t, entity.RoleStudent, 500)

	for _, amount := range []int64{0, -10} {
		_, err := f.withdrawals.Request(f.ctx, seller.ID, amount)
		requireAppError(t, err, http.StatusBadRequest, "amountCents must be greater than 0")
	}
	assert.EqualValues(t, 500, f.balance(t, seller.ID))
}

func TestWithdrawalRejectRefunds(t *testing.T) {
	f := newFixture(t)
	seller := f.user(t, entity.RoleStudent, 800)
	admin := f.user(t, entity.RoleAdmin, 0)

	w, err := f.withdrawals.Request(f.ctx, seller.ID, 300)
	require.NoError(t, err)
	assert.EqualValues(t, 500, f.balance(t, seller.ID))

	rejected, err := f.withdrawals.Reject(f.ctx, w.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.WithdrawalRejected, rejected.Status)
	require.NotNil(t, rejected.ReviewedByID)
	assert.Equal(t, admin.ID, *rejected.ReviewedByID)
	assert.EqualValues(t, 800, f.balance(t, seller.ID))

	_, err = f.withdrawals.Reject(f.ctx, w.ID, admin.ID)
	requireAppError(t, err, http.StatusBadRequest, "Withdrawal cannot be rejected")
	assert.EqualValues(t, 800, f.balance(t, seller.ID))
}

func TestWithdrawalApproveOnlyOnce(t *testing.T) {
	f := newFixture(t)
	seller := f.user(t, entity.RoleStudent, 100)
	admin := f.user(t, entity.RoleAdmin, 0)

	w, err := f.withdrawals.Request(f.ctx, seller.ID, 100)
	require.NoError(t, err)

	approved, err := f.withdrawals.Approve(f.ctx, w.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.WithdrawalApproved, approved.Status)

	_, err = f.withdrawals.Approve(f.ctx, w.ID, admin.ID)
	requireAppError(t, err, http.StatusBadRequest, "Withdrawal cannot be approved")
	_, err = f.withdrawals.Reject(f.ctx, w.ID, admin.ID)
	requireAppError(t, err, http.StatusBadRequest, "Withdrawal cannot be rejected")
	assert.EqualValues(t, 0, f.balance(t, seller.ID))

	pending, err := f.withdrawals.List(f.ctx, entity.WithdrawalPending, utils.NewPaginationParams(1, 10))
	require.NoError(t, err)
	assert.Empty(t, pending)
}
