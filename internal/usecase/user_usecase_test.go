package usecase

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studymarket/internal/domain/entity"
)

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, entity.RoleStudent, 0)

	err := f.users.ChangePassword(f.ctx, u.ID, ChangePasswordInput{CurrentPassword: "wrong", NewPassword: "next"})
	requireAppError(t, err, http.StatusBadRequest, "Current password is incorrect")

	// a failed attempt does not start the cooldown
	require.NoError(t, f.users.ChangePassword(f.ctx, u.ID, ChangePasswordInput{CurrentPassword: "secret", NewPassword: "next"}))

	err = f.users.ChangePassword(f.ctx, u.ID, ChangePasswordInput{CurrentPassword: "next", NewPassword: "third"})
	requireAppError(t, err, http.StatusTooManyRequests, "Please wait 1 minute before changing password again")

	later := time.Now().Add(61 * time.Second)
	f.users.now = func() time.Time { return later }
	require.NoError(t, f.users.ChangePassword(f.ctx, u.ID, ChangePasswordInput{CurrentPassword: "next", NewPassword: "third"}))

	stored, err := f.store.Users().GetByID(f.ctx, u.ID)
	require.NoError(t, err)
	ok, err := f.hasher.Compare(stored.PasswordHash, "third")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateMe(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, entity.RoleStudent, 0)

	name := "  Alice  "
	lineID := "alice.line"
	updated, err := f.users.UpdateMe(f.ctx, u.ID, UpdateProfileInput{Name: &name, LineID: &lineID})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	require.NotNil(t, updated.LineID)
	assert.Equal(t, lineID, *updated.LineID)

	blank := " "
	_, err = f.users.UpdateMe(f.ctx, u.ID, UpdateProfileInput{Name: &blank})
	requireAppError(t, err, http.StatusBadRequest, "name must not be empty")

	_, err = f.users.GetMe(f.ctx, 999)
	requireAppError(t, err, http.StatusNotFound, "User not found")
}

func TestWalletSummary(t *testing.T) {
	f := newFixture(t)
	seller := f.user(t, entity.RoleStudent, 0)
	staff := f.user(t, entity.RoleStaff, 0)
	admin := f.user(t, entity.RoleAdmin, 0)
	sheet := f.approvedSheet(t, seller, staff, 700)

	var paymentIDs []int64
	for i := 0; i < 3; i++ {
		receipt, err := f.sheets.Purchase(f.ctx, sheet.ID, f.user(t, entity.RoleStudent, 0).ID)
		require.NoError(t, err)
		paymentIDs = append(paymentIDs, receipt.ID)
	}

	// one released, one confirmed, one still pending
	_, err := f.payments.Confirm(f.ctx, paymentIDs[0], admin.ID)
	require.NoError(t, err)
	_, err = f.payments.Release(f.ctx, paymentIDs[0], admin.ID)
	require.NoError(t, err)
	_, err = f.payments.Confirm(f.ctx, paymentIDs[1], admin.ID)
	require.NoError(t, err)

	_, err = f.withdrawals.Request(f.ctx, seller.ID, 200)
	require.NoError(t, err)

	summary, err := f.users.WalletSummary(f.ctx, seller.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 500, summary.WalletBalance)
	assert.EqualValues(t, 700, summary.TotalEarned)
	assert.EqualValues(t, 700, summary.PendingPayout)
}
