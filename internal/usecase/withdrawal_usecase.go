package usecase

import (
	"context"
	"time"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
	"studymarket/pkg/errors"
	"studymarket/pkg/utils"
)

// WithdrawalUseCase debits the seller's wallet when a payout is requested and
// refunds it if an admin rejects the request.
type WithdrawalUseCase struct {
	withdrawalRepo repository.WithdrawalRepository
	userRepo       repository.UserRepository
	tx             *Transactor
}

func NewWithdrawalUseCase(
	withdrawalRepo repository.WithdrawalRepository,
	userRepo repository.UserRepository,
	tx *Transactor,
) *WithdrawalUseCase {
	return &WithdrawalUseCase{
		withdrawalRepo: withdrawalRepo,
		userRepo:       userRepo,
		tx:             tx,
	}
}

func (uc *WithdrawalUseCase) Request(ctx context.Context, sellerID, amount int64) (*entity.Withdrawal, error) {
	if amount <= 0 {
		return nil, errors.BadRequest("amountCents must be greater than 0", nil)
	}

	var result *entity.Withdrawal
	err := uc.tx.Run(ctx, "withdrawal.request", func(ctx context.Context) error {
		user, err := uc.userRepo.GetByID(ctx, sellerID)
		if err != nil {
			return lookupError(err, "User")
		}
		if user.WalletBalance < amount {
			return errors.BadRequest("Insufficient wallet balance", nil)
		}

		// The repository re-checks the balance in the same write.
		if _, err := uc.userRepo.AdjustWalletBalance(ctx, sellerID, -amount); err != nil {
			return transitionError(err, "User", "Insufficient wallet balance")
		}

		id, err := uc.tx.NextID(ctx, repository.SeqWithdrawals)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		withdrawal := &entity.Withdrawal{
			ID:        id,
			SellerID:  sellerID,
			Amount:    amount,
			Status:    entity.WithdrawalPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := normalized(withdrawal); err != nil {
			return err
		}
		if err := uc.withdrawalRepo.Create(ctx, withdrawal); err != nil {
			return err
		}
		if err := uc.tx.Audit(ctx, sellerID, entity.AuditWithdrawalRequested, entity.EntityWithdrawal, id, amountOf(amount)); err != nil {
			return err
		}
		result = withdrawal
		return nil
	})
	return result, err
}

func (uc *WithdrawalUseCase) List(ctx context.Context, status entity.WithdrawalStatus, page utils.PaginationParams) ([]entity.Withdrawal, error) {
	return uc.withdrawalRepo.ListByStatus(ctx, status, page)
}

func (uc *WithdrawalUseCase) ListMine(ctx context.Context, sellerID int64) ([]entity.Withdrawal, error) {
	return uc.withdrawalRepo.ListBySeller(ctx, sellerID)
}

func (uc *WithdrawalUseCase) Approve(ctx context.Context, id, actorID int64) (*entity.Withdrawal, error) {
	const invalid = "Withdrawal cannot be approved"

	var result *entity.Withdrawal
	err := uc.tx.Run(ctx, "withdrawal.approve", func(ctx context.Context) error {
		withdrawal, err := uc.withdrawalRepo.GetByID(ctx, id)
		if err != nil {
			return lookupError(err, "Withdrawal")
		}
		if !withdrawal.Status.CanTransition(entity.WithdrawalApproved) {
			return errors.InvalidState(invalid)
		}

		updated, err := uc.withdrawalRepo.TransitionStatus(ctx, id, entity.WithdrawalPending, entity.WithdrawalApproved, actorID)
		if err != nil {
			return transitionError(err, "Withdrawal", invalid)
		}
		if err := normalized(updated); err != nil {
			return err
		}
		if err := uc.tx.Audit(ctx, actorID, entity.AuditWithdrawalApproved, entity.EntityWithdrawal, id, amountOf(updated.Amount)); err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}

// Reject returns the held amount to the seller's wallet.
func (uc *WithdrawalUseCase) Reject(ctx context.Context, id, actorID int64) (*entity.Withdrawal, error) {
	const invalid = "Withdrawal cannot be rejected"

	var result *entity.Withdrawal
	err := uc.tx.Run(ctx, "withdrawal.reject", func(ctx context.Context) error {
		withdrawal, err := uc.withdrawalRepo.GetByID(ctx, id)
		if err != nil {
			return lookupError(err, "Withdrawal")
		}
		if !withdrawal.Status.CanTransition(entity.WithdrawalRejected) {
			return errors.InvalidState(invalid)
		}

		updated, err := uc.withdrawalRepo.TransitionStatus(ctx, id, entity.WithdrawalPending, entity.WithdrawalRejected, actorID)
		if err != nil {
			return transitionError(err, "Withdrawal", invalid)
		}
		if err := normalized(updated); err != nil {
			return err
		}
		if _, err := uc.userRepo.AdjustWalletBalance(ctx, withdrawal.SellerID, withdrawal.Amount); err != nil {
			return lookupError(err, "User")
		}
		if err := uc.tx.Audit(ctx, actorID, entity.AuditWithdrawalRejected, entity.EntityWithdrawal, id, amountOf(updated.Amount)); err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}
