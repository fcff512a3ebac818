package usecase

import (
	"context"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
	"studymarket/pkg/errors"
	"studymarket/pkg/logger"
	"studymarket/pkg/utils"
)

// PaymentUseCase moves escrowed payments from PENDING through APPROVED to
// RELEASED, crediting the seller's wallet on release.
type PaymentUseCase struct {
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
	tx          *Transactor
}

func NewPaymentUseCase(
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	tx *Transactor,
) *PaymentUseCase {
	return &PaymentUseCase{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		tx:          tx,
	}
}

func (uc *PaymentUseCase) List(ctx context.Context, status entity.PaymentStatus, page utils.PaginationParams) ([]entity.Payment, error) {
	return uc.paymentRepo.ListByStatus(ctx, status, page)
}

func (uc *PaymentUseCase) Confirm(ctx context.Context, paymentID, actorID int64) (*entity.Payment, error) {
	const invalid = "Payment cannot be confirmed"

	var result *entity.Payment
	err := uc.tx.Run(ctx, "payment.confirm", func(ctx context.Context) error {
		payment, err := uc.paymentRepo.GetByID(ctx, paymentID)
		if err != nil {
			return lookupError(err, "Payment")
		}
		if !payment.Status.CanTransition(entity.PaymentApproved) {
			return errors.InvalidState(invalid)
		}

		updated, err := uc.paymentRepo.TransitionStatus(ctx, paymentID, entity.PaymentPending, entity.PaymentApproved, actorID)
		if err != nil {
			return transitionError(err, "Payment", invalid)
		}
		if err := normalized(updated); err != nil {
			return err
		}
		if err := uc.tx.Audit(ctx, actorID, entity.AuditPaymentConfirmed, entity.EntityPayment, paymentID, amountOf(updated.Amount)); err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}

// Release pays the seller out of escrow. The status change and the wallet
// credit commit together or not at all.
func (uc *PaymentUseCase) Release(ctx context.Context, paymentID, actorID int64) (*entity.Payment, error) {
	const invalid = "Payment cannot be released"

	var result *entity.Payment
	err := uc.tx.Run(ctx, "payment.release", func(ctx context.Context) error {
		payment, err := uc.paymentRepo.GetByID(ctx, paymentID)
		if err != nil {
			return lookupError(err, "Payment")
		}
		if !payment.Status.CanTransition(entity.PaymentReleased) {
			return errors.InvalidState(invalid)
		}
		if err := normalized(payment); err != nil {
			return err
		}

		updated, err := uc.paymentRepo.TransitionStatus(ctx, paymentID, entity.PaymentApproved, entity.PaymentReleased, actorID)
		if err != nil {
			return transitionError(err, "Payment", invalid)
		}

		if _, err := uc.userRepo.AdjustWalletBalance(ctx, payment.SellerID, payment.Amount); err != nil {
			return lookupError(err, "Seller")
		}
		if err := uc.tx.Audit(ctx, actorID, entity.AuditPaymentReleased, entity.EntityPayment, paymentID, amountOf(updated.Amount)); err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("payment %d released to seller %d by %d", paymentID, result.SellerID, actorID)
	return result, nil
}
