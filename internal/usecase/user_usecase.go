package usecase

import (
	"context"
	"strings"
	"time"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
	"studymarket/internal/infrastructure/ratelimit"
	"studymarket/pkg/errors"
)

const defaultPasswordCooldown = time.Minute

type UserUseCase struct {
	userRepo    repository.UserRepository
	paymentRepo repository.PaymentRepository
	hasher      PasswordHasher
	cooldowns   ratelimit.CooldownStore
	cooldown    time.Duration
	now         func() time.Time
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	paymentRepo repository.PaymentRepository,
	hasher PasswordHasher,
	cooldowns ratelimit.CooldownStore,
	cooldown time.Duration,
) *UserUseCase {
	if cooldown <= 0 {
		cooldown = defaultPasswordCooldown
	}
	return &UserUseCase{
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		hasher:      hasher,
		cooldowns:   cooldowns,
		cooldown:    cooldown,
		now:         time.Now,
	}
}

type UpdateProfileInput struct {
	Name   *string
	LineID *string
}

type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

func (uc *UserUseCase) GetMe(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "User")
	}
	return user, nil
}

func (uc *UserUseCase) UpdateMe(ctx context.Context, userID int64, input UpdateProfileInput) (*entity.User, error) {
	update := entity.UserUpdate{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.BadRequest("name must not be empty", nil)
		}
		update.Name = &name
	}
	if input.LineID != nil {
		lineID := strings.TrimSpace(*input.LineID)
		if lineID == "" {
			return nil, errors.BadRequest("lineId must not be empty", nil)
		}
		update.LineID = &lineID
	}

	user, err := uc.userRepo.Update(ctx, userID, update)
	if err != nil {
		return nil, lookupError(err, "User")
	}
	return user, nil
}

// ChangePassword is throttled per user; the cooldown starts only after a
// successful change.
func (uc *UserUseCase) ChangePassword(ctx context.Context, userID int64, input ChangePasswordInput) error {
	now := uc.now()
	remaining, err := ratelimit.CooldownRemaining(ctx, uc.cooldowns, userID, uc.cooldown, now)
	if err != nil {
		return errors.Internal("Failed to read password cooldown", err)
	}
	if remaining > 0 {
		return errors.TooManyRequests("Please wait 1 minute before changing password again")
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return lookupError(err, "User")
	}

	ok, err := uc.hasher.Compare(user.PasswordHash, input.CurrentPassword)
	if err != nil {
		return errors.Internal("Failed to verify password", err)
	}
	if !ok {
		return errors.BadRequest("Current password is incorrect", nil)
	}

	hash, err := uc.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Internal("Failed to hash password", err)
	}
	if err := uc.userRepo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return lookupError(err, "User")
	}

	if err := uc.cooldowns.Mark(ctx, userID, now, uc.cooldown); err != nil {
		return errors.Internal("Failed to record password cooldown", err)
	}
	return nil
}

func (uc *UserUseCase) WalletSummary(ctx context.Context, userID int64) (*entity.WalletSummary, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "User")
	}

	earned, err := uc.paymentRepo.SumBySeller(ctx, userID, entity.PaymentReleased)
	if err != nil {
		return nil, err
	}
	pending, err := uc.paymentRepo.SumBySeller(ctx, userID, entity.PaymentApproved)
	if err != nil {
		return nil, err
	}

	return &entity.WalletSummary{
		WalletBalance: user.WalletBalance,
		TotalEarned:   earned,
		PendingPayout: pending,
	}, nil
}
