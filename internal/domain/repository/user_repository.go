package repository

import (
	"context"

	"studymarket/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, id int64, update entity.UserUpdate) (*entity.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	// AdjustWalletBalance adds delta to the balance atomically. A debit that
	// would take the balance below zero returns ErrConflict and changes nothing.
	AdjustWalletBalance(ctx context.Context, id int64, delta int64) (*entity.User, error)
}
