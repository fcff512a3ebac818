package repository

import (
	"context"

	"studymarket/internal/domain/entity"
	"studymarket/pkg/utils"
)

type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal *entity.Withdrawal) error
	GetByID(ctx context.Context, id int64) (*entity.Withdrawal, error)
	ListByStatus(ctx context.Context, status entity.WithdrawalStatus, page utils.PaginationParams) ([]entity.Withdrawal, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]entity.Withdrawal, error)
	TransitionStatus(ctx context.Context, id int64, from, to entity.WithdrawalStatus, actorID int64) (*entity.Withdrawal, error)
}
