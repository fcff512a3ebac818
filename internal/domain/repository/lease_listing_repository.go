package repository

import (
	"context"

	"studymarket/internal/domain/entity"
	"studymarket/pkg/utils"
)

type LeaseListingRepository interface {
	Create(ctx context.Context, listing *entity.LeaseListing) error
	GetByID(ctx context.Context, id int64) (*entity.LeaseListing, error)
	ListByStatus(ctx context.Context, status entity.LeaseListingStatus, page utils.PaginationParams) ([]entity.LeaseListing, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]entity.LeaseListing, error)
	Update(ctx context.Context, id int64, update entity.LeaseListingUpdate) (*entity.LeaseListing, error)
	Delete(ctx context.Context, id int64) (*entity.LeaseListing, error)
	TransitionStatus(ctx context.Context, id int64, from, to entity.LeaseListingStatus) (*entity.LeaseListing, error)
}

type InterestRequestRepository interface {
	Create(ctx context.Context, request *entity.InterestRequest) error
	DeleteByListing(ctx context.Context, leaseListingID int64) error
}
