package usecase

import (
	"context"
	"time"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
	"studymarket/pkg/errors"
	"studymarket/pkg/utils"
)

type LeaseListingUseCase struct {
	leaseRepo    repository.LeaseListingRepository
	interestRepo repository.InterestRequestRepository
	approvalRepo repository.ApprovalRepository
	tx           *Transactor
}

func NewLeaseListingUseCase(
	leaseRepo repository.LeaseListingRepository,
	interestRepo repository.InterestRequestRepository,
	approvalRepo repository.ApprovalRepository,
	tx *Transactor,
) *LeaseListingUseCase {
	return &LeaseListingUseCase{
		leaseRepo:    leaseRepo,
		interestRepo: interestRepo,
		approvalRepo: approvalRepo,
		tx:           tx,
	}
}

type CreateLeaseListingInput struct {
	Title        string
	Description  *string
	LineID       *string
	Location     string
	RentCents    int64
	DepositCents int64
	StartDate    string
	EndDate      string
}

func (uc *LeaseListingUseCase) Create(ctx context.Context, ownerID int64, input CreateLeaseListingInput) (*entity.LeaseListing, error) {
	id, err := uc.tx.NextID(ctx, repository.SeqLeaseListings)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	listing := &entity.LeaseListing{
		ID:           id,
		OwnerID:      ownerID,
		Title:        input.Title,
		Description:  input.Description,
		LineID:       input.LineID,
		Location:     input.Location,
		RentCents:    input.RentCents,
		DepositCents: input.DepositCents,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Status:       entity.LeaseListingPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.leaseRepo.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (uc *LeaseListingUseCase) ListApproved(ctx context.Context, page utils.PaginationParams) ([]entity.LeaseListing, error) {
	return uc.leaseRepo.ListByStatus(ctx, entity.LeaseListingApproved, page.Newest())
}

func (uc *LeaseListingUseCase) ListMine(ctx context.Context, ownerID int64) ([]entity.LeaseListing, error) {
	return uc.leaseRepo.ListByOwner(ctx, ownerID)
}

func (uc *LeaseListingUseCase) Get(ctx context.Context, id int64) (*entity.LeaseListing, error) {
	listing, err := uc.leaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Lease listing")
	}
	return listing, nil
}

func (uc *LeaseListingUseCase) ownedListing(ctx context.Context, id, userID int64) (*entity.LeaseListing, error) {
	listing, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != userID {
		return nil, errors.Forbidden("Forbidden", nil)
	}
	return listing, nil
}

func (uc *LeaseListingUseCase) Update(ctx context.Context, id, userID int64, update entity.LeaseListingUpdate) (*entity.LeaseListing, error) {
	if _, err := uc.ownedListing(ctx, id, userID); err != nil {
		return nil, err
	}
	listing, err := uc.leaseRepo.Update(ctx, id, update)
	if err != nil {
		return nil, lookupError(err, "Lease listing")
	}
	return listing, nil
}

// Delete removes the listing with its interest requests and approval record.
func (uc *LeaseListingUseCase) Delete(ctx context.Context, id, userID int64) (*entity.LeaseListing, error) {
	var deleted *entity.LeaseListing
	err := uc.tx.Run(ctx, "lease_listing.delete", func(ctx context.Context) error {
		if _, err := uc.ownedListing(ctx, id, userID); err != nil {
			return err
		}
		if err := uc.interestRepo.DeleteByListing(ctx, id); err != nil {
			return err
		}
		if err := uc.approvalRepo.DeleteByEntity(ctx, entity.EntityLeaseListing, id); err != nil {
			return err
		}

		var err error
		deleted, err = uc.leaseRepo.Delete(ctx, id)
		return lookupError(err, "Lease listing")
	})
	return deleted, err
}

func (uc *LeaseListingUseCase) RegisterInterest(ctx context.Context, id, studentID int64) (*entity.InterestRequest, error) {
	listing, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.Status != entity.LeaseListingApproved {
		return nil, errors.BadRequest("Lease listing is not available", nil)
	}
	if listing.OwnerID == studentID {
		return nil, errors.BadRequest("Cannot register interest in your own listing", nil)
	}

	requestID, err := uc.tx.NextID(ctx, repository.SeqInterestRequests)
	if err != nil {
		return nil, err
	}
	request := &entity.InterestRequest{
		ID:             requestID,
		LeaseListingID: id,
		StudentID:      studentID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := uc.interestRepo.Create(ctx, request); err != nil {
		if isDuplicate(err) {
			return nil, errors.BadRequest("Interest already submitted", nil)
		}
		return nil, err
	}
	return request, nil
}

// Transfer marks an approved listing as handed over. Only its owner or an
// admin may do so.
func (uc *LeaseListingUseCase) Transfer(ctx context.Context, id, actorID int64, actorRole entity.Role) (*entity.LeaseListing, error) {
	const invalid = "Lease listing cannot be transferred"

	var result *entity.LeaseListing
	err := uc.tx.Run(ctx, "lease_listing.transfer", func(ctx context.Context) error {
		listing, err := uc.leaseRepo.GetByID(ctx, id)
		if err != nil {
			return lookupError(err, "Lease listing")
		}
		if listing.OwnerID != actorID && actorRole != entity.RoleAdmin {
			return errors.Forbidden("Forbidden", nil)
		}
		if !listing.Status.CanTransition(entity.LeaseListingTransferred) {
			return errors.InvalidState(invalid)
		}

		updated, err := uc.leaseRepo.TransitionStatus(ctx, id, listing.Status, entity.LeaseListingTransferred)
		if err != nil {
			return transitionError(err, "Lease listing", invalid)
		}
		if err := normalized(updated); err != nil {
			return err
		}
		if err := uc.tx.Audit(ctx, actorID, entity.AuditLeaseTransferred, entity.EntityLeaseListing, id, nil); err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}
