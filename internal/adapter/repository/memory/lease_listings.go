package memory

import (
	"context"
	"time"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
	"studymarket/pkg/utils"
)

type leaseListingRepo struct{ s *Store }

func (r *leaseListingRepo) Create(ctx context.Context, listing *entity.LeaseListing) error {
	defer r.s.acquire(ctx)()
	return insert(r.s.data.leaseListings, listing.ID, *listing)
}

func (r *leaseListingRepo) GetByID(ctx context.Context, id int64) (*entity.LeaseListing, error) {
	defer r.s.acquire(ctx)()
	return get(r.s.data.leaseListings, id)
}

func (r *leaseListingRepo) ListByStatus(ctx context.Context, status entity.LeaseListingStatus, p utils.PaginationParams) ([]entity.LeaseListing, error) {
	defer r.s.acquire(ctx)()
	items := collect(r.s.data.leaseListings,
		func(l entity.LeaseListing) bool { return l.Status == status },
		func(a, b entity.LeaseListing) bool { return a.ID < b.ID })
	return page(items, p), nil
}

func (r *leaseListingRepo) ListByOwner(ctx context.Context, ownerID int64) ([]entity.LeaseListing, error) {
	defer r.s.acquire(ctx)()
	return collect(r.s.data.leaseListings,
		func(l entity.LeaseListing) bool { return l.OwnerID == ownerID },
		func(a, b entity.LeaseListing) bool { return a.ID > b.ID }), nil
}

func (r *leaseListingRepo) Update(ctx context.Context, id int64, update entity.LeaseListingUpdate) (*entity.LeaseListing, error) {
	defer r.s.acquire(ctx)()
	return compareAndSwap(r.s.data.leaseListings, id, func(entity.LeaseListing) bool { return true }, func(l *entity.LeaseListing) {
		if update.Title != nil {
			l.Title = *update.Title
		}
		if update.Description != nil {
			l.Description = update.Description
		}
		if update.ClearLineID {
			l.LineID = nil
		} else if update.LineID != nil {
			l.LineID = update.LineID
		}
		if update.Location != nil {
			l.Location = *update.Location
		}
		if update.RentCents != nil {
			l.RentCents = *update.RentCents
		}
		if update.DepositCents != nil {
			l.DepositCents = *update.DepositCents
		}
		if update.StartDate != nil {
			l.StartDate = *update.StartDate
		}
		if update.EndDate != nil {
			l.EndDate = *update.EndDate
		}
		l.UpdatedAt = time.Now().UTC()
	})
}

func (r *leaseListingRepo) Delete(ctx context.Context, id int64) (*entity.LeaseListing, error) {
	defer r.s.acquire(ctx)()
	return remove(r.s.data.leaseListings, id)
}

func (r *leaseListingRepo) TransitionStatus(ctx context.Context, id int64, from, to entity.LeaseListingStatus) (*entity.LeaseListing, error) {
	defer r.s.acquire(ctx)()
	return compareAndSwap(r.s.data.leaseListings, id,
		func(l entity.LeaseListing) bool { return l.Status == from },
		func(l *entity.LeaseListing) {
			l.Status = to
			l.UpdatedAt = time.Now().UTC()
		})
}

type interestRequestRepo struct{ s *Store }

func (r *interestRequestRepo) Create(ctx context.Context, request *entity.InterestRequest) error {
	defer r.s.acquire(ctx)()
	if exists(r.s.data.interestRequests, func(ir entity.InterestRequest) bool {
		return ir.LeaseListingID == request.LeaseListingID && ir.StudentID == request.StudentID
	}) {
		return repository.ErrDuplicate
	}
	return insert(r.s.data.interestRequests, request.ID, *request)
}

func (r *interestRequestRepo) DeleteByListing(ctx context.Context, leaseListingID int64) error {
	defer r.s.acquire(ctx)()
	removeWhere(r.s.data.interestRequests, func(ir entity.InterestRequest) bool {
		return ir.LeaseListingID == leaseListingID
	})
	return nil
}
