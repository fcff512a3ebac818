package memory

import (
	"context"
	"time"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
	"studymarket/pkg/utils"
)

type studySheetRepo struct{ s *Store }

func (r *studySheetRepo) Create(ctx context.Context, sheet *entity.StudySheet) error {
	defer r.s.acquire(ctx)()
	return insert(r.s.data.studySheets, sheet.ID, *sheet)
}

func (r *studySheetRepo) GetByID(ctx context.Context, id int64) (*entity.StudySheet, error) {
	defer r.s.acquire(ctx)()
	return get(r.s.data.studySheets, id)
}

func (r *studySheetRepo) ListByStatus(ctx context.Context, status entity.StudySheetStatus, courseCode string, p utils.PaginationParams) ([]entity.StudySheet, error) {
	defer r.s.acquire(ctx)()
	items := collect(r.s.data.studySheets,
		func(s entity.StudySheet) bool {
			return s.Status == status && (courseCode == "" || s.CourseCode == courseCode)
		},
		func(a, b entity.StudySheet) bool { return a.ID < b.ID })
	return page(items, p), nil
}

func (r *studySheetRepo) ListByOwner(ctx context.Context, ownerID int64) ([]entity.StudySheet, error) {
	defer r.s.acquire(ctx)()
	return collect(r.s.data.studySheets,
		func(s entity.StudySheet) bool { return s.OwnerID == ownerID },
		func(a, b entity.StudySheet) bool { return a.ID > b.ID }), nil
}

func (r *studySheetRepo) ListByIDs(ctx context.Context, ids []int64) ([]entity.StudySheet, error) {
	defer r.s.acquire(ctx)()
	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	return collect(r.s.data.studySheets,
		func(s entity.StudySheet) bool { _, ok := wanted[s.ID]; return ok },
		func(a, b entity.StudySheet) bool { return a.ID > b.ID }), nil
}

func (r *studySheetRepo) Update(ctx context.Context, id int64, update entity.StudySheetUpdate) (*entity.StudySheet, error) {
	defer r.s.acquire(ctx)()
	return compareAndSwap(r.s.data.studySheets, id, func(entity.StudySheet) bool { return true }, func(s *entity.StudySheet) {
		if update.Title != nil {
			s.Title = *update.Title
		}
		if update.Description != nil {
			s.Description = update.Description
		}
		if update.FileURL != nil {
			s.FileURL = *update.FileURL
		}
		if update.PriceCents != nil {
			s.PriceCents = *update.PriceCents
		}
		s.UpdatedAt = time.Now().UTC()
	})
}

func (r *studySheetRepo) Delete(ctx context.Context, id int64) (*entity.StudySheet, error) {
	defer r.s.acquire(ctx)()
	return remove(r.s.data.studySheets, id)
}

func (r *studySheetRepo) TransitionStatus(ctx context.Context, id int64, from, to entity.StudySheetStatus) (*entity.StudySheet, error) {
	defer r.s.acquire(ctx)()
	return compareAndSwap(r.s.data.studySheets, id,
		func(s entity.StudySheet) bool { return s.Status == from },
		func(s *entity.StudySheet) {
			s.Status = to
			s.UpdatedAt = time.Now().UTC()
		})
}

type purchaseRepo struct{ s *Store }

func (r *purchaseRepo) Create(ctx context.Context, purchase *entity.Purchase) error {
	defer r.s.acquire(ctx)()
	if exists(r.s.data.purchases, func(p entity.Purchase) bool {
		return p.StudySheetID == purchase.StudySheetID && p.BuyerID == purchase.BuyerID
	}) {
		return repository.ErrDuplicate
	}
	return insert(r.s.data.purchases, purchase.ID, *purchase)
}

func (r *purchaseRepo) GetByBuyerAndSheet(ctx context.Context, buyerID, studySheetID int64) (*entity.Purchase, error) {
	defer r.s.acquire(ctx)()
	return findOne(r.s.data.purchases, func(p entity.Purchase) bool {
		return p.BuyerID == buyerID && p.StudySheetID == studySheetID
	})
}

func (r *purchaseRepo) ListByBuyer(ctx context.Context, buyerID int64) ([]entity.Purchase, error) {
	defer r.s.acquire(ctx)()
	return collect(r.s.data.purchases,
		func(p entity.Purchase) bool { return p.BuyerID == buyerID },
		func(a, b entity.Purchase) bool { return a.ID > b.ID }), nil
}

func (r *purchaseRepo) CountBySheet(ctx context.Context, studySheetID int64) (int64, error) {
	defer r.s.acquire(ctx)()
	var n int64
	for _, p := range r.s.data.purchases {
		if p.StudySheetID == studySheetID {
			n++
		}
	}
	return n, nil
}

type paymentRepo struct{ s *Store }

func (r *paymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	defer r.s.acquire(ctx)()
	if exists(r.s.data.payments, func(p entity.Payment) bool {
		return p.PurchaseID == payment.PurchaseID || p.ReferenceCode == payment.ReferenceCode
	}) {
		return repository.ErrDuplicate
	}
	return insert(r.s.data.payments, payment.ID, *payment)
}

func (r *paymentRepo) GetByID(ctx context.Context, id int64) (*entity.Payment, error) {
	defer r.s.acquire(ctx)()
	return get(r.s.data.payments, id)
}

func (r *paymentRepo) ExistsByReferenceCode(ctx context.Context, code string) (bool, error) {
	defer r.s.acquire(ctx)()
	return exists(r.s.data.payments, func(p entity.Payment) bool { return p.ReferenceCode == code }), nil
}

func (r *paymentRepo) ListByStatus(ctx context.Context, status entity.PaymentStatus, p utils.PaginationParams) ([]entity.Payment, error) {
	defer r.s.acquire(ctx)()
	items := collect(r.s.data.payments,
		func(pm entity.Payment) bool { return pm.Status == status },
		func(a, b entity.Payment) bool { return a.ID < b.ID })
	return page(items, p), nil
}

func (r *paymentRepo) SumBySeller(ctx context.Context, sellerID int64, status entity.PaymentStatus) (int64, error) {
	defer r.s.acquire(ctx)()
	var total int64
	for _, p := range r.s.data.payments {
		if p.SellerID == sellerID && p.Status == status {
			total += p.Amount
		}
	}
	return total, nil
}

func (r *paymentRepo) TransitionStatus(ctx context.Context, id int64, from, to entity.PaymentStatus, actorID int64) (*entity.Payment, error) {
	defer r.s.acquire(ctx)()
	return compareAndSwap(r.s.data.payments, id,
		func(p entity.Payment) bool { return p.Status == from },
		func(p *entity.Payment) {
			now := time.Now().UTC()
			actor := actorID
			switch to {
			case entity.PaymentApproved:
				p.ApprovedAt = &now
				p.ApprovedByID = &actor
			case entity.PaymentReleased:
				p.ReleasedAt = &now
				p.ReleasedByID = &actor
			}
			p.Status = to
			p.UpdatedAt = now
		})
}

type approvalRepo struct{ s *Store }

func (r *approvalRepo) Upsert(ctx context.Context, approval *entity.Approval) (*entity.Approval, error) {
	defer r.s.acquire(ctx)()
	current, err := findOne(r.s.data.approvals, func(a entity.Approval) bool {
		return a.EntityType == approval.EntityType && a.EntityID == approval.EntityID
	})
	if err != nil {
		doc := *approval
		if err := insert(r.s.data.approvals, doc.ID, doc); err != nil {
			return nil, err
		}
		return &doc, nil
	}

	current.ReviewerID = approval.ReviewerID
	current.Decision = approval.Decision
	current.Reason = approval.Reason
	current.UpdatedAt = approval.UpdatedAt
	r.s.data.approvals[current.ID] = *current
	return current, nil
}

func (r *approvalRepo) GetByEntity(ctx context.Context, entityType entity.EntityType, entityID int64) (*entity.Approval, error) {
	defer r.s.acquire(ctx)()
	return findOne(r.s.data.approvals, func(a entity.Approval) bool {
		return a.EntityType == entityType && a.EntityID == entityID
	})
}

func (r *approvalRepo) DeleteByEntity(ctx context.Context, entityType entity.EntityType, entityID int64) error {
	defer r.s.acquire(ctx)()
	removeWhere(r.s.data.approvals, func(a entity.Approval) bool {
		return a.EntityType == entityType && a.EntityID == entityID
	})
	return nil
}

type auditLogRepo struct{ s *Store }

func (r *auditLogRepo) Append(ctx context.Context, entry *entity.AuditLog) error {
	defer r.s.acquire(ctx)()
	return insert(r.s.data.auditLogs, entry.ID, *entry)
}

func (r *auditLogRepo) ListByEntity(ctx context.Context, entityType entity.EntityType, entityID int64) ([]entity.AuditLog, error) {
	defer r.s.acquire(ctx)()
	return collect(r.s.data.auditLogs,
		func(a entity.AuditLog) bool { return a.EntityType == entityType && a.EntityID == entityID },
		func(a, b entity.AuditLog) bool { return a.ID < b.ID }), nil
}
