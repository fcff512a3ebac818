package memory

import (
	"context"
	"time"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
	"studymarket/pkg/utils"
)

type reportRepo struct{ s *Store }

func (r *reportRepo) Create(ctx context.Context, report *entity.Report) error {
	defer r.s.acquire(ctx)()
	if report.Status == entity.ReportPending && exists(r.s.data.reports, func(rp entity.Report) bool {
		return rp.Status == entity.ReportPending &&
			rp.ReporterID == report.ReporterID &&
			rp.TargetType == report.TargetType &&
			rp.TargetID == report.TargetID
	}) {
		return repository.ErrDuplicate
	}
	return insert(r.s.data.reports, report.ID, *report)
}

func (r *reportRepo) GetByID(ctx context.Context, id int64) (*entity.Report, error) {
	defer r.s.acquire(ctx)()
	return get(r.s.data.reports, id)
}

func (r *reportRepo) FindPending(ctx context.Context, reporterID int64, targetType entity.ReportTargetType, targetID int64) (*entity.Report, error) {
	defer r.s.acquire(ctx)()
	return findOne(r.s.data.reports, func(rp entity.Report) bool {
		return rp.Status == entity.ReportPending &&
			rp.ReporterID == reporterID &&
			rp.TargetType == targetType &&
			rp.TargetID == targetID
	})
}

func (r *reportRepo) ListByStatus(ctx context.Context, status entity.ReportStatus, p utils.PaginationParams) ([]entity.Report, error) {
	defer r.s.acquire(ctx)()
	items := collect(r.s.data.reports,
		func(rp entity.Report) bool { return rp.Status == status },
		func(a, b entity.Report) bool { return a.ID < b.ID })
	return page(items, p), nil
}

func (r *reportRepo) TransitionStatus(ctx context.Context, id int64, from, to entity.ReportStatus, actorID int64) (*entity.Report, error) {
	defer r.s.acquire(ctx)()
	return compareAndSwap(r.s.data.reports, id,
		func(rp entity.Report) bool { return rp.Status == from },
		func(rp *entity.Report) { resolve(rp, to, actorID, time.Now().UTC()) })
}

func (r *reportRepo) ResolvePendingForTarget(ctx context.Context, targetType entity.ReportTargetType, targetID int64, actorID int64) (int64, error) {
	defer r.s.acquire(ctx)()
	now := time.Now().UTC()
	var n int64
	for id, rp := range r.s.data.reports {
		if rp.Status != entity.ReportPending || rp.TargetType != targetType || rp.TargetID != targetID {
			continue
		}
		resolve(&rp, entity.ReportResolved, actorID, now)
		r.s.data.reports[id] = rp
		n++
	}
	return n, nil
}

func (r *reportRepo) DeleteByTarget(ctx context.Context, targetType entity.ReportTargetType, targetID int64) error {
	defer r.s.acquire(ctx)()
	removeWhere(r.s.data.reports, func(rp entity.Report) bool {
		return rp.TargetType == targetType && rp.TargetID == targetID
	})
	return nil
}

func resolve(rp *entity.Report, to entity.ReportStatus, actorID int64, at time.Time) {
	actor := actorID
	rp.Status = to
	rp.ResolvedByID = &actor
	rp.ResolvedAt = &at
	rp.UpdatedAt = at
}

type withdrawalRepo struct{ s *Store }

func (r *withdrawalRepo) Create(ctx context.Context, withdrawal *entity.Withdrawal) error {
	defer r.s.acquire(ctx)()
	return insert(r.s.data.withdrawals, withdrawal.ID, *withdrawal)
}

func (r *withdrawalRepo) GetByID(ctx context.Context, id int64) (*entity.Withdrawal, error) {
	defer r.s.acquire(ctx)()
	return get(r.s.data.withdrawals, id)
}

func (r *withdrawalRepo) ListByStatus(ctx context.Context, status entity.WithdrawalStatus, p utils.PaginationParams) ([]entity.Withdrawal, error) {
	defer r.s.acquire(ctx)()
	items := collect(r.s.data.withdrawals,
		func(w entity.Withdrawal) bool { return w.Status == status },
		func(a, b entity.Withdrawal) bool { return a.ID < b.ID })
	return page(items, p), nil
}

func (r *withdrawalRepo) ListBySeller(ctx context.Context, sellerID int64) ([]entity.Withdrawal, error) {
	defer r.s.acquire(ctx)()
	return collect(r.s.data.withdrawals,
		func(w entity.Withdrawal) bool { return w.SellerID == sellerID },
		newestFirst(func(w entity.Withdrawal) int64 { return w.ID })), nil
}

func (r *withdrawalRepo) TransitionStatus(ctx context.Context, id int64, from, to entity.WithdrawalStatus, actorID int64) (*entity.Withdrawal, error) {
	defer r.s.acquire(ctx)()
	return compareAndSwap(r.s.data.withdrawals, id,
		func(w entity.Withdrawal) bool { return w.Status == from },
		func(w *entity.Withdrawal) {
			now := time.Now().UTC()
			actor := actorID
			w.Status = to
			w.ReviewedByID = &actor
			w.ReviewedAt = &now
			w.UpdatedAt = now
		})
}
