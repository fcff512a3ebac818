package repository

import (
	"context"

	"studymarket/internal/domain/entity"
	"studymarket/pkg/utils"
)

type ReportRepository interface {
	// Create returns ErrDuplicate when the reporter already has a PENDING
	// report against the same target.
	Create(ctx context.Context, report *entity.Report) error
	GetByID(ctx context.Context, id int64) (*entity.Report, error)
	FindPending(ctx context.Context, reporterID int64, targetType entity.ReportTargetType, targetID int64) (*entity.Report, error)
	ListByStatus(ctx context.Context, status entity.ReportStatus, page utils.PaginationParams) ([]entity.Report, error)
	TransitionStatus(ctx context.Context, id int64, from, to entity.ReportStatus, actorID int64) (*entity.Report, error)
	// ResolvePendingForTarget marks every PENDING report on the target RESOLVED.
	ResolvePendingForTarget(ctx context.Context, targetType entity.ReportTargetType, targetID int64, actorID int64) (int64, error)
	DeleteByTarget(ctx context.Context, targetType entity.ReportTargetType, targetID int64) error
}
