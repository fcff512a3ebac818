package repository

import (
	"context"

	"studymarket/internal/domain/entity"
	"studymarket/pkg/utils"
)

type StudySheetRepository interface {
	Create(ctx context.Context, sheet *entity.StudySheet) error
	GetByID(ctx context.Context, id int64) (*entity.StudySheet, error)
	// ListByStatus returns sheets with the status, optionally narrowed to a course code.
	ListByStatus(ctx context.Context, status entity.StudySheetStatus, courseCode string, page utils.PaginationParams) ([]entity.StudySheet, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]entity.StudySheet, error)
	ListByIDs(ctx context.Context, ids []int64) ([]entity.StudySheet, error)
	Update(ctx context.Context, id int64, update entity.StudySheetUpdate) (*entity.StudySheet, error)
	Delete(ctx context.Context, id int64) (*entity.StudySheet, error)
	// TransitionStatus moves the sheet from -> to only if it is currently in from.
	TransitionStatus(ctx context.Context, id int64, from, to entity.StudySheetStatus) (*entity.StudySheet, error)
}

type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByBuyerAndSheet(ctx context.Context, buyerID, studySheetID int64) (*entity.Purchase, error)
	ListByBuyer(ctx context.Context, buyerID int64) ([]entity.Purchase, error)
	CountBySheet(ctx context.Context, studySheetID int64) (int64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id int64) (*entity.Payment, error)
	ExistsByReferenceCode(ctx context.Context, code string) (bool, error)
	ListByStatus(ctx context.Context, status entity.PaymentStatus, page utils.PaginationParams) ([]entity.Payment, error)
	// SumBySeller totals payment amounts for a seller in the given status.
	SumBySeller(ctx context.Context, sellerID int64, status entity.PaymentStatus) (int64, error)
	// TransitionStatus stamps approved*/released* fields according to to.
	TransitionStatus(ctx context.Context, id int64, from, to entity.PaymentStatus, actorID int64) (*entity.Payment, error)
}

// ApprovalRepository keeps the latest moderation decision per entity.
type ApprovalRepository interface {
	// Upsert replaces the decision fields of an existing record or inserts approval.
	// approval.ID and CreatedAt are only written on insert.
	Upsert(ctx context.Context, approval *entity.Approval) (*entity.Approval, error)
	GetByEntity(ctx context.Context, entityType entity.EntityType, entityID int64) (*entity.Approval, error)
	DeleteByEntity(ctx context.Context, entityType entity.EntityType, entityID int64) error
}

type AuditLogRepository interface {
	Append(ctx context.Context, entry *entity.AuditLog) error
	ListByEntity(ctx context.Context, entityType entity.EntityType, entityID int64) ([]entity.AuditLog, error)
}
