package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
	"studymarket/pkg/errors"
	"studymarket/pkg/logger"
	"studymarket/pkg/utils"
)

const referenceCodeAttempts = 5

type StudySheetUseCase struct {
	sheetRepo    repository.StudySheetRepository
	courseRepo   repository.CourseRepository
	purchaseRepo repository.PurchaseRepository
	paymentRepo  repository.PaymentRepository
	approvalRepo repository.ApprovalRepository
	tx           *Transactor
	newCode      func() string
}

func NewStudySheetUseCase(
	sheetRepo repository.StudySheetRepository,
	courseRepo repository.CourseRepository,
	purchaseRepo repository.PurchaseRepository,
	paymentRepo repository.PaymentRepository,
	approvalRepo repository.ApprovalRepository,
	tx *Transactor,
) *StudySheetUseCase {
	return &StudySheetUseCase{
		sheetRepo:    sheetRepo,
		courseRepo:   courseRepo,
		purchaseRepo: purchaseRepo,
		paymentRepo:  paymentRepo,
		approvalRepo: approvalRepo,
		tx:           tx,
		newCode:      NewReferenceCode,
	}
}

type CreateStudySheetInput struct {
	Title       string
	Description *string
	FileURL     string
	PriceCents  int64
	CourseCode  string
}

type UpdateStudySheetInput struct {
	Title       *string
	Description *string
	FileURL     *string
	PriceCents  *int64
}

// PurchasedSheet pairs a purchase with the sheet it bought.
type PurchasedSheet struct {
	PurchaseID  int64             `json:"purchaseId"`
	PurchasedAt time.Time         `json:"purchasedAt"`
	AmountCents int64             `json:"amountCents"`
	StudySheet  entity.StudySheet `json:"studySheet"`
}

// NewReferenceCode builds a payment reference such as REF-LQ3K9Z1A-4F9C2B.
func NewReferenceCode() string {
	stamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return "REF-" + stamp + "-" + suffix
}

func (uc *StudySheetUseCase) Create(ctx context.Context, ownerID int64, input CreateStudySheetInput) (*entity.StudySheet, error) {
	course, err := findOrCreateCourse(ctx, uc.courseRepo, uc.tx, strings.TrimSpace(input.CourseCode))
	if err != nil {
		return nil, err
	}

	id, err := uc.tx.NextID(ctx, repository.SeqStudySheets)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sheet := &entity.StudySheet{
		ID:          id,
		OwnerID:     ownerID,
		CourseID:    course.ID,
		CourseCode:  course.Code,
		Title:       input.Title,
		Description: input.Description,
		FileURL:     input.FileURL,
		PriceCents:  input.PriceCents,
		Status:      entity.StudySheetPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.sheetRepo.Create(ctx, sheet); err != nil {
		return nil, err
	}
	return sheet, nil
}

func (uc *StudySheetUseCase) ListApproved(ctx context.Context, courseCode string, page utils.PaginationParams) ([]entity.StudySheet, error) {
	return uc.sheetRepo.ListByStatus(ctx, entity.StudySheetApproved, strings.TrimSpace(courseCode), page.Newest())
}

func (uc *StudySheetUseCase) ListMine(ctx context.Context, ownerID int64) ([]entity.StudySheet, error) {
	return uc.sheetRepo.ListByOwner(ctx, ownerID)
}

// ListPurchased returns the buyer's purchases newest first. Purchases whose
// sheet has since disappeared are skipped.
func (uc *StudySheetUseCase) ListPurchased(ctx context.Context, buyerID int64) ([]PurchasedSheet, error) {
	purchases, err := uc.purchaseRepo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if len(purchases) == 0 {
		return []PurchasedSheet{}, nil
	}

	ids := make([]int64, 0, len(purchases))
	for _, p := range purchases {
		ids = append(ids, p.StudySheetID)
	}
	sheets, err := uc.sheetRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]entity.StudySheet, len(sheets))
	for _, s := range sheets {
		byID[s.ID] = s
	}

	out := make([]PurchasedSheet, 0, len(purchases))
	for _, p := range purchases {
		sheet, ok := byID[p.StudySheetID]
		if !ok {
			continue
		}
		out = append(out, PurchasedSheet{
			PurchaseID:  p.ID,
			PurchasedAt: p.CreatedAt,
			AmountCents: p.AmountCents,
			StudySheet:  sheet,
		})
	}
	return out, nil
}

func (uc *StudySheetUseCase) ownedSheet(ctx context.Context, id, userID int64) (*entity.StudySheet, error) {
	sheet, err := uc.sheetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Study sheet")
	}
	if sheet.OwnerID != userID {
		return nil, errors.Forbidden("Forbidden", nil)
	}
	return sheet, nil
}

func (uc *StudySheetUseCase) Update(ctx context.Context, id, userID int64, input UpdateStudySheetInput) (*entity.StudySheet, error) {
	var updated *entity.StudySheet
	err := uc.tx.Run(ctx, "study_sheet.update", func(ctx context.Context) error {
		if _, err := uc.ownedSheet(ctx, id, userID); err != nil {
			return err
		}

		sheet, err := uc.sheetRepo.Update(ctx, id, entity.StudySheetUpdate{
			Title:       input.Title,
			Description: input.Description,
			FileURL:     input.FileURL,
			PriceCents:  input.PriceCents,
		})
		if err != nil {
			return lookupError(err, "Study sheet")
		}
		if err := normalized(sheet); err != nil {
			return err
		}

		if err := uc.tx.Audit(ctx, userID, entity.AuditStudySheetUpdated, entity.EntityStudySheet, sheet.ID, amountOf(sheet.PriceCents)); err != nil {
			return err
		}
		updated = sheet
		return nil
	})
	return updated, err
}

// Delete removes a sheet nobody has bought yet, along with its approval record.
func (uc *StudySheetUseCase) Delete(ctx context.Context, id, userID int64) (*entity.StudySheet, error) {
	var deleted *entity.StudySheet
	err := uc.tx.Run(ctx, "study_sheet.delete", func(ctx context.Context) error {
		sheet, err := uc.ownedSheet(ctx, id, userID)
		if err != nil {
			return err
		}

		purchases, err := uc.purchaseRepo.CountBySheet(ctx, id)
		if err != nil {
			return err
		}
		if purchases > 0 {
			return errors.BadRequest("Cannot delete study sheet with existing purchases", nil)
		}

		if err := uc.approvalRepo.DeleteByEntity(ctx, entity.EntityStudySheet, id); err != nil {
			return err
		}
		if err := uc.tx.Audit(ctx, userID, entity.AuditStudySheetDeleted, entity.EntityStudySheet, id, amountOf(sheet.PriceCents)); err != nil {
			return err
		}

		deleted, err = uc.sheetRepo.Delete(ctx, id)
		return lookupError(err, "Study sheet")
	})
	return deleted, err
}

// Purchase records the purchase and its PENDING escrow payment together.
// The reference code is picked before the transaction opens.
func (uc *StudySheetUseCase) Purchase(ctx context.Context, sheetID, buyerID int64) (*entity.PurchaseReceipt, error) {
	code, err := uc.uniqueReferenceCode(ctx)
	if err != nil {
		return nil, err
	}

	var receipt *entity.PurchaseReceipt
	err = uc.tx.Run(ctx, "study_sheet.purchase", func(ctx context.Context) error {
		sheet, err := uc.sheetRepo.GetByID(ctx, sheetID)
		if err != nil {
			return lookupError(err, "Study sheet")
		}
		if sheet.Status != entity.StudySheetApproved {
			return errors.BadRequest("Study sheet is not available for purchase", nil)
		}

		if _, err := uc.purchaseRepo.GetByBuyerAndSheet(ctx, buyerID, sheetID); err == nil {
			return errors.BadRequest("Already purchased", nil)
		} else if !isNotFound(err) {
			return err
		}

		now := time.Now().UTC()
		purchaseID, err := uc.tx.NextID(ctx, repository.SeqPurchases)
		if err != nil {
			return err
		}
		purchase := &entity.Purchase{
			ID:           purchaseID,
			BuyerID:      buyerID,
			StudySheetID: sheetID,
			AmountCents:  sheet.PriceCents,
			CreatedAt:    now,
		}
		if err := uc.purchaseRepo.Create(ctx, purchase); err != nil {
			if isDuplicate(err) {
				return errors.BadRequest("Already purchased", nil)
			}
			return err
		}

		paymentID, err := uc.tx.NextID(ctx, repository.SeqPayments)
		if err != nil {
			return err
		}
		payment := &entity.Payment{
			ID:            paymentID,
			PurchaseID:    purchaseID,
			ReferenceCode: code,
			Amount:        sheet.PriceCents,
			Status:        entity.PaymentPending,
			BuyerID:       buyerID,
			SellerID:      sheet.OwnerID,
			StudySheetID:  sheetID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := uc.paymentRepo.Create(ctx, payment); err != nil {
			if isDuplicate(err) {
				return errors.Internal("Failed to generate unique payment reference", err)
			}
			return err
		}

		receipt = &entity.PurchaseReceipt{
			ID:            payment.ID,
			ReferenceCode: payment.ReferenceCode,
			Amount:        payment.Amount,
		}
		return normalized(receipt)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("user %d purchased study sheet %d (payment %d)", buyerID, sheetID, receipt.ID)
	return receipt, nil
}

func (uc *StudySheetUseCase) uniqueReferenceCode(ctx context.Context) (string, error) {
	for i := 0; i < referenceCodeAttempts; i++ {
		code := uc.newCode()
		taken, err := uc.paymentRepo.ExistsByReferenceCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", errors.Internal("Failed to generate unique payment reference", nil)
}
