package usecase

import (
	"context"
	"strings"
	"time"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
	"studymarket/pkg/errors"
	"studymarket/pkg/utils"
)

type ReportUseCase struct {
	reportRepo        repository.ReportRepository
	reviewRepo        repository.ReviewRepository
	teacherReviewRepo repository.TeacherReviewRepository
	tx                *Transactor
}

func NewReportUseCase(
	reportRepo repository.ReportRepository,
	reviewRepo repository.ReviewRepository,
	teacherReviewRepo repository.TeacherReviewRepository,
	tx *Transactor,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:        reportRepo,
		reviewRepo:        reviewRepo,
		teacherReviewRepo: teacherReviewRepo,
		tx:                tx,
	}
}

// ReportStatusResult is what admins get back after acting on a report.
type ReportStatusResult struct {
	ID        int64               `json:"id"`
	Status    entity.ReportStatus `json:"status"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func statusResult(r *entity.Report) *ReportStatusResult {
	return &ReportStatusResult{ID: r.ID, Status: r.Status, UpdatedAt: r.UpdatedAt}
}

// File opens a PENDING report and puts a visible target under review.
func (uc *ReportUseCase) File(ctx context.Context, reporterID int64, targetType entity.ReportTargetType, targetID int64, reason string) (*entity.Report, error) {
	if !targetType.Valid() {
		return nil, errors.BadRequest("Invalid report target type", nil)
	}

	var result *entity.Report
	err := uc.tx.Run(ctx, "report.file", func(ctx context.Context) error {
		if err := uc.flagTarget(ctx, targetType, targetID, false); err != nil {
			return err
		}

		if _, err := uc.reportRepo.FindPending(ctx, reporterID, targetType, targetID); err == nil {
			return errors.DuplicateReport()
		} else if !isNotFound(err) {
			return err
		}

		id, err := uc.tx.NextID(ctx, repository.SeqReports)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		report := &entity.Report{
			ID:         id,
			ReporterID: reporterID,
			TargetType: targetType,
			TargetID:   targetID,
			Reason:     strings.TrimSpace(reason),
			Status:     entity.ReportPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := normalized(report); err != nil {
			return err
		}
		if err := uc.reportRepo.Create(ctx, report); err != nil {
			if isDuplicate(err) {
				return errors.DuplicateReport()
			}
			return err
		}

		if err := uc.flagTarget(ctx, targetType, targetID, true); err != nil {
			return err
		}
		result = report
		return nil
	})
	return result, err
}

// flagTarget checks that the target exists and is not removed. With apply
// set, a VISIBLE target is moved to UNDER_REVIEW.
func (uc *ReportUseCase) flagTarget(ctx context.Context, targetType entity.ReportTargetType, targetID int64, apply bool) error {
	const invalid = "Reported content cannot be flagged"

	switch targetType {
	case entity.ReportTargetReview:
		review, err := uc.reviewRepo.GetByID(ctx, targetID)
		if err != nil {
			return lookupError(err, "Review")
		}
		if review.Status == entity.ReviewRemoved {
			return errors.NotFound("Review", nil)
		}
		if apply && review.Status == entity.ReviewVisible {
			_, err := uc.reviewRepo.TransitionStatus(ctx, targetID, entity.ReviewVisible, entity.ReviewUnderReview)
			return transitionError(err, "Review", invalid)
		}
	case entity.ReportTargetTeacherReview:
		review, err := uc.teacherReviewRepo.GetByID(ctx, targetID)
		if err != nil {
			return lookupError(err, "Teacher review")
		}
		if review.Status == entity.ReviewRemoved {
			return errors.NotFound("Teacher review", nil)
		}
		if apply && review.Status == entity.ReviewVisible {
			_, err := uc.teacherReviewRepo.TransitionStatus(ctx, targetID, entity.ReviewVisible, entity.ReviewUnderReview, nil)
			return transitionError(err, "Teacher review", invalid)
		}
	}
	return nil
}

func (uc *ReportUseCase) List(ctx context.Context, status entity.ReportStatus, page utils.PaginationParams) ([]entity.Report, error) {
	return uc.reportRepo.ListByStatus(ctx, status, page)
}

func (uc *ReportUseCase) UpdateStatus(ctx context.Context, id, actorID int64, to entity.ReportStatus) (*ReportStatusResult, error) {
	var action entity.AuditAction
	switch to {
	case entity.ReportResolved:
		action = entity.AuditReportResolved
	case entity.ReportRejected:
		action = entity.AuditReportRejected
	default:
		return nil, errors.BadRequest("status must be one of: RESOLVED REJECTED", nil)
	}
	const invalid = "Report cannot be updated"

	var result *ReportStatusResult
	err := uc.tx.Run(ctx, "report.update_status", func(ctx context.Context) error {
		report, err := uc.reportRepo.GetByID(ctx, id)
		if err != nil {
			return lookupError(err, "Report")
		}
		if !report.Status.CanTransition(to) {
			return errors.InvalidState(invalid)
		}

		updated, err := uc.reportRepo.TransitionStatus(ctx, id, report.Status, to, actorID)
		if err != nil {
			return transitionError(err, "Report", invalid)
		}
		if err := normalized(updated); err != nil {
			return err
		}
		if err := uc.tx.Audit(ctx, actorID, action, entity.EntityReport, id, nil); err != nil {
			return err
		}
		result = statusResult(updated)
		return nil
	})
	return result, err
}

// RemoveTarget deletes the reported content with its votes and edit history
// and resolves every pending report against it, this one included.
func (uc *ReportUseCase) RemoveTarget(ctx context.Context, id, actorID int64) (*ReportStatusResult, error) {
	var result *ReportStatusResult
	err := uc.tx.Run(ctx, "report.remove_target", func(ctx context.Context) error {
		report, err := uc.reportRepo.GetByID(ctx, id)
		if err != nil {
			return lookupError(err, "Report")
		}
		if !report.TargetType.Valid() {
			return errors.BadRequest("Invalid report target type", nil)
		}
		if !report.Status.CanTransition(entity.ReportResolved) {
			return errors.InvalidState("Report cannot be resolved")
		}

		if err := uc.deleteTarget(ctx, report.TargetType, report.TargetID); err != nil {
			return err
		}
		if _, err := uc.reportRepo.ResolvePendingForTarget(ctx, report.TargetType, report.TargetID, actorID); err != nil {
			return err
		}

		resolved, err := uc.reportRepo.GetByID(ctx, id)
		if err != nil {
			return lookupError(err, "Report")
		}
		if resolved.Status != entity.ReportResolved {
			return errors.InvalidState("Report cannot be resolved")
		}
		if err := normalized(resolved); err != nil {
			return err
		}
		if err := uc.tx.Audit(ctx, actorID, entity.AuditReportTargetRemoved, entity.EntityReport, id, nil); err != nil {
			return err
		}
		result = statusResult(resolved)
		return nil
	})
	return result, err
}

func (uc *ReportUseCase) deleteTarget(ctx context.Context, targetType entity.ReportTargetType, targetID int64) error {
	switch targetType {
	case entity.ReportTargetReview:
		if err := uc.reviewRepo.DeleteVotes(ctx, targetID); err != nil {
			return err
		}
		if err := uc.reviewRepo.DeleteHistory(ctx, targetID); err != nil {
			return err
		}
		_, err := uc.reviewRepo.Delete(ctx, targetID)
		return lookupError(err, "Reported target")
	case entity.ReportTargetTeacherReview:
		if err := uc.teacherReviewRepo.DeleteVotes(ctx, targetID); err != nil {
			return err
		}
		if err := uc.teacherReviewRepo.DeleteHistory(ctx, targetID); err != nil {
			return err
		}
		_, err := uc.teacherReviewRepo.Delete(ctx, targetID)
		return lookupError(err, "Reported target")
	}
	return errors.BadRequest("Invalid report target type", nil)
}
