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

// ModerationUseCase covers the staff review queues: study sheets, lease
// listings, course reviews and teacher reviews.
type ModerationUseCase struct {
	sheetRepo         repository.StudySheetRepository
	leaseRepo         repository.LeaseListingRepository
	reviewRepo        repository.ReviewRepository
	teacherReviewRepo repository.TeacherReviewRepository
	teacherRepo       repository.TeacherRepository
	approvalRepo      repository.ApprovalRepository
	tx                *Transactor
}

func NewModerationUseCase(
	sheetRepo repository.StudySheetRepository,
	leaseRepo repository.LeaseListingRepository,
	reviewRepo repository.ReviewRepository,
	teacherReviewRepo repository.TeacherReviewRepository,
	teacherRepo repository.TeacherRepository,
	approvalRepo repository.ApprovalRepository,
	tx *Transactor,
) *ModerationUseCase {
	return &ModerationUseCase{
		sheetRepo:         sheetRepo,
		leaseRepo:         leaseRepo,
		reviewRepo:        reviewRepo,
		teacherReviewRepo: teacherReviewRepo,
		teacherRepo:       teacherRepo,
		approvalRepo:      approvalRepo,
		tx:                tx,
	}
}

// DecisionInput is one moderator verdict. Reason is mandatory on rejection.
type DecisionInput struct {
	EntityID int64
	ActorID  int64
	Decision entity.Decision
	Reason   *string
}

func (in DecisionInput) validate() error {
	if !in.Decision.Valid() {
		return errors.BadRequest("decision is invalid", nil)
	}
	if in.Decision == entity.DecisionRejected && (in.Reason == nil || strings.TrimSpace(*in.Reason) == "") {
		return errors.BadRequest("reason is required", nil)
	}
	return nil
}

// recordDecision upserts the latest-decision record for the entity.
func (uc *ModerationUseCase) recordDecision(ctx context.Context, entityType entity.EntityType, in DecisionInput) error {
	id, err := uc.tx.NextID(ctx, repository.SeqApprovals)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = uc.approvalRepo.Upsert(ctx, &entity.Approval{
		ID:         id,
		EntityType: entityType,
		EntityID:   in.EntityID,
		ReviewerID: in.ActorID,
		Decision:   in.Decision,
		Reason:     in.Reason,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	return err
}

func (uc *ModerationUseCase) ListStudySheets(ctx context.Context, status entity.StudySheetStatus, page utils.PaginationParams) ([]entity.StudySheet, error) {
	return uc.sheetRepo.ListByStatus(ctx, status, "", page)
}

func (uc *ModerationUseCase) DecideStudySheet(ctx context.Context, in DecisionInput) (*entity.StudySheet, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	to, action, verb := entity.StudySheetApproved, entity.AuditStudySheetApproved, "approved"
	if in.Decision == entity.DecisionRejected {
		to, action, verb = entity.StudySheetRejected, entity.AuditStudySheetRejected, "rejected"
	}

	var result *entity.StudySheet
	err := uc.tx.Run(ctx, "moderation.study_sheet", func(ctx context.Context) error {
		sheet, err := uc.sheetRepo.GetByID(ctx, in.EntityID)
		if err != nil {
			return lookupError(err, "Study sheet")
		}
		if !sheet.Status.CanTransition(to) {
			return errors.InvalidState("Study sheet cannot be " + verb)
		}

		updated, err := uc.sheetRepo.TransitionStatus(ctx, sheet.ID, sheet.Status, to)
		if err != nil {
			return transitionError(err, "Study sheet", "Study sheet cannot be "+verb)
		}
		if err := normalized(updated); err != nil {
			return err
		}
		if err := uc.recordDecision(ctx, entity.EntityStudySheet, in); err != nil {
			return err
		}
		if err := uc.tx.Audit(ctx, in.ActorID, action, entity.EntityStudySheet, sheet.ID, amountOf(updated.PriceCents)); err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}

func (uc *ModerationUseCase) ListLeaseListings(ctx context.Context, status entity.LeaseListingStatus, page utils.PaginationParams) ([]entity.LeaseListing, error) {
	return uc.leaseRepo.ListByStatus(ctx, status, page)
}

func (uc *ModerationUseCase) DecideLeaseListing(ctx context.Context, in DecisionInput) (*entity.LeaseListing, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	to, action, verb := entity.LeaseListingApproved, entity.AuditLeaseListingApproved, "approved"
	if in.Decision == entity.DecisionRejected {
		to, action, verb = entity.LeaseListingRejected, entity.AuditLeaseListingRejected, "rejected"
	}

	var result *entity.LeaseListing
	err := uc.tx.Run(ctx, "moderation.lease_listing", func(ctx context.Context) error {
		listing, err := uc.leaseRepo.GetByID(ctx, in.EntityID)
		if err != nil {
			return lookupError(err, "Lease listing")
		}
		if !listing.Status.CanTransition(to) {
			return errors.InvalidState("Lease listing cannot be " + verb)
		}

		updated, err := uc.leaseRepo.TransitionStatus(ctx, listing.ID, listing.Status, to)
		if err != nil {
			return transitionError(err, "Lease listing", "Lease listing cannot be "+verb)
		}
		if err := normalized(updated); err != nil {
			return err
		}
		if err := uc.recordDecision(ctx, entity.EntityLeaseListing, in); err != nil {
			return err
		}
		if err := uc.tx.Audit(ctx, in.ActorID, action, entity.EntityLeaseListing, listing.ID, nil); err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}

func (uc *ModerationUseCase) ListReviews(ctx context.Context, status entity.ReviewStatus, page utils.PaginationParams) ([]entity.Review, error) {
	return uc.reviewRepo.ListByStatus(ctx, status, page)
}

func (uc *ModerationUseCase) ApproveReview(ctx context.Context, id, actorID int64) (*entity.Review, error) {
	return uc.moveReview(ctx, id, actorID, entity.ReviewVisible, entity.AuditReviewApproved, "Review cannot be approved")
}

func (uc *ModerationUseCase) RemoveReview(ctx context.Context, id, actorID int64) (*entity.Review, error) {
	return uc.moveReview(ctx, id, actorID, entity.ReviewRemoved, entity.AuditReviewRemoved, "Review cannot be removed")
}

func (uc *ModerationUseCase) moveReview(ctx context.Context, id, actorID int64, to entity.ReviewStatus, action entity.AuditAction, invalid string) (*entity.Review, error) {
	var result *entity.Review
	err := uc.tx.Run(ctx, "moderation.review", func(ctx context.Context) error {
		review, err := uc.reviewRepo.GetByID(ctx, id)
		if err != nil {
			return lookupError(err, "Review")
		}
		if !review.Status.CanTransition(to) {
			return errors.InvalidState(invalid)
		}

		updated, err := uc.reviewRepo.TransitionStatus(ctx, id, review.Status, to)
		if err != nil {
			return transitionError(err, "Review", invalid)
		}
		if err := normalized(updated); err != nil {
			return err
		}
		if err := uc.tx.Audit(ctx, actorID, action, entity.EntityReview, id, nil); err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}

func (uc *ModerationUseCase) ListTeacherReviews(ctx context.Context, status entity.ReviewStatus, page utils.PaginationParams) ([]entity.TeacherReview, error) {
	return uc.teacherReviewRepo.ListByStatus(ctx, status, page)
}

// ApproveTeacherReview makes the review visible and links it to the canonical
// teacher record for its course, creating both teacher and link if needed.
func (uc *ModerationUseCase) ApproveTeacherReview(ctx context.Context, id, actorID int64) (*entity.TeacherReview, error) {
	const invalid = "Teacher review cannot be approved"

	var result *entity.TeacherReview
	err := uc.tx.Run(ctx, "moderation.teacher_review.approve", func(ctx context.Context) error {
		review, err := uc.teacherReviewRepo.GetByID(ctx, id)
		if err != nil {
			return lookupError(err, "Teacher review")
		}
		if !review.Status.CanTransition(entity.ReviewVisible) {
			return errors.InvalidState(invalid)
		}

		teacher, err := findOrCreateTeacher(ctx, uc.teacherRepo, uc.tx, review.TeacherName)
		if err != nil {
			return err
		}
		if err := linkCourseTeacher(ctx, uc.teacherRepo, uc.tx, review.CourseID, teacher.ID); err != nil {
			return err
		}

		teacherID := teacher.ID
		updated, err := uc.teacherReviewRepo.TransitionStatus(ctx, id, review.Status, entity.ReviewVisible, &entity.TeacherReviewDecision{
			TeacherID:  &teacherID,
			ReviewerID: actorID,
			At:         time.Now().UTC(),
		})
		if err != nil {
			return transitionError(err, "Teacher review", invalid)
		}
		if err := normalized(updated); err != nil {
			return err
		}
		if err := uc.tx.Audit(ctx, actorID, entity.AuditTeacherReviewApproved, entity.EntityTeacherReview, id, nil); err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}

func (uc *ModerationUseCase) RemoveTeacherReview(ctx context.Context, id, actorID int64, reason *string) (*entity.TeacherReview, error) {
	const invalid = "Teacher review cannot be removed"

	var result *entity.TeacherReview
	err := uc.tx.Run(ctx, "moderation.teacher_review.remove", func(ctx context.Context) error {
		review, err := uc.teacherReviewRepo.GetByID(ctx, id)
		if err != nil {
			return lookupError(err, "Teacher review")
		}
		if !review.Status.CanTransition(entity.ReviewRemoved) {
			return errors.InvalidState(invalid)
		}

		updated, err := uc.teacherReviewRepo.TransitionStatus(ctx, id, review.Status, entity.ReviewRemoved, &entity.TeacherReviewDecision{
			ReviewerID: actorID,
			Reason:     reason,
			At:         time.Now().UTC(),
		})
		if err != nil {
			return transitionError(err, "Teacher review", invalid)
		}
		if err := normalized(updated); err != nil {
			return err
		}
		if err := uc.tx.Audit(ctx, actorID, entity.AuditTeacherReviewRemoved, entity.EntityTeacherReview, id, nil); err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}
