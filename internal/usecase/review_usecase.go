package usecase

import (
	"context"
	"strings"
	"time"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
	"studymarket/pkg/errors"
)

type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	courseRepo repository.CourseRepository
	reportRepo repository.ReportRepository
	tx         *Transactor
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	courseRepo repository.CourseRepository,
	reportRepo repository.ReportRepository,
	tx *Transactor,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		courseRepo: courseRepo,
		reportRepo: reportRepo,
		tx:         tx,
	}
}

type CreateReviewInput struct {
	CourseID int64
	Rating   int
	Text     string
}

// One review per student per course.
func (uc *ReviewUseCase) CreateReview(ctx context.Context, studentID int64, input CreateReviewInput) (*entity.Review, error) {
	if _, err := uc.courseRepo.GetByID(ctx, input.CourseID); err != nil {
		return nil, lookupError(err, "Course")
	}

	id, err := uc.tx.NextID(ctx, repository.SeqReviews)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	review := &entity.Review{
		ID:        id,
		StudentID: studentID,
		CourseID:  input.CourseID,
		Rating:    input.Rating,
		Text:      strings.TrimSpace(input.Text),
		Status:    entity.ReviewVisible,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		if isDuplicate(err) {
			return nil, errors.BadRequest("You have already reviewed this course", nil)
		}
		return nil, err
	}
	return review, nil
}

func (uc *ReviewUseCase) ownedReview(ctx context.Context, id, studentID int64) (*entity.Review, error) {
	review, err := uc.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Review")
	}
	if review.StudentID != studentID {
		return nil, errors.Forbidden("Forbidden", nil)
	}
	return review, nil
}

// UpdateReview snapshots the previous rating and text before overwriting them.
func (uc *ReviewUseCase) UpdateReview(ctx context.Context, id, studentID int64, rating int, text string) (*entity.Review, error) {
	var result *entity.Review
	err := uc.tx.Run(ctx, "review.update", func(ctx context.Context) error {
		review, err := uc.ownedReview(ctx, id, studentID)
		if err != nil {
			return err
		}

		historyID, err := uc.tx.NextID(ctx, repository.SeqReviewHistory)
		if err != nil {
			return err
		}
		if err := uc.reviewRepo.AppendHistory(ctx, &entity.ReviewHistory{
			ID:        historyID,
			ReviewID:  id,
			OldRating: review.Rating,
			OldText:   review.Text,
			CreatedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}

		result, err = uc.reviewRepo.UpdateContent(ctx, id, rating, strings.TrimSpace(text))
		if err != nil {
			return lookupError(err, "Review")
		}
		return normalized(result)
	})
	return result, err
}

func (uc *ReviewUseCase) DeleteReview(ctx context.Context, id, studentID int64) (*entity.Review, error) {
	var deleted *entity.Review
	err := uc.tx.Run(ctx, "review.delete", func(ctx context.Context) error {
		if _, err := uc.ownedReview(ctx, id, studentID); err != nil {
			return err
		}
		if err := uc.reviewRepo.DeleteVotes(ctx, id); err != nil {
			return err
		}
		if err := uc.reportRepo.DeleteByTarget(ctx, entity.ReportTargetReview, id); err != nil {
			return err
		}
		if err := uc.reviewRepo.DeleteHistory(ctx, id); err != nil {
			return err
		}

		var err error
		deleted, err = uc.reviewRepo.Delete(ctx, id)
		return lookupError(err, "Review")
	})
	return deleted, err
}

func (uc *ReviewUseCase) Upvote(ctx context.Context, id, voterID int64) (*entity.ReviewVote, error) {
	if _, err := uc.reviewRepo.GetByID(ctx, id); err != nil {
		return nil, lookupError(err, "Review")
	}

	voteID, err := uc.tx.NextID(ctx, repository.SeqReviewVotes)
	if err != nil {
		return nil, err
	}
	vote := &entity.ReviewVote{
		ID:        voteID,
		ReviewID:  id,
		VoterID:   voterID,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.reviewRepo.AddVote(ctx, vote); err != nil {
		if isDuplicate(err) {
			return nil, errors.BadRequest("Already upvoted", nil)
		}
		return nil, err
	}
	return vote, nil
}

func (uc *ReviewUseCase) RemoveUpvote(ctx context.Context, id, voterID int64) error {
	if err := uc.reviewRepo.RemoveVote(ctx, id, voterID); err != nil {
		return lookupError(err, "Upvote")
	}
	return nil
}
