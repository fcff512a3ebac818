package usecase

import (
	"context"
	"strings"
	"time"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
	"studymarket/pkg/errors"
)

type TeacherReviewUseCase struct {
	teacherReviewRepo repository.TeacherReviewRepository
	courseRepo        repository.CourseRepository
	reportRepo        repository.ReportRepository
	tx                *Transactor
}

func NewTeacherReviewUseCase(
	teacherReviewRepo repository.TeacherReviewRepository,
	courseRepo repository.CourseRepository,
	reportRepo repository.ReportRepository,
	tx *Transactor,
) *TeacherReviewUseCase {
	return &TeacherReviewUseCase{
		teacherReviewRepo: teacherReviewRepo,
		courseRepo:        courseRepo,
		reportRepo:        reportRepo,
		tx:                tx,
	}
}

type CreateTeacherReviewInput struct {
	CourseID    int64
	TeacherName string
	Rating      int
	Text        string
}

// CreateTeacherReview stores an unlinked review. A student may hold only one
// live review per teacher name in a course, compared case- and
// whitespace-insensitively.
func (uc *TeacherReviewUseCase) CreateTeacherReview(ctx context.Context, studentID int64, input CreateTeacherReviewInput) (*entity.TeacherReview, error) {
	name := strings.TrimSpace(input.TeacherName)
	normalized := entity.NormalizeTeacherName(name)
	if normalized == "" {
		return nil, errors.BadRequest("teacherName is required", nil)
	}

	var result *entity.TeacherReview
	err := uc.tx.Run(ctx, "teacher_review.create", func(ctx context.Context) error {
		if _, err := uc.courseRepo.GetByID(ctx, input.CourseID); err != nil {
			return lookupError(err, "Course")
		}

		if _, err := uc.teacherReviewRepo.FindActive(ctx, studentID, input.CourseID, normalized); err == nil {
			return errors.BadRequest("You already reviewed this teacher", nil)
		} else if !isNotFound(err) {
			return err
		}

		id, err := uc.tx.NextID(ctx, repository.SeqTeacherReviews)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		review := &entity.TeacherReview{
			ID:             id,
			StudentID:      studentID,
			CourseID:       input.CourseID,
			TeacherName:    name,
			NormalizedName: normalized,
			Rating:         input.Rating,
			Text:           strings.TrimSpace(input.Text),
			Status:         entity.ReviewVisible,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := uc.teacherReviewRepo.Create(ctx, review); err != nil {
			if isDuplicate(err) {
				return errors.BadRequest("You already reviewed this teacher", nil)
			}
			return err
		}
		result = review
		return nil
	})
	return result, err
}

func (uc *TeacherReviewUseCase) ownedReview(ctx context.Context, id, studentID int64) (*entity.TeacherReview, error) {
	review, err := uc.teacherReviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Teacher review")
	}
	if review.StudentID != studentID {
		return nil, errors.Forbidden("Forbidden", nil)
	}
	return review, nil
}

func (uc *TeacherReviewUseCase) UpdateTeacherReview(ctx context.Context, id, studentID int64, rating int, text string) (*entity.TeacherReview, error) {
	var result *entity.TeacherReview
	err := uc.tx.Run(ctx, "teacher_review.update", func(ctx context.Context) error {
		review, err := uc.ownedReview(ctx, id, studentID)
		if err != nil {
			return err
		}

		historyID, err := uc.tx.NextID(ctx, repository.SeqTeacherReviewHistory)
		if err != nil {
			return err
		}
		if err := uc.teacherReviewRepo.AppendHistory(ctx, &entity.TeacherReviewHistory{
			ID:              historyID,
			TeacherReviewID: id,
			OldRating:       review.Rating,
			OldText:         review.Text,
			CreatedAt:       time.Now().UTC(),
		}); err != nil {
			return err
		}

		result, err = uc.teacherReviewRepo.UpdateContent(ctx, id, rating, strings.TrimSpace(text))
		if err != nil {
			return lookupError(err, "Teacher review")
		}
		return normalized(result)
	})
	return result, err
}

func (uc *TeacherReviewUseCase) DeleteTeacherReview(ctx context.Context, id, studentID int64) (*entity.TeacherReview, error) {
	var deleted *entity.TeacherReview
	err := uc.tx.Run(ctx, "teacher_review.delete", func(ctx context.Context) error {
		if _, err := uc.ownedReview(ctx, id, studentID); err != nil {
			return err
		}
		if err := uc.teacherReviewRepo.DeleteVotes(ctx, id); err != nil {
			return err
		}
		if err := uc.reportRepo.DeleteByTarget(ctx, entity.ReportTargetTeacherReview, id); err != nil {
			return err
		}
		if err := uc.teacherReviewRepo.DeleteHistory(ctx, id); err != nil {
			return err
		}

		var err error
		deleted, err = uc.teacherReviewRepo.Delete(ctx, id)
		return lookupError(err, "Teacher review")
	})
	return deleted, err
}

func (uc *TeacherReviewUseCase) Upvote(ctx context.Context, id, voterID int64) (*entity.TeacherReviewVote, error) {
	if _, err := uc.teacherReviewRepo.GetByID(ctx, id); err != nil {
		return nil, lookupError(err, "Teacher review")
	}

	voteID, err := uc.tx.NextID(ctx, repository.SeqTeacherReviewVotes)
	if err != nil {
		return nil, err
	}
	vote := &entity.TeacherReviewVote{
		ID:              voteID,
		TeacherReviewID: id,
		VoterID:         voterID,
		CreatedAt:       time.Now().UTC(),
	}
	if err := uc.teacherReviewRepo.AddVote(ctx, vote); err != nil {
		if isDuplicate(err) {
			return nil, errors.BadRequest("Already upvoted", nil)
		}
		return nil, err
	}
	return vote, nil
}

func (uc *TeacherReviewUseCase) RemoveUpvote(ctx context.Context, id, voterID int64) error {
	if err := uc.teacherReviewRepo.RemoveVote(ctx, id, voterID); err != nil {
		return lookupError(err, "Upvote")
	}
	return nil
}
