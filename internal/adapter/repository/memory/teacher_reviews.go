package memory

import (
	"context"
	"time"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
	"studymarket/pkg/utils"
)

type teacherReviewRepo struct{ s *Store }

func (r *teacherReviewRepo) Create(ctx context.Context, review *entity.TeacherReview) error {
	defer r.s.acquire(ctx)()
	return insert(r.s.data.teacherReviews, review.ID, *review)
}

func (r *teacherReviewRepo) GetByID(ctx context.Context, id int64) (*entity.TeacherReview, error) {
	defer r.s.acquire(ctx)()
	return get(r.s.data.teacherReviews, id)
}

func (r *teacherReviewRepo) FindActive(ctx context.Context, studentID, courseID int64, normalizedName string) (*entity.TeacherReview, error) {
	defer r.s.acquire(ctx)()
	return findOne(r.s.data.teacherReviews, func(tr entity.TeacherReview) bool {
		return tr.StudentID == studentID &&
			tr.CourseID == courseID &&
			tr.NormalizedName == normalizedName &&
			(tr.Status == entity.ReviewVisible || tr.Status == entity.ReviewUnderReview)
	})
}

func (r *teacherReviewRepo) ListByCourse(ctx context.Context, courseID int64, viewerID int64) ([]entity.TeacherReview, error) {
	defer r.s.acquire(ctx)()
	return collect(r.s.data.teacherReviews,
		func(tr entity.TeacherReview) bool {
			if tr.CourseID != courseID {
				return false
			}
			return tr.Status == entity.ReviewVisible ||
				(viewerID > 0 && tr.Status == entity.ReviewUnderReview && tr.StudentID == viewerID)
		},
		newestFirst(func(tr entity.TeacherReview) int64 { return tr.ID })), nil
}

func (r *teacherReviewRepo) ListByCourseTeacher(ctx context.Context, courseID, teacherID int64) ([]entity.TeacherReview, error) {
	defer r.s.acquire(ctx)()
	return collect(r.s.data.teacherReviews,
		func(tr entity.TeacherReview) bool {
			return tr.CourseID == courseID && tr.TeacherID != nil && *tr.TeacherID == teacherID && tr.Status == entity.ReviewVisible
		},
		newestFirst(func(tr entity.TeacherReview) int64 { return tr.ID })), nil
}

func (r *teacherReviewRepo) ListByStatus(ctx context.Context, status entity.ReviewStatus, p utils.PaginationParams) ([]entity.TeacherReview, error) {
	defer r.s.acquire(ctx)()
	items := collect(r.s.data.teacherReviews,
		func(tr entity.TeacherReview) bool { return tr.Status == status },
		func(a, b entity.TeacherReview) bool { return a.ID < b.ID })
	return page(items, p), nil
}

func (r *teacherReviewRepo) UpdateContent(ctx context.Context, id int64, rating int, text string) (*entity.TeacherReview, error) {
	defer r.s.acquire(ctx)()
	return compareAndSwap(r.s.data.teacherReviews, id, func(entity.TeacherReview) bool { return true }, func(tr *entity.TeacherReview) {
		tr.Rating = rating
		tr.Text = text
		tr.UpdatedAt = time.Now().UTC()
	})
}

func (r *teacherReviewRepo) Delete(ctx context.Context, id int64) (*entity.TeacherReview, error) {
	defer r.s.acquire(ctx)()
	return remove(r.s.data.teacherReviews, id)
}

func (r *teacherReviewRepo) TransitionStatus(ctx context.Context, id int64, from, to entity.ReviewStatus, decision *entity.TeacherReviewDecision) (*entity.TeacherReview, error) {
	defer r.s.acquire(ctx)()
	return compareAndSwap(r.s.data.teacherReviews, id,
		func(tr entity.TeacherReview) bool { return tr.Status == from },
		func(tr *entity.TeacherReview) {
			now := time.Now().UTC()
			tr.Status = to
			tr.UpdatedAt = now
			if decision == nil {
				return
			}
			if decision.TeacherID != nil {
				tr.TeacherID = decision.TeacherID
			}
			reviewer := decision.ReviewerID
			at := decision.At
			tr.ReviewedByID = &reviewer
			tr.ReviewedAt = &at
			tr.DecisionReason = decision.Reason
		})
}

func (r *teacherReviewRepo) AppendHistory(ctx context.Context, history *entity.TeacherReviewHistory) error {
	defer r.s.acquire(ctx)()
	return insert(r.s.data.teacherReviewHistory, history.ID, *history)
}

func (r *teacherReviewRepo) DeleteHistory(ctx context.Context, teacherReviewID int64) error {
	defer r.s.acquire(ctx)()
	removeWhere(r.s.data.teacherReviewHistory, func(h entity.TeacherReviewHistory) bool {
		return h.TeacherReviewID == teacherReviewID
	})
	return nil
}

func (r *teacherReviewRepo) AddVote(ctx context.Context, vote *entity.TeacherReviewVote) error {
	defer r.s.acquire(ctx)()
	if exists(r.s.data.teacherReviewVotes, func(v entity.TeacherReviewVote) bool {
		return v.TeacherReviewID == vote.TeacherReviewID && v.VoterID == vote.VoterID
	}) {
		return repository.ErrDuplicate
	}
	return insert(r.s.data.teacherReviewVotes, vote.ID, *vote)
}

func (r *teacherReviewRepo) RemoveVote(ctx context.Context, teacherReviewID, voterID int64) error {
	defer r.s.acquire(ctx)()
	n := removeWhere(r.s.data.teacherReviewVotes, func(v entity.TeacherReviewVote) bool {
		return v.TeacherReviewID == teacherReviewID && v.VoterID == voterID
	})
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *teacherReviewRepo) DeleteVotes(ctx context.Context, teacherReviewID int64) error {
	defer r.s.acquire(ctx)()
	removeWhere(r.s.data.teacherReviewVotes, func(v entity.TeacherReviewVote) bool {
		return v.TeacherReviewID == teacherReviewID
	})
	return nil
}
