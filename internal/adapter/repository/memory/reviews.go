package memory

import (
	"context"
	"time"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
	"studymarket/pkg/utils"
)

func newestFirst[T any](id func(T) int64) func(a, b T) bool {
	return func(a, b T) bool { return id(a) > id(b) }
}

type reviewRepo struct{ s *Store }

func (r *reviewRepo) Create(ctx context.Context, review *entity.Review) error {
	defer r.s.acquire(ctx)()
	if exists(r.s.data.reviews, func(rv entity.Review) bool {
		return rv.StudentID == review.StudentID && rv.CourseID == review.CourseID
	}) {
		return repository.ErrDuplicate
	}
	return insert(r.s.data.reviews, review.ID, *review)
}

func (r *reviewRepo) GetByID(ctx context.Context, id int64) (*entity.Review, error) {
	defer r.s.acquire(ctx)()
	return get(r.s.data.reviews, id)
}

func (r *reviewRepo) ListByCourse(ctx context.Context, courseID int64, status entity.ReviewStatus) ([]entity.Review, error) {
	defer r.s.acquire(ctx)()
	return collect(r.s.data.reviews,
		func(rv entity.Review) bool { return rv.CourseID == courseID && rv.Status == status },
		newestFirst(func(rv entity.Review) int64 { return rv.ID })), nil
}

func (r *reviewRepo) ListByStatus(ctx context.Context, status entity.ReviewStatus, p utils.PaginationParams) ([]entity.Review, error) {
	defer r.s.acquire(ctx)()
	items := collect(r.s.data.reviews,
		func(rv entity.Review) bool { return rv.Status == status },
		func(a, b entity.Review) bool { return a.ID < b.ID })
	return page(items, p), nil
}

func (r *reviewRepo) UpdateContent(ctx context.Context, id int64, rating int, text string) (*entity.Review, error) {
	defer r.s.acquire(ctx)()
	return compareAndSwap(r.s.data.reviews, id, func(entity.Review) bool { return true }, func(rv *entity.Review) {
		rv.Rating = rating
		rv.Text = text
		rv.UpdatedAt = time.Now().UTC()
	})
}

func (r *reviewRepo) Delete(ctx context.Context, id int64) (*entity.Review, error) {
	defer r.s.acquire(ctx)()
	return remove(r.s.data.reviews, id)
}

func (r *reviewRepo) TransitionStatus(ctx context.Context, id int64, from, to entity.ReviewStatus) (*entity.Review, error) {
	defer r.s.acquire(ctx)()
	return compareAndSwap(r.s.data.reviews, id,
		func(rv entity.Review) bool { return rv.Status == from },
		func(rv *entity.Review) {
			rv.Status = to
			rv.UpdatedAt = time.Now().UTC()
		})
}

func (r *reviewRepo) AppendHistory(ctx context.Context, history *entity.ReviewHistory) error {
	defer r.s.acquire(ctx)()
	return insert(r.s.data.reviewHistory, history.ID, *history)
}

func (r *reviewRepo) DeleteHistory(ctx context.Context, reviewID int64) error {
	defer r.s.acquire(ctx)()
	removeWhere(r.s.data.reviewHistory, func(h entity.ReviewHistory) bool { return h.ReviewID == reviewID })
	return nil
}

func (r *reviewRepo) AddVote(ctx context.Context, vote *entity.ReviewVote) error {
	defer r.s.acquire(ctx)()
	if exists(r.s.data.reviewVotes, func(v entity.ReviewVote) bool {
		return v.ReviewID == vote.ReviewID && v.VoterID == vote.VoterID
	}) {
		return repository.ErrDuplicate
	}
	return insert(r.s.data.reviewVotes, vote.ID, *vote)
}

func (r *reviewRepo) RemoveVote(ctx context.Context, reviewID, voterID int64) error {
	defer r.s.acquire(ctx)()
	n := removeWhere(r.s.data.reviewVotes, func(v entity.ReviewVote) bool {
		return v.ReviewID == reviewID && v.VoterID == voterID
	})
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *reviewRepo) DeleteVotes(ctx context.Context, reviewID int64) error {
	defer r.s.acquire(ctx)()
	removeWhere(r.s.data.reviewVotes, func(v entity.ReviewVote) bool { return v.ReviewID == reviewID })
	return nil
}

// HistoryCount reports how many snapshots exist for a review.
func (s *Store) HistoryCount(reviewID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, h := range s.data.reviewHistory {
		if h.ReviewID == reviewID {
			n++
		}
	}
	return n
}
