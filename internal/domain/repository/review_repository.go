package repository

import (
	"context"

	"studymarket/internal/domain/entity"
	"studymarket/pkg/utils"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id int64) (*entity.Review, error)
	ListByCourse(ctx context.Context, courseID int64, status entity.ReviewStatus) ([]entity.Review, error)
	ListByStatus(ctx context.Context, status entity.ReviewStatus, page utils.PaginationParams) ([]entity.Review, error)
	UpdateContent(ctx context.Context, id int64, rating int, text string) (*entity.Review, error)
	Delete(ctx context.Context, id int64) (*entity.Review, error)
	TransitionStatus(ctx context.Context, id int64, from, to entity.ReviewStatus) (*entity.Review, error)

	AppendHistory(ctx context.Context, history *entity.ReviewHistory) error
	DeleteHistory(ctx context.Context, reviewID int64) error

	AddVote(ctx context.Context, vote *entity.ReviewVote) error
	RemoveVote(ctx context.Context, reviewID, voterID int64) error
	DeleteVotes(ctx context.Context, reviewID int64) error
}

type TeacherReviewRepository interface {
	Create(ctx context.Context, review *entity.TeacherReview) error
	GetByID(ctx context.Context, id int64) (*entity.TeacherReview, error)
	// FindActive returns a VISIBLE or UNDER_REVIEW review by the student for the
	// same course and normalized teacher name.
	FindActive(ctx context.Context, studentID, courseID int64, normalizedName string) (*entity.TeacherReview, error)
	// ListByCourse returns VISIBLE reviews plus the viewer's own UNDER_REVIEW ones.
	ListByCourse(ctx context.Context, courseID int64, viewerID int64) ([]entity.TeacherReview, error)
	ListByCourseTeacher(ctx context.Context, courseID, teacherID int64) ([]entity.TeacherReview, error)
	ListByStatus(ctx context.Context, status entity.ReviewStatus, page utils.PaginationParams) ([]entity.TeacherReview, error)
	UpdateContent(ctx context.Context, id int64, rating int, text string) (*entity.TeacherReview, error)
	Delete(ctx context.Context, id int64) (*entity.TeacherReview, error)
	TransitionStatus(ctx context.Context, id int64, from, to entity.ReviewStatus, decision *entity.TeacherReviewDecision) (*entity.TeacherReview, error)

	AppendHistory(ctx context.Context, history *entity.TeacherReviewHistory) error
	DeleteHistory(ctx context.Context, teacherReviewID int64) error

	AddVote(ctx context.Context, vote *entity.TeacherReviewVote) error
	RemoveVote(ctx context.Context, teacherReviewID, voterID int64) error
	DeleteVotes(ctx context.Context, teacherReviewID int64) error
}
