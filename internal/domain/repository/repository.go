package repository

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no document matches the lookup.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when an insert or upsert violates a unique index.
	ErrDuplicate = errors.New("duplicate key")
	// ErrConflict is returned when a conditional update matched the id but not its precondition.
	ErrConflict = errors.New("precondition failed")
)

// TxManager runs fn so that every repository call made with the ctx it receives
// commits or rolls back together. Nested calls join the outer transaction.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// SequenceRepository issues per-name monotonically increasing ids.
// Called inside a transaction, the increment rolls back with it.
type SequenceRepository interface {
	NextID(ctx context.Context, name string) (int64, error)
}

// Sequence names, one per id-bearing collection.
const (
	SeqUsers                = "users"
	SeqCourses              = "courses"
	SeqTeachers             = "teachers"
	SeqCourseTeachers       = "course_teachers"
	SeqStudySheets          = "study_sheets"
	SeqApprovals            = "approvals"
	SeqPurchases            = "purchases"
	SeqPayments             = "payments"
	SeqLeaseListings        = "lease_listings"
	SeqInterestRequests     = "interest_requests"
	SeqReviews              = "reviews"
	SeqReviewVotes          = "review_votes"
	SeqReviewHistory        = "review_history"
	SeqTeacherReviews       = "teacher_reviews"
	SeqTeacherReviewVotes   = "teacher_review_votes"
	SeqTeacherReviewHistory = "teacher_review_history"
	SeqReports              = "reports"
	SeqWithdrawals          = "withdrawal_requests"
	SeqAuditLogs            = "audit_logs"
)
