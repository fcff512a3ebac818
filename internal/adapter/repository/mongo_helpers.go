package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studymarket/internal/domain/repository"
	"studymarket/pkg/utils"
)

const (
	colUsers                = "users"
	colCourses              = "courses"
	colTeachers             = "teachers"
	colCourseTeachers       = "course_teachers"
	colStudySheets          = "study_sheets"
	colApprovals            = "approvals"
	colPurchases            = "purchases"
	colPayments             = "payments"
	colLeaseListings        = "lease_listings"
	colInterestRequests     = "interest_requests"
	colReviews              = "reviews"
	colReviewVotes          = "review_votes"
	colReviewHistory        = "review_history"
	colTeacherReviews       = "teacher_reviews"
	colTeacherReviewVotes   = "teacher_review_votes"
	colTeacherReviewHistory = "teacher_review_history"
	colReports              = "reports"
	colWithdrawals          = "withdrawal_requests"
	colAuditLogs            = "audit_logs"
	colCounters             = "counters"
)

var (
	sortByIDAsc  = bson.D{{Key: "id", Value: 1}}
	sortByIDDesc = bson.D{{Key: "id", Value: -1}}
)

// translateError maps driver errors onto the repository sentinels.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicate
	}
	return err
}

func findByID[T any](ctx context.Context, coll *mongo.Collection, id int64) (*T, error) {
	return findOneBy[T](ctx, coll, bson.M{"id": id})
}

func findOneBy[T any](ctx context.Context, coll *mongo.Collection, filter interface{}) (*T, error) {
	var doc T
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translateError(err)
	}
	return &doc, nil
}

func findMany[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts *options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func pageOptions(p utils.PaginationParams) *options.FindOptions {
	sort := sortByIDAsc
	if p.NewestFirst {
		sort = sortByIDDesc
	}
	return options.Find().
		SetSort(sort).
		SetSkip(int64(p.Offset)).
		SetLimit(int64(p.PageSize))
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc interface{}) error {
	_, err := coll.InsertOne(ctx, doc)
	return translateError(err)
}

// updateReturning applies update to the single document matching filter and
// returns it as stored afterwards. A miss is resolved against the id alone so
// callers can tell a missing document (ErrNotFound) from a failed
// precondition (ErrConflict).
func updateReturning[T any](ctx context.Context, coll *mongo.Collection, id int64, filter bson.M, update bson.M) (*T, error) {
	var doc T
	err := coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err == nil {
		return &doc, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, translateError(err)
	}

	n, countErr := coll.CountDocuments(ctx, bson.M{"id": id}, options.Count().SetLimit(1))
	if countErr != nil {
		return nil, countErr
	}
	if n == 0 {
		return nil, repository.ErrNotFound
	}
	return nil, repository.ErrConflict
}

// transitionStatus is the compare-and-swap on the status field: the update
// only lands if the document is still in from.
func transitionStatus[T any](ctx context.Context, coll *mongo.Collection, id int64, from, to string, set bson.M) (*T, error) {
	fields := bson.M{"status": to}
	for k, v := range set {
		fields[k] = v
	}
	return updateReturning[T](ctx, coll, id, bson.M{"id": id, "status": from}, bson.M{"$set": fields})
}

func deleteReturning[T any](ctx context.Context, coll *mongo.Collection, id int64) (*T, error) {
	var doc T
	if err := coll.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		return nil, translateError(err)
	}
	return &doc, nil
}
