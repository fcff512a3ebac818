package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
	"studymarket/pkg/utils"
)

type mongoTeacherReviewRepository struct {
	reviews *mongo.Collection
	votes   *mongo.Collection
	history *mongo.Collection
}

func NewMongoTeacherReviewRepository(db *mongo.Database) repository.TeacherReviewRepository {
	return &mongoTeacherReviewRepository{
		reviews: db.Collection(colTeacherReviews),
		votes:   db.Collection(colTeacherReviewVotes),
		history: db.Collection(colTeacherReviewHistory),
	}
}

func (r *mongoTeacherReviewRepository) Create(ctx context.Context, review *entity.TeacherReview) error {
	return insertOne(ctx, r.reviews, review)
}

func (r *mongoTeacherReviewRepository) GetByID(ctx context.Context, id int64) (*entity.TeacherReview, error) {
	return findByID[entity.TeacherReview](ctx, r.reviews, id)
}

func (r *mongoTeacherReviewRepository) FindActive(ctx context.Context, studentID, courseID int64, normalizedName string) (*entity.TeacherReview, error) {
	return findOneBy[entity.TeacherReview](ctx, r.reviews, bson.M{
		"studentId":      studentID,
		"courseId":       courseID,
		"normalizedName": normalizedName,
		"status":         bson.M{"$in": bson.A{entity.ReviewVisible, entity.ReviewUnderReview}},
	})
}

// teacherReviewCourseFilter matches the course's VISIBLE reviews and, for a
// signed-in viewer, their own reviews still UNDER_REVIEW.
func teacherReviewCourseFilter(courseID, viewerID int64) bson.M {
	if viewerID <= 0 {
		return bson.M{"courseId": courseID, "status": entity.ReviewVisible}
	}
	return bson.M{
		"courseId": courseID,
		"$or": bson.A{
			bson.M{"status": entity.ReviewVisible},
			bson.M{"status": entity.ReviewUnderReview, "studentId": viewerID},
		},
	}
}

func (r *mongoTeacherReviewRepository) ListByCourse(ctx context.Context, courseID int64, viewerID int64) ([]entity.TeacherReview, error) {
	return findMany[entity.TeacherReview](ctx, r.reviews, teacherReviewCourseFilter(courseID, viewerID),
		options.Find().SetSort(sortByIDDesc))
}

func (r *mongoTeacherReviewRepository) ListByCourseTeacher(ctx context.Context, courseID, teacherID int64) ([]entity.TeacherReview, error) {
	return findMany[entity.TeacherReview](ctx, r.reviews,
		bson.M{"courseId": courseID, "teacherId": teacherID, "status": entity.ReviewVisible},
		options.Find().SetSort(sortByIDDesc))
}

func (r *mongoTeacherReviewRepository) ListByStatus(ctx context.Context, status entity.ReviewStatus, p utils.PaginationParams) ([]entity.TeacherReview, error) {
	return findMany[entity.TeacherReview](ctx, r.reviews, bson.M{"status": status}, pageOptions(p))
}

func (r *mongoTeacherReviewRepository) UpdateContent(ctx context.Context, id int64, rating int, text string) (*entity.TeacherReview, error) {
	return updateReturning[entity.TeacherReview](ctx, r.reviews, id, bson.M{"id": id}, bson.M{"$set": bson.M{
		"rating":    rating,
		"text":      text,
		"updatedAt": time.Now().UTC(),
	}})
}

func (r *mongoTeacherReviewRepository) Delete(ctx context.Context, id int64) (*entity.TeacherReview, error) {
	return deleteReturning[entity.TeacherReview](ctx, r.reviews, id)
}

func teacherReviewDecisionFields(decision *entity.TeacherReviewDecision, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if decision == nil {
		return set
	}
	if decision.TeacherID != nil {
		set["teacherId"] = *decision.TeacherID
	}
	set["reviewedById"] = decision.ReviewerID
	set["reviewedAt"] = decision.At
	set["decisionReason"] = decision.Reason
	return set
}

func (r *mongoTeacherReviewRepository) TransitionStatus(ctx context.Context, id int64, from, to entity.ReviewStatus, decision *entity.TeacherReviewDecision) (*entity.TeacherReview, error) {
	return transitionStatus[entity.TeacherReview](ctx, r.reviews, id, string(from), string(to),
		teacherReviewDecisionFields(decision, time.Now().UTC()))
}

func (r *mongoTeacherReviewRepository) AppendHistory(ctx context.Context, history *entity.TeacherReviewHistory) error {
	return insertOne(ctx, r.history, history)
}

func (r *mongoTeacherReviewRepository) DeleteHistory(ctx context.Context, teacherReviewID int64) error {
	_, err := r.history.DeleteMany(ctx, bson.M{"teacherReviewId": teacherReviewID})
	return err
}

func (r *mongoTeacherReviewRepository) AddVote(ctx context.Context, vote *entity.TeacherReviewVote) error {
	return insertOne(ctx, r.votes, vote)
}

func (r *mongoTeacherReviewRepository) RemoveVote(ctx context.Context, teacherReviewID, voterID int64) error {
	return deleteExactlyOne(ctx, r.votes, bson.M{"teacherReviewId": teacherReviewID, "voterId": voterID})
}

func (r *mongoTeacherReviewRepository) DeleteVotes(ctx context.Context, teacherReviewID int64) error {
	_, err := r.votes.DeleteMany(ctx, bson.M{"teacherReviewId": teacherReviewID})
	return err
}
