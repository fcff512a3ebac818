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

type mongoReviewRepository struct {
	reviews *mongo.Collection
	votes   *mongo.Collection
	history *mongo.Collection
}

func NewMongoReviewRepository(db *mongo.Database) repository.ReviewRepository {
	return &mongoReviewRepository{
		reviews: db.Collection(colReviews),
		votes:   db.Collection(colReviewVotes),
		history: db.Collection(colReviewHistory),
	}
}

func (r *mongoReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	return insertOne(ctx, r.reviews, review)
}

func (r *mongoReviewRepository) GetByID(ctx context.Context, id int64) (*entity.Review, error) {
	return findByID[entity.Review](ctx, r.reviews, id)
}

func (r *mongoReviewRepository) ListByCourse(ctx context.Context, courseID int64, status entity.ReviewStatus) ([]entity.Review, error) {
	return findMany[entity.Review](ctx, r.reviews, bson.M{"courseId": courseID, "status": status},
		options.Find().SetSort(sortByIDDesc))
}

func (r *mongoReviewRepository) ListByStatus(ctx context.Context, status entity.ReviewStatus, p utils.PaginationParams) ([]entity.Review, error) {
	return findMany[entity.Review](ctx, r.reviews, bson.M{"status": status}, pageOptions(p))
}

func (r *mongoReviewRepository) UpdateContent(ctx context.Context, id int64, rating int, text string) (*entity.Review, error) {
	return updateReturning[entity.Review](ctx, r.reviews, id, bson.M{"id": id}, bson.M{"$set": bson.M{
		"rating":    rating,
		"text":      text,
		"updatedAt": time.Now().UTC(),
	}})
}

func (r *mongoReviewRepository) Delete(ctx context.Context, id int64) (*entity.Review, error) {
	return deleteReturning[entity.Review](ctx, r.reviews, id)
}

func (r *mongoReviewRepository) TransitionStatus(ctx context.Context, id int64, from, to entity.ReviewStatus) (*entity.Review, error) {
	return transitionStatus[entity.Review](ctx, r.reviews, id, string(from), string(to), bson.M{
		"updatedAt": time.Now().UTC(),
	})
}

func (r *mongoReviewRepository) AppendHistory(ctx context.Context, history *entity.ReviewHistory) error {
	return insertOne(ctx, r.history, history)
}

func (r *mongoReviewRepository) DeleteHistory(ctx context.Context, reviewID int64) error {
	_, err := r.history.DeleteMany(ctx, bson.M{"reviewId": reviewID})
	return err
}

func (r *mongoReviewRepository) AddVote(ctx context.Context, vote *entity.ReviewVote) error {
	return insertOne(ctx, r.votes, vote)
}

func (r *mongoReviewRepository) RemoveVote(ctx context.Context, reviewID, voterID int64) error {
	return deleteExactlyOne(ctx, r.votes, bson.M{"reviewId": reviewID, "voterId": voterID})
}

func (r *mongoReviewRepository) DeleteVotes(ctx context.Context, reviewID int64) error {
	_, err := r.votes.DeleteMany(ctx, bson.M{"reviewId": reviewID})
	return err
}

func deleteExactlyOne(ctx context.Context, coll *mongo.Collection, filter bson.M) error {
	res, err := coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
