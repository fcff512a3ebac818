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

type mongoWithdrawalRepository struct {
	coll *mongo.Collection
}

func NewMongoWithdrawalRepository(db *mongo.Database) repository.WithdrawalRepository {
	return &mongoWithdrawalRepository{coll: db.Collection(colWithdrawals)}
}

func (r *mongoWithdrawalRepository) Create(ctx context.Context, withdrawal *entity.Withdrawal) error {
	return insertOne(ctx, r.coll, withdrawal)
}

func (r *mongoWithdrawalRepository) GetByID(ctx context.Context, id int64) (*entity.Withdrawal, error) {
	return findByID[entity.Withdrawal](ctx, r.coll, id)
}

func (r *mongoWithdrawalRepository) ListByStatus(ctx context.Context, status entity.WithdrawalStatus, p utils.PaginationParams) ([]entity.Withdrawal, error) {
	return findMany[entity.Withdrawal](ctx, r.coll, bson.M{"status": status}, pageOptions(p))
}

func (r *mongoWithdrawalRepository) ListBySeller(ctx context.Context, sellerID int64) ([]entity.Withdrawal, error) {
	return findMany[entity.Withdrawal](ctx, r.coll, bson.M{"sellerId": sellerID}, options.Find().SetSort(sortByIDDesc))
}

func (r *mongoWithdrawalRepository) TransitionStatus(ctx context.Context, id int64, from, to entity.WithdrawalStatus, actorID int64) (*entity.Withdrawal, error) {
	now := time.Now().UTC()
	return transitionStatus[entity.Withdrawal](ctx, r.coll, id, string(from), string(to), bson.M{
		"reviewedById": actorID,
		"reviewedAt":   now,
		"updatedAt":    now,
	})
}
