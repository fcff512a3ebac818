package repository

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
)

type mongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{coll: db.Collection(colUsers)}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *entity.User) error {
	user.Email = strings.ToLower(user.Email)
	return insertOne(ctx, r.coll, user)
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return findByID[entity.User](ctx, r.coll, id)
}

func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return findOneBy[entity.User](ctx, r.coll, bson.M{"email": strings.ToLower(email)})
}

func (r *mongoUserRepository) Update(ctx context.Context, id int64, update entity.UserUpdate) (*entity.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.LineID != nil {
		set["lineId"] = *update.LineID
	}
	return updateReturning[entity.User](ctx, r.coll, id, bson.M{"id": id}, bson.M{"$set": set})
}

func (r *mongoUserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{
		"passwordHash": hash,
		"updatedAt":    time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AdjustWalletBalance guards debits in the filter so the balance can never go negative.
func (r *mongoUserRepository) AdjustWalletBalance(ctx context.Context, id int64, delta int64) (*entity.User, error) {
	filter := bson.M{"id": id}
	if delta < 0 {
		filter["walletBalance"] = bson.M{"$gte": -delta}
	}
	update := bson.M{
		"$inc": bson.M{"walletBalance": delta},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	return updateReturning[entity.User](ctx, r.coll, id, filter, update)
}
