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

type mongoLeaseListingRepository struct {
	coll *mongo.Collection
}

func NewMongoLeaseListingRepository(db *mongo.Database) repository.LeaseListingRepository {
	return &mongoLeaseListingRepository{coll: db.Collection(colLeaseListings)}
}

func (r *mongoLeaseListingRepository) Create(ctx context.Context, listing *entity.LeaseListing) error {
	return insertOne(ctx, r.coll, listing)
}

func (r *mongoLeaseListingRepository) GetByID(ctx context.Context, id int64) (*entity.LeaseListing, error) {
	return findByID[entity.LeaseListing](ctx, r.coll, id)
}

func (r *mongoLeaseListingRepository) ListByStatus(ctx context.Context, status entity.LeaseListingStatus, p utils.PaginationParams) ([]entity.LeaseListing, error) {
	return findMany[entity.LeaseListing](ctx, r.coll, bson.M{"status": status}, pageOptions(p))
}

func (r *mongoLeaseListingRepository) ListByOwner(ctx context.Context, ownerID int64) ([]entity.LeaseListing, error) {
	return findMany[entity.LeaseListing](ctx, r.coll, bson.M{"ownerId": ownerID}, options.Find().SetSort(sortByIDDesc))
}

func leaseListingUpdateDoc(update entity.LeaseListingUpdate, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.LineID != nil && !update.ClearLineID {
		set["lineId"] = *update.LineID
	}
	if update.Location != nil {
		set["location"] = *update.Location
	}
	if update.RentCents != nil {
		set["rentCents"] = *update.RentCents
	}
	if update.DepositCents != nil {
		set["depositCents"] = *update.DepositCents
	}
	if update.StartDate != nil {
		set["startDate"] = *update.StartDate
	}
	if update.EndDate != nil {
		set["endDate"] = *update.EndDate
	}

	doc := bson.M{"$set": set}
	if update.ClearLineID {
		doc["$unset"] = bson.M{"lineId": ""}
	}
	return doc
}

func (r *mongoLeaseListingRepository) Update(ctx context.Context, id int64, update entity.LeaseListingUpdate) (*entity.LeaseListing, error) {
	return updateReturning[entity.LeaseListing](ctx, r.coll, id, bson.M{"id": id}, leaseListingUpdateDoc(update, time.Now().UTC()))
}

func (r *mongoLeaseListingRepository) Delete(ctx context.Context, id int64) (*entity.LeaseListing, error) {
	return deleteReturning[entity.LeaseListing](ctx, r.coll, id)
}

func (r *mongoLeaseListingRepository) TransitionStatus(ctx context.Context, id int64, from, to entity.LeaseListingStatus) (*entity.LeaseListing, error) {
	return transitionStatus[entity.LeaseListing](ctx, r.coll, id, string(from), string(to), bson.M{
		"updatedAt": time.Now().UTC(),
	})
}

type mongoInterestRequestRepository struct {
	coll *mongo.Collection
}

func NewMongoInterestRequestRepository(db *mongo.Database) repository.InterestRequestRepository {
	return &mongoInterestRequestRepository{coll: db.Collection(colInterestRequests)}
}

func (r *mongoInterestRequestRepository) Create(ctx context.Context, request *entity.InterestRequest) error {
	return insertOne(ctx, r.coll, request)
}

func (r *mongoInterestRequestRepository) DeleteByListing(ctx context.Context, leaseListingID int64) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"leaseListingId": leaseListingID})
	return err
}
