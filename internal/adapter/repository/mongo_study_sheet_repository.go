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

type mongoStudySheetRepository struct {
	coll *mongo.Collection
}

func NewMongoStudySheetRepository(db *mongo.Database) repository.StudySheetRepository {
	return &mongoStudySheetRepository{coll: db.Collection(colStudySheets)}
}

func (r *mongoStudySheetRepository) Create(ctx context.Context, sheet *entity.StudySheet) error {
	return insertOne(ctx, r.coll, sheet)
}

func (r *mongoStudySheetRepository) GetByID(ctx context.Context, id int64) (*entity.StudySheet, error) {
	return findByID[entity.StudySheet](ctx, r.coll, id)
}

func (r *mongoStudySheetRepository) ListByStatus(ctx context.Context, status entity.StudySheetStatus, courseCode string, p utils.PaginationParams) ([]entity.StudySheet, error) {
	filter := bson.M{"status": status}
	if courseCode != "" {
		filter["courseCode"] = courseCode
	}
	return findMany[entity.StudySheet](ctx, r.coll, filter, pageOptions(p))
}

func (r *mongoStudySheetRepository) ListByOwner(ctx context.Context, ownerID int64) ([]entity.StudySheet, error) {
	return findMany[entity.StudySheet](ctx, r.coll, bson.M{"ownerId": ownerID}, options.Find().SetSort(sortByIDDesc))
}

func (r *mongoStudySheetRepository) ListByIDs(ctx context.Context, ids []int64) ([]entity.StudySheet, error) {
	if len(ids) == 0 {
		return []entity.StudySheet{}, nil
	}
	return findMany[entity.StudySheet](ctx, r.coll, bson.M{"id": bson.M{"$in": ids}}, options.Find().SetSort(sortByIDDesc))
}

func (r *mongoStudySheetRepository) Update(ctx context.Context, id int64, update entity.StudySheetUpdate) (*entity.StudySheet, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.FileURL != nil {
		set["fileUrl"] = *update.FileURL
	}
	if update.PriceCents != nil {
		set["priceCents"] = *update.PriceCents
	}
	return updateReturning[entity.StudySheet](ctx, r.coll, id, bson.M{"id": id}, bson.M{"$set": set})
}

func (r *mongoStudySheetRepository) Delete(ctx context.Context, id int64) (*entity.StudySheet, error) {
	return deleteReturning[entity.StudySheet](ctx, r.coll, id)
}

func (r *mongoStudySheetRepository) TransitionStatus(ctx context.Context, id int64, from, to entity.StudySheetStatus) (*entity.StudySheet, error) {
	return transitionStatus[entity.StudySheet](ctx, r.coll, id, string(from), string(to), bson.M{
		"updatedAt": time.Now().UTC(),
	})
}

type mongoPurchaseRepository struct {
	coll *mongo.Collection
}

func NewMongoPurchaseRepository(db *mongo.Database) repository.PurchaseRepository {
	return &mongoPurchaseRepository{coll: db.Collection(colPurchases)}
}

func (r *mongoPurchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	return insertOne(ctx, r.coll, purchase)
}

func (r *mongoPurchaseRepository) GetByBuyerAndSheet(ctx context.Context, buyerID, studySheetID int64) (*entity.Purchase, error) {
	return findOneBy[entity.Purchase](ctx, r.coll, bson.M{"buyerId": buyerID, "studySheetId": studySheetID})
}

func (r *mongoPurchaseRepository) ListByBuyer(ctx context.Context, buyerID int64) ([]entity.Purchase, error) {
	return findMany[entity.Purchase](ctx, r.coll, bson.M{"buyerId": buyerID}, options.Find().SetSort(sortByIDDesc))
}

func (r *mongoPurchaseRepository) CountBySheet(ctx context.Context, studySheetID int64) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"studySheetId": studySheetID})
}

type mongoPaymentRepository struct {
	coll *mongo.Collection
}

func NewMongoPaymentRepository(db *mongo.Database) repository.PaymentRepository {
	return &mongoPaymentRepository{coll: db.Collection(colPayments)}
}

func (r *mongoPaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return insertOne(ctx, r.coll, payment)
}

func (r *mongoPaymentRepository) GetByID(ctx context.Context, id int64) (*entity.Payment, error) {
	return findByID[entity.Payment](ctx, r.coll, id)
}

func (r *mongoPaymentRepository) ExistsByReferenceCode(ctx context.Context, code string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"referenceCode": code}, options.Count().SetLimit(1))
	return n > 0, err
}

func (r *mongoPaymentRepository) ListByStatus(ctx context.Context, status entity.PaymentStatus, p utils.PaginationParams) ([]entity.Payment, error) {
	return findMany[entity.Payment](ctx, r.coll, bson.M{"status": status}, pageOptions(p))
}

type sumResult struct {
	Total int64 `bson:"total"`
}

func (r *mongoPaymentRepository) SumBySeller(ctx context.Context, sellerID int64, status entity.PaymentStatus) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"sellerId": sellerID, "status": status}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var rows []sumResult
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *mongoPaymentRepository) TransitionStatus(ctx context.Context, id int64, from, to entity.PaymentStatus, actorID int64) (*entity.Payment, error) {
	now := time.Now().UTC()
	set := bson.M{"updatedAt": now}
	switch to {
	case entity.PaymentApproved:
		set["approvedAt"] = now
		set["approvedById"] = actorID
	case entity.PaymentReleased:
		set["releasedAt"] = now
		set["releasedById"] = actorID
	}
	return transitionStatus[entity.Payment](ctx, r.coll, id, string(from), string(to), set)
}

type mongoApprovalRepository struct {
	coll *mongo.Collection
}

func NewMongoApprovalRepository(db *mongo.Database) repository.ApprovalRepository {
	return &mongoApprovalRepository{coll: db.Collection(colApprovals)}
}

// Upsert keeps one record per entity: identity fields only on insert, decision fields always.
func (r *mongoApprovalRepository) Upsert(ctx context.Context, approval *entity.Approval) (*entity.Approval, error) {
	var doc entity.Approval
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"entityType": approval.EntityType, "entityId": approval.EntityID},
		bson.M{
			"$setOnInsert": bson.M{
				"id":         approval.ID,
				"entityType": approval.EntityType,
				"entityId":   approval.EntityID,
				"createdAt":  approval.CreatedAt,
			},
			"$set": bson.M{
				"reviewerId": approval.ReviewerID,
				"decision":   approval.Decision,
				"reason":     approval.Reason,
				"updatedAt":  approval.UpdatedAt,
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, translateError(err)
	}
	return &doc, nil
}

func (r *mongoApprovalRepository) GetByEntity(ctx context.Context, entityType entity.EntityType, entityID int64) (*entity.Approval, error) {
	return findOneBy[entity.Approval](ctx, r.coll, bson.M{"entityType": entityType, "entityId": entityID})
}

func (r *mongoApprovalRepository) DeleteByEntity(ctx context.Context, entityType entity.EntityType, entityID int64) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"entityType": entityType, "entityId": entityID})
	return err
}

type mongoAuditLogRepository struct {
	coll *mongo.Collection
}

func NewMongoAuditLogRepository(db *mongo.Database) repository.AuditLogRepository {
	return &mongoAuditLogRepository{coll: db.Collection(colAuditLogs)}
}

func (r *mongoAuditLogRepository) Append(ctx context.Context, entry *entity.AuditLog) error {
	return insertOne(ctx, r.coll, entry)
}

func (r *mongoAuditLogRepository) ListByEntity(ctx context.Context, entityType entity.EntityType, entityID int64) ([]entity.AuditLog, error) {
	return findMany[entity.AuditLog](ctx, r.coll, bson.M{"entityType": entityType, "entityId": entityID},
		options.Find().SetSort(sortByIDAsc))
}
