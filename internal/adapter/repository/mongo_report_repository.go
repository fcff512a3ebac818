package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
	"studymarket/pkg/utils"
)

type mongoReportRepository struct {
	coll *mongo.Collection
}

func NewMongoReportRepository(db *mongo.Database) repository.ReportRepository {
	return &mongoReportRepository{coll: db.Collection(colReports)}
}

// Create relies on the partial unique index over pending reports to reject a
// second open report from the same reporter.
func (r *mongoReportRepository) Create(ctx context.Context, report *entity.Report) error {
	return insertOne(ctx, r.coll, report)
}

func (r *mongoReportRepository) GetByID(ctx context.Context, id int64) (*entity.Report, error) {
	return findByID[entity.Report](ctx, r.coll, id)
}

func (r *mongoReportRepository) FindPending(ctx context.Context, reporterID int64, targetType entity.ReportTargetType, targetID int64) (*entity.Report, error) {
	return findOneBy[entity.Report](ctx, r.coll, bson.M{
		"reporterId": reporterID,
		"targetType": targetType,
		"targetId":   targetID,
		"status":     entity.ReportPending,
	})
}

func (r *mongoReportRepository) ListByStatus(ctx context.Context, status entity.ReportStatus, p utils.PaginationParams) ([]entity.Report, error) {
	return findMany[entity.Report](ctx, r.coll, bson.M{"status": status}, pageOptions(p))
}

func resolutionFields(actorID int64, at time.Time) bson.M {
	return bson.M{
		"resolvedById": actorID,
		"resolvedAt":   at,
		"updatedAt":    at,
	}
}

func (r *mongoReportRepository) TransitionStatus(ctx context.Context, id int64, from, to entity.ReportStatus, actorID int64) (*entity.Report, error) {
	return transitionStatus[entity.Report](ctx, r.coll, id, string(from), string(to), resolutionFields(actorID, time.Now().UTC()))
}

func (r *mongoReportRepository) ResolvePendingForTarget(ctx context.Context, targetType entity.ReportTargetType, targetID int64, actorID int64) (int64, error) {
	set := resolutionFields(actorID, time.Now().UTC())
	set["status"] = entity.ReportResolved

	res, err := r.coll.UpdateMany(ctx,
		bson.M{"targetType": targetType, "targetId": targetID, "status": entity.ReportPending},
		bson.M{"$set": set},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *mongoReportRepository) DeleteByTarget(ctx context.Context, targetType entity.ReportTargetType, targetID int64) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"targetType": targetType, "targetId": targetID})
	return err
}
