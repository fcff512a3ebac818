package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studymarket/pkg/logger"
)

type collectionIndexes struct {
	collection string
	models     []mongo.IndexModel
}

func unique(keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetUnique(true)}
}

func plain(keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys}
}

// indexSpecs lists every index the repositories rely on, unique constraints first.
func indexSpecs() []collectionIndexes {
	byID := unique(bson.D{{Key: "id", Value: 1}})

	return []collectionIndexes{
		{"users", []mongo.IndexModel{byID, unique(bson.D{{Key: "email", Value: 1}})}},
		{"courses", []mongo.IndexModel{byID, unique(bson.D{{Key: "code", Value: 1}})}},
		{"teachers", []mongo.IndexModel{byID, unique(bson.D{{Key: "name", Value: 1}})}},
		{"course_teachers", []mongo.IndexModel{byID, unique(bson.D{{Key: "courseId", Value: 1}, {Key: "teacherId", Value: 1}})}},
		{"study_sheets", []mongo.IndexModel{byID,
			plain(bson.D{{Key: "status", Value: 1}, {Key: "courseCode", Value: 1}}),
			plain(bson.D{{Key: "ownerId", Value: 1}}),
		}},
		{"approvals", []mongo.IndexModel{byID, unique(bson.D{{Key: "entityType", Value: 1}, {Key: "entityId", Value: 1}})}},
		{"purchases", []mongo.IndexModel{byID,
			unique(bson.D{{Key: "studySheetId", Value: 1}, {Key: "buyerId", Value: 1}}),
			plain(bson.D{{Key: "buyerId", Value: 1}}),
		}},
		{"payments", []mongo.IndexModel{byID,
			unique(bson.D{{Key: "purchaseId", Value: 1}}),
			unique(bson.D{{Key: "referenceCode", Value: 1}}),
			plain(bson.D{{Key: "sellerId", Value: 1}, {Key: "status", Value: 1}}),
		}},
		{"lease_listings", []mongo.IndexModel{byID, plain(bson.D{{Key: "status", Value: 1}}), plain(bson.D{{Key: "ownerId", Value: 1}})}},
		{"interest_requests", []mongo.IndexModel{byID, unique(bson.D{{Key: "leaseListingId", Value: 1}, {Key: "studentId", Value: 1}})}},
		{"reviews", []mongo.IndexModel{byID,
			unique(bson.D{{Key: "studentId", Value: 1}, {Key: "courseId", Value: 1}}),
			plain(bson.D{{Key: "courseId", Value: 1}, {Key: "status", Value: 1}}),
		}},
		{"review_votes", []mongo.IndexModel{byID, unique(bson.D{{Key: "reviewId", Value: 1}, {Key: "voterId", Value: 1}})}},
		{"review_history", []mongo.IndexModel{byID, plain(bson.D{{Key: "reviewId", Value: 1}})}},
		{"teacher_reviews", []mongo.IndexModel{byID,
			plain(bson.D{{Key: "studentId", Value: 1}, {Key: "courseId", Value: 1}, {Key: "normalizedName", Value: 1}}),
			plain(bson.D{{Key: "courseId", Value: 1}, {Key: "status", Value: 1}}),
		}},
		{"teacher_review_votes", []mongo.IndexModel{byID, unique(bson.D{{Key: "teacherReviewId", Value: 1}, {Key: "voterId", Value: 1}})}},
		{"teacher_review_history", []mongo.IndexModel{byID, plain(bson.D{{Key: "teacherReviewId", Value: 1}})}},
		{"reports", []mongo.IndexModel{byID,
			{
				Keys: bson.D{{Key: "reporterId", Value: 1}, {Key: "targetType", Value: 1}, {Key: "targetId", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"status": "PENDING"}).
					SetName("uniq_pending_report"),
			},
			plain(bson.D{{Key: "targetType", Value: 1}, {Key: "targetId", Value: 1}, {Key: "status", Value: 1}}),
		}},
		{"withdrawal_requests", []mongo.IndexModel{byID, plain(bson.D{{Key: "status", Value: 1}}), plain(bson.D{{Key: "sellerId", Value: 1}})}},
		{"audit_logs", []mongo.IndexModel{byID, plain(bson.D{{Key: "entityType", Value: 1}, {Key: "entityId", Value: 1}})}},
	}
}

// EnsureIndexes creates every index in indexSpecs. Existing identical indexes are left alone.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, ci := range indexSpecs() {
		names, err := db.Collection(ci.collection).Indexes().CreateMany(ctx, ci.models)
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", ci.collection, err)
		}
		logger.Info("Indexes ready on %s: %v", ci.collection, names)
	}
	return nil
}
