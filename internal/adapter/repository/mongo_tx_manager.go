package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studymarket/internal/domain/repository"
	"studymarket/pkg/logger"
)

type mongoTxManager struct {
	client *mongo.Client
}

func NewMongoTxManager(client *mongo.Client) repository.TxManager {
	return &mongoTxManager{client: client}
}

// WithTransaction starts a session, runs fn inside a transaction bound to the
// session context, and commits or aborts. There is no automatic retry on
// transient errors; the caller sees the failure.
func (m *mongoTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := m.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(context.Background())

	return mongo.WithSession(ctx, session, func(sc mongo.SessionContext) error {
		if err := session.StartTransaction(); err != nil {
			return err
		}

		if err := fn(sc); err != nil {
			abortCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if abortErr := session.AbortTransaction(abortCtx); abortErr != nil {
				logger.Warn("abort transaction: %v", abortErr)
			}
			return err
		}

		return session.CommitTransaction(sc)
	})
}

type counterDocument struct {
	Name  string `bson:"_id"`
	Value int64  `bson:"value"`
}

type mongoSequenceRepository struct {
	coll *mongo.Collection
}

func NewMongoSequenceRepository(db *mongo.Database) repository.SequenceRepository {
	return &mongoSequenceRepository{coll: db.Collection(colCounters)}
}

// NextID increments the named counter in place and returns the new value,
// creating the counter at 1. The session in ctx, if any, scopes the write.
func (r *mongoSequenceRepository) NextID(ctx context.Context, name string) (int64, error) {
	var counter counterDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Value, nil
}
