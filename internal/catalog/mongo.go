package catalog

import (
	"context"
	"fmt"
	"time"

	mongotx "spacebook/pkg/db/mongo"
	"spacebook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SpacesCollection = "Spaces"

// MongoSource keeps the space reference data in the Spaces collection.
type MongoSource struct {
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
	timeout    time.Duration
}

func NewMongoSource(client *mongo.Client, databaseName string, timeout time.Duration) *MongoSource {
	return &MongoSource{
		collection: client.Database(databaseName).Collection(SpacesCollection),
		txManager:  mongotx.NewTransactionManager(client),
		timeout:    timeout,
	}
}

func (s *MongoSource) Load(ctx context.Context) ([]model.Space, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find spaces: %w", err)
	}
	defer cursor.Close(ctx)

	var spaces []model.Space
	if err := cursor.All(ctx, &spaces); err != nil {
		return nil, fmt.Errorf("failed to decode spaces: %w", err)
	}
	return spaces, nil
}

// Replace swaps the whole collection for spaces in one transaction, so readers
// never load a half-seeded catalog.
func (s *MongoSource) Replace(ctx context.Context, spaces []model.Space) error {
	docs := make([]any, 0, len(spaces))
	for _, space := range spaces {
		docs = append(docs, space)
	}

	return s.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if _, err := s.collection.DeleteMany(sessCtx, bson.M{}); err != nil {
			return fmt.Errorf("failed to clear spaces: %w", err)
		}
		if len(docs) == 0 {
			return nil
		}
		if _, err := s.collection.InsertMany(sessCtx, docs); err != nil {
			return fmt.Errorf("failed to insert spaces: %w", err)
		}
		return nil
	})
}
