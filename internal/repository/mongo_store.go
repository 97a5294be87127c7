package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type kvDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoStore keeps each key as a document whose _id is the key
type MongoStore struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewMongoStore creates a MongoStore on an existing collection
func NewMongoStore(coll *mongo.Collection, logger *zap.Logger) *MongoStore {
	return &MongoStore{
		coll:   coll,
		logger: logger,
	}
}

// Get retrieves the document for key
func (s *MongoStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	var doc kvDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", false, nil
		}
		s.logger.Error("failed to find key", zap.Error(err), zap.String("key", key))
		return "", false, fmt.Errorf("failed to find key %s: %w", key, err)
	}

	return doc.Value, true, nil
}

// Set upserts the document for key
func (s *MongoStore) Set(ctx context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	doc := kvDocument{Key: key, Value: value, UpdatedAt: time.Now().UTC()}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		s.logger.Error("failed to upsert key", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("failed to upsert key %s: %w", key, err)
	}

	return nil
}

// Delete removes the document for key
func (s *MongoStore) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}

	return nil
}
