package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultCollectionName = "session_kv"

// kvDoc 一个 key 一个文档。
type kvDoc struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

type KVStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewKVStore(client *mongo.Client, database, collection string) *KVStore {
	if collection == "" {
		collection = defaultCollectionName
	}
	if client == nil {
		return &KVStore{}
	}
	return &KVStore{client: client, coll: client.Database(database).Collection(collection)}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.coll == nil {
		return "", false, errors.New("mongodb session collection is nil")
	}
	var doc kvDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	switch {
	case err == nil:
		return doc.Value, true, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return "", false, nil
	default:
		return "", false, err
	}
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if s == nil || s.coll == nil {
		return errors.New("mongodb session collection is nil")
	}
	_, err := s.coll.ReplaceOne(
		ctx,
		bson.M{"_id": key},
		kvDoc{Key: key, Value: value},
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *KVStore) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
