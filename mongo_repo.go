package feed

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoKeyValueStore struct {
	collection *mongo.Collection
}

type dbValue struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

func NewMongoKeyValueStore(c *mongo.Collection) KeyValueStore {
	return &mongoKeyValueStore{collection: c}
}

func (m *mongoKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	var v dbValue
	sr := m.collection.FindOne(ctx, bson.M{"_id": key})

	if sr.Err() == mongo.ErrNoDocuments {
		return "", ErrKeyNotFound
	}

	if err := sr.Decode(&v); err != nil {
		return "", err
	}
	return v.Value, nil
}

func (m *mongoKeyValueStore) Set(ctx context.Context, key, value string) error {
	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": key}, dbValue{Key: key, Value: value}, options.Replace().SetUpsert(true))
	return err
}

func (m *mongoKeyValueStore) Close() error {
	return m.collection.Database().Client().Disconnect(context.Background())
}
