package server

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const dataCollection = "data"

// MongoStore keeps the tournament as a single document in one
// collection, stored under the "json" key. Replace relies on MongoDB's
// single-document upsert atomicity; nothing is reimplemented on top.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{
		client: client,
		coll:   client.Database(dbName).Collection(dataCollection),
	}
}

func (s *MongoStore) Load(ctx context.Context) (map[string]any, error) {
	var doc struct {
		JSON map[string]any `bson:"json"`
	}
	err := s.coll.FindOne(ctx, bson.D{}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading tournament document: %w", err)
	}
	return doc.JSON, nil
}

func (s *MongoStore) Replace(ctx context.Context, doc map[string]any) (bool, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.D{},
		bson.M{"$set": bson.M{"json": doc}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("storing tournament document: %w", err)
	}
	return res.UpsertedCount > 0, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}
