package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultMongoDatabase is used when [MongoConfig.Database] is empty.
const DefaultMongoDatabase = "gridboard"

const boardsCollection = "boards"

// MongoConfig configures a [MongoStore].
type MongoConfig struct {
	URI      string
	Database string
}

// MongoStore keeps one document per board, keyed by a unique name index.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	retry  Backoff
}

// NewMongoStore connects to MongoDB and ensures the name index exists.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	db := cfg.Database
	if db == "" {
		db = DefaultMongoDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	coll := client.Database(db).Collection(boardsCollection)

	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create board index: %w", err)
	}
	return &MongoStore{client: client, coll: coll, retry: newBackoff(mongoTransient)}, nil
}

func (s *MongoStore) Get(ctx context.Context, name string) (*Record, error) {
	var rec Record
	err := s.retry.Do(ctx, func() error {
		return s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&rec)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", name, err)
	}
	return &rec, nil
}

func (s *MongoStore) Set(ctx context.Context, rec *Record) error {
	opts := options.Replace().SetUpsert(true)
	err := s.retry.Do(ctx, func() error {
		_, err := s.coll.ReplaceOne(ctx, bson.M{"name": rec.Name}, rec, opts)
		return err
	})
	if err != nil {
		return fmt.Errorf("mongo replace %s: %w", rec.Name, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"name": name}); err != nil {
		return fmt.Errorf("mongo delete %s: %w", name, err)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"name": 1, "_id": 0}).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	var docs []struct {
		Name string `bson:"name"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo decode: %w", err)
	}

	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return names, nil
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

// mongoTransient reports network failures and timeouts.
func mongoTransient(err error) bool {
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err)
}

var _ Store = (*MongoStore)(nil)
