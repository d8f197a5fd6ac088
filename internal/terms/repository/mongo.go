package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/termspage/termspage/internal/terms"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoDuplicateKey = 11000

// MongoRepo implements Repository on a MongoDB collection. A unique compound
// index on {lang, slug} plays the role of the SQL unique key.
type MongoRepo struct {
	client *mongo.Client
	col    *mongo.Collection
}

// NewMongoRepo ensures the indexes exist. client may be nil when the caller
// owns the connection lifecycle.
func NewMongoRepo(ctx context.Context, client *mongo.Client, col *mongo.Collection) (*MongoRepo, error) {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "lang", Value: 1}, {Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetName("terms_lang_slug")},
		{Keys: bson.D{{Key: "lang", Value: 1}}, Options: options.Index().SetName("terms_lang")},
	}
	if _, err := col.Indexes().CreateMany(ctx, models); err != nil {
		return nil, fmt.Errorf("mongo create indexes: %w", err)
	}
	return &MongoRepo{client: client, col: col}, nil
}

func (m *MongoRepo) Get(ctx context.Context, lang, slug string) (*terms.Document, error) {
	var d terms.Document
	err := m.col.FindOne(ctx, bson.M{"lang": lang, "slug": slug}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (m *MongoRepo) Count(ctx context.Context) (int64, error) {
	return m.col.CountDocuments(ctx, bson.M{})
}

// InsertIgnore runs an unordered InsertMany so one duplicate does not stop
// the remaining documents; duplicate-key write errors are then discarded.
func (m *MongoRepo) InsertIgnore(ctx context.Context, docs []terms.Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	batch := make([]interface{}, 0, len(docs))
	for _, d := range docs {
		batch = append(batch, d)
	}
	res, err := m.col.InsertMany(ctx, batch, options.InsertMany().SetOrdered(false))
	if err == nil {
		return len(res.InsertedIDs), nil
	}
	return ignoreDuplicates(len(docs), err)
}

func ignoreDuplicates(total int, err error) (int, error) {
	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) {
		return 0, err
	}
	if bwe.WriteConcernError != nil {
		return 0, err
	}
	for _, we := range bwe.WriteErrors {
		if we.Code != mongoDuplicateKey {
			return 0, err
		}
	}
	return total - len(bwe.WriteErrors), nil
}

func (m *MongoRepo) List(ctx context.Context) ([]*terms.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "lang", Value: 1}, {Key: "slug", Value: 1}})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*terms.Document{}
	for cur.Next(ctx) {
		var d terms.Document
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, cur.Err()
}

func (m *MongoRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := m.col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	return m.col.Database().Client().Ping(ctx, nil)
}

func (m *MongoRepo) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}
