package snapshot

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/chidanandgowda/huffman-coding/pkg/errors"
	"github.com/chidanandgowda/huffman-coding/pkg/render"
)

// Default Mongo names for the snapshot collection.
const (
	DefaultDatabase   = "huffview"
	DefaultCollection = "snapshots"
)

// MongoStore persists snapshots in a MongoDB collection, keyed by the
// document's id field. Intended for shared deployments where several
// huffview instances serve the same snapshots.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and pings it before
// returning. Empty database or collection names fall back to the
// defaults.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	if database == "" {
		database = DefaultDatabase
	}
	if collection == "" {
		collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Get retrieves a snapshot by ID, nil when missing.
func (s *MongoStore) Get(ctx context.Context, id string) (*render.Document, error) {
	if err := apperrors.ValidateSnapshotID(id); err != nil {
		return nil, err
	}

	var doc render.Document
	err := s.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find snapshot %s: %w", id, err)
	}
	return &doc, nil
}

// Put stores a snapshot, upserting on the id field.
func (s *MongoStore) Put(ctx context.Context, doc *render.Document) error {
	if err := apperrors.ValidateSnapshotID(doc.ID); err != nil {
		return err
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"id": doc.ID}, doc, opts); err != nil {
		return fmt.Errorf("store snapshot %s: %w", doc.ID, err)
	}
	return nil
}

// Delete removes a snapshot; missing IDs are not an error.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := apperrors.ValidateSnapshotID(id); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", id, err)
	}
	return nil
}

// List returns summaries of all snapshots, newest first.
func (s *MongoStore) List(ctx context.Context) ([]Info, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	var infos []Info
	for cursor.Next(ctx) {
		var doc render.Document
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
		infos = append(infos, infoOf(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return infos, nil
}

// Close disconnects the Mongo client.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
