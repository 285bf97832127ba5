package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mgerrors "github.com/matzehuels/modelgraph/pkg/errors"
	mgio "github.com/matzehuels/modelgraph/pkg/io"
	"github.com/matzehuels/modelgraph/pkg/model"
)

// Defaults for [MongoConfig].
const (
	DefaultMongoDatabase   = "modelgraph"
	DefaultMongoCollection = "snapshots"
)

// MongoConfig configures [NewMongoStore].
type MongoConfig struct {
	URI        string
	Database   string // defaults to DefaultMongoDatabase
	Collection string // defaults to DefaultMongoCollection
}

// MongoStore keeps one record per environment, keyed by environment id.
// The document is stored as its JSON export.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

type record struct {
	ID       string    `bson:"_id"`
	Document []byte    `bson:"document,omitempty"`
	Size     int64     `bson:"size"`
	SavedAt  time.Time `bson:"saved_at"`
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, mgerrors.New(mgerrors.ErrCodeInvalidConfig, "snapshot.mongo_uri is required for the mongo backend")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Save(ctx context.Context, env string, doc model.Document) error {
	if err := mgerrors.ValidateEnvironmentID(env); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := mgio.WriteDocument(doc, &buf); err != nil {
		return err
	}

	rec := record{ID: env, Document: buf.Bytes(), Size: int64(buf.Len()), SavedAt: time.Now().UTC()}
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": env}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", env, err)
	}
	return nil
}

func (s *MongoStore) Load(ctx context.Context, env string) (model.Document, error) {
	if err := mgerrors.ValidateEnvironmentID(env); err != nil {
		return model.Document{}, err
	}
	var rec record
	err := s.collection.FindOne(ctx, bson.M{"_id": env}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Document{}, notFound(env)
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("load snapshot %s: %w", env, err)
	}
	return mgio.DecodeDocument(rec.Document)
}

func (s *MongoStore) List(ctx context.Context) ([]Info, error) {
	opts := options.Find().
		SetProjection(bson.M{"document": 0}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	var recs []record
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	out := make([]Info, len(recs))
	for i, r := range recs {
		out[i] = Info{EnvironmentID: r.ID, SavedAt: r.SavedAt, Size: r.Size}
	}
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, env string) error {
	if err := mgerrors.ValidateEnvironmentID(env); err != nil {
		return err
	}
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": env}); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", env, err)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
