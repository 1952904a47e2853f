package specimen

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection is the MongoDB collection holding specimens.
const Collection = "specimens"

// MongoStore stores specimens in MongoDB. Names are kept unique by an index.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri, pings the primary and ensures the unique
// name index exists.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	coll := client.Database(database).Collection(Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create name index: %w", err)
	}
	return &MongoStore{client: client, coll: coll}, nil
}

func (m *MongoStore) Get(ctx context.Context, id string) (*Specimen, error) {
	return m.findOne(ctx, bson.M{"_id": id}, id)
}

func (m *MongoStore) GetByName(ctx context.Context, name string) (*Specimen, error) {
	return m.findOne(ctx, bson.M{"name": name}, name)
}

func (m *MongoStore) findOne(ctx context.Context, filter bson.M, ref string) (*Specimen, error) {
	var sp Specimen
	err := m.coll.FindOne(ctx, filter).Decode(&sp)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(ref)
	}
	if err != nil {
		return nil, fmt.Errorf("find specimen: %w", err)
	}
	return &sp, nil
}

func (m *MongoStore) Save(ctx context.Context, sp *Specimen) error {
	if err := sp.Normalize(); err != nil {
		return err
	}
	_, err := m.coll.InsertOne(ctx, sp)
	if mongo.IsDuplicateKeyError(err) {
		return nameTaken(sp.Name)
	}
	if err != nil {
		return fmt.Errorf("insert specimen: %w", err)
	}
	return nil
}

func (m *MongoStore) List(ctx context.Context) ([]*Specimen, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "name", Value: 1}})
	cur, err := m.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list specimens: %w", err)
	}
	var out []*Specimen
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode specimens: %w", err)
	}
	return out, nil
}

func (m *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete specimen: %w", err)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

// Close disconnects the client.
func (m *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
