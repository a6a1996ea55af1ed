package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dtroode/identitystore/internal/model"
)

// collectionAPI is the subset of *mongo.Collection used by the repository.
type collectionAPI interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

var _ model.DocumentCollection = (*DocumentRepository)(nil)

// DocumentRepository stores documents in a MongoDB collection keyed by _id.
type DocumentRepository struct {
	coll collectionAPI
	name string
}

// NewDocumentRepository wraps a MongoDB collection.
func NewDocumentRepository(coll *mongo.Collection) *DocumentRepository {
	return NewDocumentRepositoryWithAPI(coll, coll.Database().Name()+"/"+coll.Name())
}

// NewDocumentRepositoryWithAPI allows injecting a fake collection (used in tests).
func NewDocumentRepositoryWithAPI(coll collectionAPI, name string) *DocumentRepository {
	return &DocumentRepository{coll: coll, name: name}
}

func (r *DocumentRepository) Insert(ctx context.Context, doc model.Document) error {
	_, err := r.coll.InsertOne(ctx, toBSON(doc))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Replace(ctx context.Context, doc model.Document) error {
	res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: doc.ID()}}, toBSON(doc))
	if err != nil {
		return fmt.Errorf("failed to replace document: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *DocumentRepository) Get(ctx context.Context, id string) (model.Document, error) {
	var raw bson.Raw
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return fromBSON(raw)
}

func (r *DocumentRepository) Find(ctx context.Context, q model.Query) ([]model.Document, error) {
	filter := bson.D{}
	for _, c := range q.Conditions {
		filter = append(filter, bson.E{Key: c.Field, Value: c.Value})
	}

	opts := options.Find()
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer cur.Close(ctx)

	var docs []model.Document
	for cur.Next(ctx) {
		doc, err := fromBSON(cur.Current)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}

	return docs, nil
}

func (r *DocumentRepository) Address() string {
	return "mongodb:" + r.name
}

func toBSON(doc model.Document) bson.M {
	m := make(bson.M, len(doc)+1)
	for k, v := range doc {
		m[k] = v
	}
	m["_id"] = doc.ID()
	return m
}

// fromBSON converts a stored document back to its JSON shape. Stored values
// are plain JSON types, so relaxed extended JSON is plain JSON.
func fromBSON(raw bson.Raw) (model.Document, error) {
	data, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	doc, err := model.DecodeDocument(data)
	if err != nil {
		return nil, err
	}
	delete(doc, "_id")
	return doc, nil
}
