package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-management/metrics"
	"github.com/yeremiapane/restaurant-management/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	Ascending  = 1
	Descending = -1
)

// Document is implemented by every entity stored through BaseModel.
type Document interface {
	GetID() primitive.ObjectID
	SetID(id primitive.ObjectID)
	GetPublicID() string
	SetPublicID(id string)
}

type SortField struct {
	Field     string
	Direction int
}

// FindOptions controls FindMany. A zero Limit means no limit.
type FindOptions struct {
	Skip  int64
	Limit int64
	Sort  []SortField
}

// BaseModel is the CRUD surface shared by every collection.
type BaseModel struct {
	name       string
	collection Collection
	metrics    *metrics.StoreMetrics
}

func NewBaseModel(store Store, name string, m *metrics.StoreMetrics) *BaseModel {
	return &BaseModel{
		name:       name,
		collection: store.Collection(name),
		metrics:    m,
	}
}

func (b *BaseModel) Name() string {
	return b.name
}

// IDField is the name of the human-facing identifier field, e.g. "menu_id".
func (b *BaseModel) IDField() string {
	return b.name + "_id"
}

// PublicID turns a bare internal id into "<collection>_<id>"; ids that
// already carry the prefix are returned unchanged.
func (b *BaseModel) PublicID(id string) string {
	if strings.HasPrefix(id, b.name+"_") {
		return id
	}
	return b.name + "_" + id
}

// Create assigns missing identifiers and inserts doc. It returns the internal id.
func (b *BaseModel) Create(ctx context.Context, doc Document) (id string, err error) {
	defer b.observe("create", time.Now(), &err)

	if doc.GetID().IsZero() {
		doc.SetID(primitive.NewObjectID())
	}
	if doc.GetPublicID() == "" {
		doc.SetPublicID(b.PublicID(doc.GetID().Hex()))
	}

	res, err := b.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", b.wrap("create", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

// FindOne decodes the first match into out. It reports false, nil when
// nothing matches.
func (b *BaseModel) FindOne(ctx context.Context, filter bson.M, out interface{}) (found bool, err error) {
	defer b.observe("find_one", time.Now(), &err)

	err = b.collection.FindOne(ctx, orAll(filter)).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, b.wrap("find_one", err)
	}
	return true, nil
}

// FindMany decodes every match into out, which must be a pointer to a slice.
func (b *BaseModel) FindMany(ctx context.Context, filter bson.M, opts FindOptions, out interface{}) (err error) {
	defer b.observe("find_many", time.Now(), &err)

	findOpts := options.Find()
	if len(opts.Sort) > 0 {
		sort := bson.D{}
		for _, s := range opts.Sort {
			sort = append(sort, bson.E{Key: s.Field, Value: s.Direction})
		}
		findOpts.SetSort(sort)
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := b.collection.Find(ctx, orAll(filter), findOpts)
	if err != nil {
		return b.wrap("find_many", err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return b.wrap("find_many", err)
	}
	return nil
}

func (b *BaseModel) Count(ctx context.Context, filter bson.M) (n int64, err error) {
	defer b.observe("count", time.Now(), &err)

	n, err = b.collection.CountDocuments(ctx, orAll(filter))
	if err != nil {
		return 0, b.wrap("count", err)
	}
	return n, nil
}

// UpdateOne $set-merges fields into the first match. It reports whether a
// document was actually modified.
func (b *BaseModel) UpdateOne(ctx context.Context, filter bson.M, fields interface{}) (modified bool, err error) {
	defer b.observe("update_one", time.Now(), &err)

	res, err := b.collection.UpdateOne(ctx, orAll(filter), bson.M{"$set": fields})
	if err != nil {
		return false, b.wrap("update_one", err)
	}
	return res.ModifiedCount > 0, nil
}

func (b *BaseModel) DeleteOne(ctx context.Context, filter bson.M) (deleted bool, err error) {
	defer b.observe("delete_one", time.Now(), &err)

	res, err := b.collection.DeleteOne(ctx, orAll(filter))
	if err != nil {
		return false, b.wrap("delete_one", err)
	}
	return res.DeletedCount > 0, nil
}

func (b *BaseModel) wrap(op string, err error) error {
	utils.ErrorLogger.WithFields(logrus.Fields{
		"collection": b.name,
		"op":         op,
	}).WithError(err).Error("document store operation failed")
	return &StoreError{Op: op, Collection: b.name, Err: err}
}

func (b *BaseModel) observe(op string, start time.Time, err *error) {
	b.metrics.Observe(b.name, op, start, *err)
}

func orAll(filter bson.M) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return filter
}
