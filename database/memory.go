package database

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var errStoreClosed = errors.New("memory store is closed")

// MemoryStore keeps documents in process. Filters are equality only and
// updates understand $set, which is all BaseModel issues.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]*MemoryCollection
	closed      bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*MemoryCollection)}
}

func (s *MemoryStore) Collection(name string) Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[name]
	if !ok {
		coll = &MemoryCollection{store: s}
		s.collections[name] = coll
	}
	return coll
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.isClosed() {
		return errStoreClosed
	}
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *MemoryStore) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// MemoryCollection holds documents in insertion order, which is the natural order.
type MemoryCollection struct {
	store *MemoryStore
	mu    sync.RWMutex
	docs  []bson.M
}

func (c *MemoryCollection) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.store != nil && c.store.isClosed() {
		return errStoreClosed
	}
	return nil
}

func (c *MemoryCollection) InsertOne(ctx context.Context, document interface{}, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if err := c.check(ctx); err != nil {
		return nil, err
	}
	doc, err := toM(document)
	if err != nil {
		return nil, err
	}
	if _, ok := doc["_id"]; !ok {
		doc["_id"] = primitive.NewObjectID()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.docs {
		if reflect.DeepEqual(existing["_id"], doc["_id"]) {
			return nil, mongo.WriteException{WriteErrors: mongo.WriteErrors{{
				Index:   0,
				Code:    11000,
				Message: fmt.Sprintf("E11000 duplicate key error dup key: { _id: %v }", doc["_id"]),
			}}}
		}
	}
	c.docs = append(c.docs, doc)
	return &mongo.InsertOneResult{InsertedID: doc["_id"]}, nil
}

func (c *MemoryCollection) FindOne(ctx context.Context, filter interface{}, _ ...*options.FindOneOptions) *mongo.SingleResult {
	if err := c.check(ctx); err != nil {
		return mongo.NewSingleResultFromDocument(bson.D{}, err, nil)
	}
	f, err := toM(filter)
	if err != nil {
		return mongo.NewSingleResultFromDocument(bson.D{}, err, nil)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, doc := range c.docs {
		if matches(doc, f) {
			return mongo.NewSingleResultFromDocument(copyM(doc), nil, nil)
		}
	}
	return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
}

func (c *MemoryCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	if err := c.check(ctx); err != nil {
		return nil, err
	}
	f, err := toM(filter)
	if err != nil {
		return nil, err
	}

	var (
		sortSpec    interface{}
		skip, limit int64
	)
	for _, o := range opts {
		if o == nil {
			continue
		}
		if o.Sort != nil {
			sortSpec = o.Sort
		}
		if o.Skip != nil {
			skip = *o.Skip
		}
		if o.Limit != nil {
			limit = *o.Limit
		}
	}

	c.mu.RLock()
	matched := make([]bson.M, 0, len(c.docs))
	for _, doc := range c.docs {
		if matches(doc, f) {
			matched = append(matched, copyM(doc))
		}
	}
	c.mu.RUnlock()

	keys, err := sortKeys(sortSpec)
	if err != nil {
		return nil, err
	}
	if len(keys) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			for _, k := range keys {
				cmp := compareValues(matched[i][k.Key], matched[j][k.Key])
				if cmp != 0 {
					return cmp*k.dir < 0
				}
			}
			return false
		})
	}

	if skip > 0 {
		if skip >= int64(len(matched)) {
			matched = matched[:0]
		} else {
			matched = matched[skip:]
		}
	}
	if limit < 0 {
		limit = -limit
	}
	if limit > 0 && limit < int64(len(matched)) {
		matched = matched[:limit]
	}

	docs := make([]interface{}, len(matched))
	for i, doc := range matched {
		docs[i] = doc
	}
	return mongo.NewCursorFromDocuments(docs, nil, nil)
}

func (c *MemoryCollection) CountDocuments(ctx context.Context, filter interface{}, _ ...*options.CountOptions) (int64, error) {
	if err := c.check(ctx); err != nil {
		return 0, err
	}
	f, err := toM(filter)
	if err != nil {
		return 0, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var n int64
	for _, doc := range c.docs {
		if matches(doc, f) {
			n++
		}
	}
	return n, nil
}

func (c *MemoryCollection) UpdateOne(ctx context.Context, filter interface{}, update interface{}, _ ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	if err := c.check(ctx); err != nil {
		return nil, err
	}
	f, err := toM(filter)
	if err != nil {
		return nil, err
	}
	u, err := toM(update)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	for op, value := range u {
		if op != "$set" {
			return nil, fmt.Errorf("unsupported update operator %q", op)
		}
		if set, err = toM(value); err != nil {
			return nil, err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, doc := range c.docs {
		if !matches(doc, f) {
			continue
		}
		result := &mongo.UpdateResult{MatchedCount: 1}
		changed := false
		for k, v := range set {
			if k == "_id" {
				if !reflect.DeepEqual(doc[k], v) {
					return nil, errors.New("performing an update on the path '_id' would modify the immutable field '_id'")
				}
				continue
			}
			if current, ok := doc[k]; !ok || !reflect.DeepEqual(current, v) {
				doc[k] = v
				changed = true
			}
		}
		if changed {
			result.ModifiedCount = 1
		}
		return result, nil
	}
	return &mongo.UpdateResult{}, nil
}

func (c *MemoryCollection) DeleteOne(ctx context.Context, filter interface{}, _ ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	if err := c.check(ctx); err != nil {
		return nil, err
	}
	f, err := toM(filter)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, doc := range c.docs {
		if matches(doc, f) {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return &mongo.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &mongo.DeleteResult{}, nil
}

// toM normalises any bson-marshalable value into a bson.M so that values
// compare the same way regardless of the Go type they started as.
func toM(v interface{}) (bson.M, error) {
	if v == nil {
		return bson.M{}, nil
	}
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func copyM(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

func matches(doc, filter bson.M) bool {
	for k, want := range filter {
		if strings.HasPrefix(k, "$") {
			return false
		}
		got, ok := doc[k]
		if !ok {
			if want != nil {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

type sortKey struct {
	Key string
	dir int
}

func sortKeys(spec interface{}) ([]sortKey, error) {
	if spec == nil {
		return nil, nil
	}
	d, ok := spec.(bson.D)
	if !ok {
		return nil, fmt.Errorf("unsupported sort specification %T", spec)
	}
	keys := make([]sortKey, 0, len(d))
	for _, e := range d {
		dir := 1
		switch v := e.Value.(type) {
		case int:
			dir = v
		case int32:
			dir = int(v)
		case int64:
			dir = int(v)
		}
		if dir < 0 {
			dir = -1
		} else {
			dir = 1
		}
		keys = append(keys, sortKey{Key: e.Key, dir: dir})
	}
	return keys, nil
}

// compareValues orders values roughly the way MongoDB does: missing/null
// first, then numbers, strings, object ids, booleans and dates.
func compareValues(a, b interface{}) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return ra - rb
	}

	switch av := a.(type) {
	case nil:
		return 0
	case string:
		return strings.Compare(av, b.(string))
	case primitive.ObjectID:
		return strings.Compare(av.Hex(), b.(primitive.ObjectID).Hex())
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case primitive.DateTime:
		return compareFloat(float64(av), float64(b.(primitive.DateTime)))
	}

	fa, _ := toFloat(a)
	fb, _ := toFloat(b)
	return compareFloat(fa, fb)
}

func typeRank(v interface{}) int {
	switch v.(type) {
	case nil, primitive.Null:
		return 0
	case int32, int64, float64, int:
		return 1
	case string:
		return 2
	case primitive.ObjectID:
		return 4
	case bool:
		return 5
	case primitive.DateTime:
		return 6
	default:
		return 7
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
