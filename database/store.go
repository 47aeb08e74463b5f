package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// StoreConfig is read once at process start.
type StoreConfig struct {
	Driver         string
	Host           string
	DBName         string
	ConnectTimeout time.Duration
}

// Collection is the subset of *mongo.Collection used by BaseModel.
type Collection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// Store is a live connection to a document database.
type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

var (
	current Store
	mu      sync.Mutex
)

// Open creates a new store for cfg without touching the process-wide instance.
func Open(ctx context.Context, cfg StoreConfig) (Store, error) {
	switch cfg.Driver {
	case DriverMongo, "":
		return openMongo(ctx, cfg)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// Connect returns the process-wide store, opening it on first use.
func Connect(ctx context.Context, cfg StoreConfig) (Store, error) {
	mu.Lock()
	defer mu.Unlock()

	if current != nil {
		return current, nil
	}

	store, err := Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	current = store
	return current, nil
}

// Get returns the process-wide store, or nil before Connect.
func Get() Store {
	mu.Lock()
	defer mu.Unlock()
	return current
}

// Close tears down the process-wide store. Calling it again is a no-op.
func Close(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()

	if current == nil {
		return nil
	}
	err := current.Close(ctx)
	current = nil
	return err
}
