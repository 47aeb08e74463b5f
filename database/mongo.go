package database

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-management/utils"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultConnectTimeout = 10 * time.Second

type mongoStore struct {
	client *mongo.Client
	db     *mongo.Database

	closeOnce sync.Once
	closeErr  error
}

func openMongo(ctx context.Context, cfg StoreConfig) (Store, error) {
	if cfg.Host == "" {
		return nil, errors.New("mongodb host is required")
	}
	if cfg.DBName == "" {
		return nil, errors.New("mongodb database name is required")
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Host))
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("Failed to connect to MongoDB")
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		utils.ErrorLogger.WithError(err).Error("Failed to ping MongoDB")
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"database": cfg.DBName,
	}).Info("Connected to MongoDB successfully")

	return &mongoStore{
		client: client,
		db:     client.Database(cfg.DBName),
	}, nil
}

func (s *mongoStore) Collection(name string) Collection {
	return s.db.Collection(name)
}

func (s *mongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *mongoStore) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.closeErr = s.client.Disconnect(ctx)
	})
	return s.closeErr
}
