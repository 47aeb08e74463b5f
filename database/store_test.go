package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     StoreConfig
		wantErr bool
	}{
		{"memory", StoreConfig{Driver: DriverMemory}, false},
		{"unknown driver", StoreConfig{Driver: "cassandra"}, true},
		{"mongo without host", StoreConfig{Driver: DriverMongo, DBName: "restaurant"}, true},
		{"mongo without db name", StoreConfig{Driver: DriverMongo, Host: "mongodb://localhost:27017"}, true},
		{"mongo with bad uri", StoreConfig{Driver: DriverMongo, Host: "not-a-uri", DBName: "restaurant"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(ctx, tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, store)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, store.Ping(ctx))
		})
	}
}

func TestConnect_Singleton(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, Close(ctx))
	assert.Nil(t, Get())

	first, err := Connect(ctx, StoreConfig{Driver: DriverMemory})
	require.NoError(t, err)
	second, err := Connect(ctx, StoreConfig{Driver: DriverMemory})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, first, Get())

	require.NoError(t, Close(ctx))
	assert.Nil(t, Get())
	assert.NoError(t, Close(ctx), "closing twice is a no-op")

	assert.Error(t, first.Ping(ctx))
}

func TestConnect_FailureLeavesNoInstance(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, Close(ctx))

	_, err := Connect(ctx, StoreConfig{Driver: DriverMongo})
	require.Error(t, err)
	assert.Nil(t, Get())
}

func TestMemoryStore_CollectionsAreShared(t *testing.T) {
	store := NewMemoryStore()
	assert.Same(t, store.Collection("menu"), store.Collection("menu"))
	assert.NotSame(t, store.Collection("menu"), store.Collection("food"))
}
