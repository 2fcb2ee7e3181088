package database

import (
	"context"
	"testing"
	"time"

	"utsavdarshan/config"
	"utsavdarshan/internal/domain"
	"utsavdarshan/internal/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	d, err := Dialector(&config.StoreConfig{Driver: domain.StoreMySQL, DSN: "u:p@tcp(localhost:3306)/db"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = Dialector(&config.StoreConfig{Driver: domain.StorePostgres, DSN: "host=localhost dbname=db"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = Dialector(&config.StoreConfig{Driver: domain.StoreMongo})
	assert.Error(t, err)
}

func TestNewDBRequiresDSN(t *testing.T) {
	_, err := NewDB(&config.StoreConfig{Driver: domain.StorePostgres})
	assert.ErrorContains(t, err, "DATABASE_DSN")
}

func TestOpenStore(t *testing.T) {
	st, err := OpenStore(context.Background(), &config.StoreConfig{Driver: domain.StoreMemory})
	require.NoError(t, err)
	assert.IsType(t, &memstore.Store{}, st)
	assert.NoError(t, st.Ping(context.Background()))

	_, err = OpenStore(context.Background(), &config.StoreConfig{Driver: "cassandra"})
	assert.ErrorContains(t, err, "unknown store driver")
}

func TestMongoClientOptions(t *testing.T) {
	opts := mongoClientOptions(&config.StoreConfig{MongoURI: "mongodb://localhost:27017/?retryWrites=true"})
	require.NotNil(t, opts.RetryWrites)
	assert.False(t, *opts.RetryWrites)
	require.NotNil(t, opts.RetryReads)
	assert.True(t, *opts.RetryReads)
	require.NotNil(t, opts.ConnectTimeout)
	assert.Equal(t, 15*time.Second, *opts.ConnectTimeout)
	assert.Equal(t, uint64(1), *opts.MaxPoolSize)
}
