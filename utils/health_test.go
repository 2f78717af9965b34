package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type stubMongo struct{ err error }

func (s stubMongo) Ping(ctx context.Context, rp *readpref.ReadPref) error { return s.err }

type stubRedis struct{ err error }

func (s stubRedis) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if s.err != nil {
		cmd.SetErr(s.err)
	}
	return cmd
}

func TestCheckHealthAllUp(t *testing.T) {
	s := checkHealth(context.Background(), stubMongo{}, stubRedis{}, stubRedis{})

	assert.True(t, s.Mongo)
	assert.True(t, s.CacheRedis)
	assert.True(t, s.AuthRedis)
	assert.False(t, s.CheckedAt.IsZero())
}

func TestCheckHealthReportsPerDependency(t *testing.T) {
	down := errors.New("connection refused")

	s := checkHealth(context.Background(), stubMongo{err: down}, stubRedis{}, stubRedis{err: down})

	assert.False(t, s.Mongo)
	assert.True(t, s.CacheRedis)
	assert.False(t, s.AuthRedis)
}
