package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthStatus is the latest liveness snapshot of the service's dependencies:
// the booking store plus the two Redis roles (trips are cached in-process, so
// only the general cache and the auth-token cache appear here).
type HealthStatus struct {
	Mongo      bool      `json:"mongo"`
	CacheRedis bool      `json:"cacheRedis"`
	AuthRedis  bool      `json:"authRedis"`
	CheckedAt  time.Time `json:"checkedAt"`
}

type redisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

type mongoPinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

func checkHealth(ctx context.Context, store mongoPinger, cache, auth redisPinger) HealthStatus {
	return HealthStatus{
		Mongo:      store.Ping(ctx, nil) == nil,
		CacheRedis: cache.Ping(ctx).Err() == nil,
		AuthRedis:  auth.Ping(ctx).Err() == nil,
		CheckedAt:  time.Now(),
	}
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
func StartHealthMonitor(mongoClient *mongo.Client, cacheClient, authClient *redis.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			snapshot := checkHealth(ctx, mongoClient, cacheClient, authClient)
			cancel()

			healthMu.Lock()
			currentHealth = snapshot
			healthMu.Unlock()
		}
	}()
}
