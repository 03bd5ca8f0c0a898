package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ScanGate allows one admission attempt in flight per key.
type ScanGate interface {
	// Acquire returns a token when the gate was free; ok is false when it is held.
	Acquire(ctx context.Context, key string) (token string, ok bool, err error)
	// Release frees the gate if token still owns it.
	Release(ctx context.Context, key, token string) error
}

var releaseGateScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisScanGate is a SET NX lock. The TTL bounds how long a crashed request
// can keep a user blocked.
type RedisScanGate struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisScanGate(rdb *redis.Client, ttl time.Duration) *RedisScanGate {
	return &RedisScanGate{rdb: rdb, ttl: ttl}
}

func (g *RedisScanGate) Acquire(ctx context.Context, key string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := g.rdb.SetNX(ctx, key, token, g.ttl).Result()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (g *RedisScanGate) Release(ctx context.Context, key, token string) error {
	return releaseGateScript.Run(ctx, g.rdb, []string{key}, token).Err()
}
