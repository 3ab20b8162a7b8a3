package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/bidmarket/goapi/base/ctx"
)

// Forever means the key is stored without an expiration.
const Forever = time.Duration(-1)

var (
	// ErrNotFound is returned when the key does not exist.
	// It aliases redigo's nil reply error.
	ErrNotFound = redis.ErrNil

	// ErrNoTTL is returned by TTL when the key exists but has no expire set.
	ErrNoTTL = errors.New("redis: key has no associated expire")

	// ErrGapTime is returned when no pool can serve the command.
	ErrGapTime = errors.New("redis: no pool available")
)

// Service wraps the redis commands used by the cache providers and the
// health check.
type Service interface {
	Get(context ctx.Ctx, key string) (val []byte, err error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, ks ...string) (int, error)
	Exists(context ctx.Ctx, key string) (bool, error)
	Incrby(context ctx.Ctx, key string, val int) (int64, error)
	TTL(context ctx.Ctx, key string) (int, error)
}
