package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-session-auth/pkg/helpers"
)

// Attributes is the server-side bag stored per session token. The client only
// ever holds the opaque token; everything else lives in the store.
type Attributes struct {
	UserID string `json:"user_id,omitempty"`
}

// Store maps opaque session tokens to attributes with an expiry managed by
// the backing store. Get returns (nil, nil) for missing or expired tokens.
type Store interface {
	Get(ctx context.Context, token string) (*Attributes, error)
	Set(ctx context.Context, token string, attrs *Attributes, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
}

const redisKeyPrefix = "sess:"

// RedisStore keeps sessions as JSON values under "sess:<token>".
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Attributes, error) {
	var attrs Attributes
	found, err := helpers.RedisGetJSON(ctx, s.rdb, redisKeyPrefix+token, &attrs)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &attrs, nil
}

func (s *RedisStore) Set(ctx context.Context, token string, attrs *Attributes, ttl time.Duration) error {
	return helpers.RedisSetJSON(ctx, s.rdb, redisKeyPrefix+token, attrs, ttl)
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return helpers.RedisDel(ctx, s.rdb, redisKeyPrefix+token)
}

var _ Store = (*RedisStore)(nil)
