package mpesa

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const tokenKey = "mparcel:mpesa:access_token"

// TokenStore caches short-lived Daraja access tokens between requests.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string, ttl time.Duration) error
}

// RedisTokenStore keeps the access token in Redis so that all app instances
// share one token and we stay under the Daraja auth rate limits.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Get(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, tokenKey).Result()
	if err == redis.Nil {
		return "", nil
	}

	if err != nil {
		return "", err
	}

	return token, nil
}

func (s *RedisTokenStore) Set(ctx context.Context, token string, ttl time.Duration) error {
	return s.client.Set(ctx, tokenKey, token, ttl).Err()
}
