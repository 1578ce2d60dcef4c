package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Sessions are short-lived; an unanswered question expires on its own.
const redisSessionTTL = 30 * time.Minute

// RedisStore keeps quiz sessions in Redis so they survive process restarts
// and can be shared across replicas. Consume uses GETDEL for atomicity.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, key Key, choices []string) error {
	data, err := json.Marshal(choices)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key.String(), data, redisSessionTTL).Err()
}

func (s *RedisStore) Consume(ctx context.Context, key Key) ([]string, bool, error) {
	data, err := s.client.GetDel(ctx, key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var choices []string
	if err := json.Unmarshal(data, &choices); err != nil {
		return nil, false, err
	}
	return choices, true, nil
}
