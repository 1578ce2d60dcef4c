package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{client: client}, nil
}

// Client exposes the underlying connection for the quiz session store.
func (c *RedisCache) Client() *redis.Client {
	return c.client
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// WordOfTheDayKey is the cache key for a given calendar day, so every user
// sees the same word until the date rolls over.
func WordOfTheDayKey(day time.Time) string {
	return "wotd:" + day.Format("2006-01-02")
}

// GetWordOfTheDay returns the cached word id for the day, if any.
func (c *RedisCache) GetWordOfTheDay(ctx context.Context, day time.Time) (int64, bool) {
	val, err := c.client.Get(ctx, WordOfTheDayKey(day)).Result()
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// SetWordOfTheDay caches the day's word id until two days out, which covers
// timezone skew around midnight.
func (c *RedisCache) SetWordOfTheDay(ctx context.Context, day time.Time, wordID int64) error {
	return c.client.Set(ctx, WordOfTheDayKey(day), strconv.FormatInt(wordID, 10), 48*time.Hour).Err()
}
