package queue

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDriver stores jobs in a Redis list so multiple processes can share
// one queue. Push is LPUSH, Pop is a blocking BRPOP with a short timeout so
// workers notice context cancellation promptly.
type RedisDriver struct {
	client *redis.Client
	key    string
}

// NewRedisDriver wraps an existing Redis client. key is the list name.
func NewRedisDriver(client *redis.Client, key string) *RedisDriver {
	if key == "" {
		key = "vanij:queue"
	}
	return &RedisDriver{client: client, key: key}
}

func (d *RedisDriver) Push(payload []byte) error {
	return d.client.LPush(context.Background(), d.key, payload).Err()
}

func (d *RedisDriver) Pop(ctx context.Context) ([]byte, error) {
	res, err := d.client.BRPop(ctx, 2*time.Second, d.key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // nothing queued
		}
		return nil, err
	}
	// BRPop returns [key, value].
	if len(res) != 2 {
		return nil, nil
	}
	return []byte(res[1]), nil
}
