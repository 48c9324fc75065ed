package feed

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	redisKeyPrefix        = "yatube:render:"
	redisGenerationPrefix = "yatube:render-gen:"
)

// RedisRenderCache keeps one hash per feed key, one field per page, and a counter per key for the generation
type RedisRenderCache struct {
	client *redis.Client
}

func NewRedisRenderCache(client *redis.Client) *RedisRenderCache {
	return &RedisRenderCache{client: client}
}

// DialRedis connects and pings the server
func DialRedis(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func (c *RedisRenderCache) Get(ctx context.Context, key Key, page int) ([]byte, uint64, bool, error) {
	pipe := c.client.Pipeline()
	genCmd := pipe.Get(ctx, redisGenerationPrefix+string(key))
	contentCmd := pipe.HGet(ctx, redisKeyPrefix+string(key), strconv.Itoa(page))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, false, err
	}
	generation, err := genCmd.Uint64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, false, err
	}
	content, err := contentCmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, generation, false, nil
	}
	if err != nil {
		return nil, 0, false, err
	}
	return content, generation, true, nil
}

// KEYS: generation, pages. ARGV: expected generation, page, content
var putIfCurrent = redis.NewScript(`
local gen = redis.call('GET', KEYS[1]) or '0'
if gen ~= ARGV[1] then
	return 0
end
redis.call('HSET', KEYS[2], ARGV[2], ARGV[3])
return 1
`)

func (c *RedisRenderCache) Put(ctx context.Context, key Key, page int, generation uint64, content []byte) (bool, error) {
	keys := []string{redisGenerationPrefix + string(key), redisKeyPrefix + string(key)}
	stored, err := putIfCurrent.Run(ctx, c.client, keys, strconv.FormatUint(generation, 10), strconv.Itoa(page), content).Int()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

func (c *RedisRenderCache) Invalidate(ctx context.Context, key Key) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, redisGenerationPrefix+string(key))
		pipe.Del(ctx, redisKeyPrefix+string(key))
		return nil
	})
	return err
}
