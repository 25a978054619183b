package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache 业务层使用的缓存操作
type Cache interface {
	GetValue(ctx context.Context, key string) (string, error)
	SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	DeleteKey(ctx context.Context, keys ...string) error
	TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	UnLock(ctx context.Context, key string, value interface{}) error
}

type ClientCache struct {
	rdb *redis.Client
}

func NewCache(rdb *redis.Client) Cache {
	return &ClientCache{rdb: rdb}
}

const unlockScript = "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end"

// GetValue 获取字符串类型的值，key 不存在时返回空串
func (s *ClientCache) GetValue(ctx context.Context, key string) (string, error) {
	value, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return value, err
}

// SetWithExpiration 设置键值对并设置过期时间
func (s *ClientCache) SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return s.rdb.Set(ctx, key, value, expiration).Err()
}

func (s *ClientCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key).Result()
	return n > 0, err
}

// DeleteKey 删除一个或多个键
func (s *ClientCache) DeleteKey(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}

// TryLock 尝试获取一次分布式锁
func (s *ClientCache) TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, key, value, expiration).Result()
}

// UnLock 仅当锁仍属于 value 时释放
func (s *ClientCache) UnLock(ctx context.Context, key string, value interface{}) error {
	return s.rdb.Eval(ctx, unlockScript, []string{key}, value).Err()
}
