package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// 다른 서비스와 같은 Redis를 쓸 때 키가 섞이지 않도록 붙이는 접두사
const redisPrefix = "seoul-transit-proxy:"

// Redis는 여러 인스턴스가 공유하는 캐시입니다.
// 개수 제한은 Redis의 maxmemory 정책에 맡깁니다.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(addr, password string, db int, ttl time.Duration) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return &Redis{rdb: rdb, ttl: ttl}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.rdb.Get(ctx, redisPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.rdb.Set(ctx, redisPrefix+key, value, r.ttl).Err()
}

func (r *Redis) Snapshot(ctx context.Context) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage)
	iter := r.rdb.Scan(ctx, 0, redisPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		b, err := r.rdb.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			// 스캔 도중 만료됨
			continue
		}
		if err != nil {
			return nil, err
		}
		out[strings.TrimPrefix(k, redisPrefix)] = asRaw(b)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
