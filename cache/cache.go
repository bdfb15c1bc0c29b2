package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mseongj/seoul-transit-proxy/config"
)

// Cache는 JSON 값을 TTL과 함께 보관하는 저장소입니다.
// 모든 구현은 동시에 사용해도 안전합니다.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Snapshot은 만료되지 않은 항목 전체를 돌려줍니다. (/debug/cache 용)
	Snapshot(ctx context.Context) (map[string]json.RawMessage, error)
	Close() error
}

// Open은 설정된 백엔드로 캐시를 만듭니다.
func Open(cfg config.CacheConfig) (Cache, error) {
	var (
		c   Cache
		err error
	)
	switch cfg.Backend {
	case "memory", "":
		c = NewMemory(cfg.Size, cfg.TTL)
	case "redis":
		c, err = NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.TTL)
	case "sqlite":
		c, err = NewSQLite(cfg.SQLitePath, cfg.Size, cfg.TTL)
	case "none":
		c = Nop{}
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", cfg.Backend, err)
	}
	log.Printf("캐시 백엔드: %s (TTL %v, 최대 %d개)", cfg.Backend, cfg.TTL, cfg.Size)
	return c, nil
}

// 저장된 값이 JSON이 아니면 문자열로 감싸서 스냅샷에 넣음
func asRaw(v []byte) json.RawMessage {
	if json.Valid(v) {
		return json.RawMessage(v)
	}
	b, _ := json.Marshal(string(v))
	return b
}

// Nop은 아무것도 저장하지 않는 캐시입니다.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Nop) Set(context.Context, string, []byte) error { return nil }
func (Nop) Close() error { return nil }

func (Nop) Snapshot(context.Context) (map[string]json.RawMessage, error) {
	return map[string]json.RawMessage{}, nil
}
