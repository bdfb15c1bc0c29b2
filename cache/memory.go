package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/bluele/gcache"
)

// Memory는 프로세스 안에서만 유지되는 LRU 캐시입니다.
type Memory struct {
	c gcache.Cache
}

func NewMemory(size int, ttl time.Duration) *Memory {
	return newMemory(size, ttl, gcache.NewRealClock())
}

func newMemory(size int, ttl time.Duration, clock gcache.Clock) *Memory {
	return &Memory{
		c: gcache.New(size).
			LRU().
			Expiration(ttl).
			Clock(clock).
			Build(),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, err := m.c.Get(key)
	if errors.Is(err, gcache.KeyNotFoundError) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	b, ok := v.([]byte)
	return b, ok, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	// 호출자가 슬라이스를 재사용해도 캐시 값이 바뀌지 않도록 복사
	return m.c.Set(key, append([]byte(nil), value...))
}

func (m *Memory) Snapshot(context.Context) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage)
	for k, v := range m.c.GetALL(true) {
		key, ok := k.(string)
		b, ok2 := v.([]byte)
		if !ok || !ok2 {
			continue
		}
		out[key] = asRaw(b)
	}
	return out, nil
}

func (m *Memory) Close() error {
	m.c.Purge()
	return nil
}
