package handlers

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/mseongj/seoul-transit-proxy/cache"
	"github.com/mseongj/seoul-transit-proxy/config"
	"github.com/mseongj/seoul-transit-proxy/metrics"
	"github.com/mseongj/seoul-transit-proxy/upstream"
)

// Handler는 모든 엔드포인트가 공유하는 의존성을 묶습니다.
type Handler struct {
	cfg     *config.Config
	client  *upstream.Client
	cache   cache.Cache
	metrics *metrics.Collector
	now     func() time.Time
}

func New(cfg *config.Config, client *upstream.Client, c cache.Cache, m *metrics.Collector) *Handler {
	if c == nil {
		c = cache.Nop{}
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		cfg:     cfg,
		client:  client,
		cache:   c,
		metrics: m,
		now:     func() time.Time { return time.Now().In(loc) },
	}
}

// cachedJSON은 캐시에 key가 있으면 out에 풀어 넣고 true를 돌려줍니다.
// 캐시 오류는 로그만 남기고 미스로 처리합니다.
func (h *Handler) cachedJSON(ctx context.Context, kind, key string, out any) bool {
	b, ok, err := h.cache.Get(ctx, key)
	if err != nil {
		log.Printf("캐시 조회 실패 (%s): %v", key, err)
	}
	if err != nil || !ok {
		h.metrics.ObserveCache(kind, false)
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		log.Printf("캐시 값 해석 실패 (%s): %v", key, err)
		h.metrics.ObserveCache(kind, false)
		return false
	}
	h.metrics.ObserveCache(kind, true)
	return true
}

func (h *Handler) storeJSON(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("캐시 값 직렬화 실패 (%s): %v", key, err)
		return
	}
	if err := h.cache.Set(ctx, key, b); err != nil {
		log.Printf("캐시 저장 실패 (%s): %v", key, err)
	}
}
