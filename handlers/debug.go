package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/mseongj/seoul-transit-proxy/models"
)

// DebugCache는 현재 캐시 내용을 보여줍니다. 운영 중 확인용.
func (h *Handler) DebugCache(w http.ResponseWriter, r *http.Request) {
	snap, err := h.cache.Snapshot(r.Context())
	if err != nil {
		log.Printf("캐시 스냅샷 실패: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Message:    "Failed to read cache",
		})
		return
	}
	if b, err := json.Marshal(snap); err == nil {
		log.Printf("Cache contents: %s", b)
	}
	writeJSON(w, http.StatusOK, models.CacheResponse{Message: "Cache contents", Cache: snap})
}
