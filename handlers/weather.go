package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/mseongj/seoul-transit-proxy/models"
)

// 초단기예보 응답은 6시간 x 10개 항목이라 1000이면 한 페이지에 다 들어옴
const weatherNumOfRows = "1000"

type weatherVariant struct {
	name string
	path string
	base BasePolicy
}

var (
	ultraShortForecast = weatherVariant{name: "ultraSrtFcst", path: "/getUltraSrtFcst", base: UltraShortForecastBase}
	ultraShortNowcast  = weatherVariant{name: "ultraSrtNcst", path: "/getUltraSrtNcst", base: UltraShortNowcastBase}
)

// GetWeather는 격자 (nx, ny)의 초단기예보 items를 그대로 돌려줍니다.
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	h.serveWeather(w, r, ultraShortForecast)
}

// GetNowcast는 격자 (nx, ny)의 초단기실황 items를 그대로 돌려줍니다.
func (h *Handler) GetNowcast(w http.ResponseWriter, r *http.Request) {
	h.serveWeather(w, r, ultraShortNowcast)
}

func (h *Handler) serveWeather(w http.ResponseWriter, r *http.Request, v weatherVariant) {
	vars := mux.Vars(r)
	nx, errX := strconv.Atoi(vars["nx"])
	ny, errY := strconv.Atoi(vars["ny"])
	if errX != nil || errY != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "nx and ny must be integers",
		})
		return
	}

	start := time.Now()
	items, err := h.weatherItems(r.Context(), v, h.now(), nx, ny)
	if err != nil {
		writeError(w, err)
		return
	}
	log.Printf("날씨 데이터 요청 처리 시간: %v", time.Since(start))
	writeJSON(w, http.StatusOK, items)
}

// weatherItems는 발표 시각을 계산해 해당 슬롯의 items를 가져옵니다.
// 같은 슬롯의 결과는 바뀌지 않으므로 캐시합니다.
func (h *Handler) weatherItems(ctx context.Context, v weatherVariant, now time.Time, nx, ny int) (json.RawMessage, error) {
	base := v.base(now)
	key := fmt.Sprintf("weather:%s:%s:%s:%d:%d", v.name, base.Date, base.Time, nx, ny)

	var items json.RawMessage
	if h.cachedJSON(ctx, "weather", key, &items) {
		return items, nil
	}

	items, err := h.client.GetWeatherItems(ctx, v.name, h.cfg.WeatherBaseURL+v.path, url.Values{
		"pageNo":    {"1"},
		"numOfRows": {weatherNumOfRows},
		"dataType":  {"JSON"},
		"base_date": {base.Date},
		"base_time": {base.Time},
		"nx":        {strconv.Itoa(nx)},
		"ny":        {strconv.Itoa(ny)},
	})
	if err != nil {
		return nil, err
	}
	h.storeJSON(ctx, key, items)
	return items, nil
}
