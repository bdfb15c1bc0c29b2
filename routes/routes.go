package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/mseongj/seoul-transit-proxy/handlers"
	"github.com/mseongj/seoul-transit-proxy/metrics"
)

func SetupRoutes(h *handlers.Handler, m *metrics.Collector) *mux.Router {
	router := mux.NewRouter()
	router.Use(instrument(m))

	router.HandleFunc("/", h.Root).Methods("GET")
	router.HandleFunc("/hello/{name}", h.Hello).Methods("GET")

	// 버스 API 라우트
	router.HandleFunc("/businfo/{bus_no}", h.GetBusInfo).Methods("GET")
	router.HandleFunc("/busRoute/{bus_no}", h.GetBusRoute).Methods("GET")
	router.HandleFunc("/busRealTime/{bus_no}", h.GetBusRealTime).Methods("GET")

	// 날씨 API 라우트 (경로 안에 nx=..&ny=.. 형태로 받음)
	router.HandleFunc("/api/weather/nx={nx:-?[0-9]+}&ny={ny:-?[0-9]+}", h.GetWeather).Methods("GET")
	router.HandleFunc("/api/nowcast/nx={nx:-?[0-9]+}&ny={ny:-?[0-9]+}", h.GetNowcast).Methods("GET")

	router.HandleFunc("/debug/cache", h.DebugCache).Methods("GET")
	if m != nil {
		router.Handle("/metrics", m.Handler()).Methods("GET")
	}

	return router
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument는 라우트 템플릿 기준으로 요청 수와 처리 시간을 기록합니다.
func instrument(m *metrics.Collector) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			route := "unmatched"
			if cur := mux.CurrentRoute(r); cur != nil {
				if tpl, err := cur.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			m.ObserveHTTP(route, rec.status, time.Since(start))
		})
	}
}
