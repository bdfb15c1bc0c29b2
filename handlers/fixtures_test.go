package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/mseongj/seoul-transit-proxy/cache"
	"github.com/mseongj/seoul-transit-proxy/config"
	"github.com/mseongj/seoul-transit-proxy/upstream"
)

// fakeUpstream은 서울 버스 API와 기상청 API를 흉내 냅니다.
type fakeUpstream struct {
	*httptest.Server
	stationCalls  atomic.Int32
	positionCalls atomic.Int32
	weatherCalls  atomic.Int32
}

func wrapItems(items ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?><ServiceResult><msgHeader><headerCd>0</headerCd></msgHeader><msgBody>` +
		strings.Join(items, "") + `</msgBody></ServiceResult>`
}

func station(section, direction string) string {
	if direction == "" {
		return fmt.Sprintf(`<itemList><section>%s</section><direction></direction></itemList>`, section)
	}
	return fmt.Sprintf(`<itemList><section>%s</section><direction>%s</direction></itemList>`, section, direction)
}

func position(vehID, section string) string {
	if section == "" {
		return fmt.Sprintf(`<itemList><vehId>%s</vehId></itemList>`, vehID)
	}
	return fmt.Sprintf(`<itemList><vehId>%s</vehId><sectionId>%s</sectionId></itemList>`, vehID, section)
}

func newFakeUpstream() *fakeUpstream {
	f := &fakeUpstream{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("serviceKey") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("SERVICE_KEY_IS_NOT_REGISTERED_ERROR"))
			return
		}
		route := q.Get("busRouteId")

		switch r.URL.Path {
		case busRouteListPath:
			if q.Get("strSrch") == "broken" {
				w.Write([]byte("<ServiceResult><msgBody>"))
				return
			}
			w.Write([]byte(wrapItems(
				`<itemList><busRouteId>100100118</busRouteId><busRouteNm>`+q.Get("strSrch")+`</busRouteNm></itemList>`,
				`<itemList><busRouteId>100100119</busRouteId><busRouteNm>`+q.Get("strSrch")+`A</busRouteNm></itemList>`,
			)))

		case busStationsPath:
			f.stationCalls.Add(1)
			switch route {
			case "down", "dead":
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte("station service down"))
			default:
				w.Write([]byte(wrapItems(
					station("1", "홍대입구역"),
					station("2", "여의도"),
					station("2", "홍대입구역"),
					station("3", ""),
					station("4", "홍대입구역 "),
				)))
			}

		case busPositionsPath:
			f.positionCalls.Add(1)
			switch route {
			case "gone":
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("no such route"))
			case "dead":
				// 정류장 쪽이 먼저 실패하도록 늦게 응답
				time.Sleep(50 * time.Millisecond)
				w.WriteHeader(http.StatusGone)
				w.Write([]byte("route retired"))
			default:
				w.Write([]byte(wrapItems(
					position("a", "1"),
					position("b", "2"),
					position("c", "3"),
					position("d", "99"),
					position("e", ""),
					position("f", "4"),
				)))
			}

		case "/getUltraSrtFcst", "/getUltraSrtNcst":
			f.weatherCalls.Add(1)
			if q.Get("nx") == "0" {
				w.Write([]byte(`{"response":{"header":{"resultCode":"03","resultMsg":"NO_DATA"}}}`))
				return
			}
			fmt.Fprintf(w, `{"response":{"header":{"resultCode":"00"},"body":{"dataType":"JSON","items":{"item":[{"baseDate":%q,"baseTime":%q,"nx":%s,"ny":%s,"path":%q}]}}}}`,
				q.Get("base_date"), q.Get("base_time"), q.Get("nx"), q.Get("ny"), r.URL.Path)

		default:
			http.NotFound(w, r)
		}
	}))
	return f
}

func newTestHandler(f *fakeUpstream, c cache.Cache) *Handler {
	cfg := config.Defaults()
	cfg.APIKey = "test-key"
	cfg.BusBaseURL = f.URL
	cfg.WeatherBaseURL = f.URL
	cfg.Location = kst
	h := New(cfg, upstream.NewClient(cfg.APIKey, 2*time.Second, nil), c, nil)
	h.now = func() time.Time { return at(19, 14, 10) }
	return h
}

func serve(fn http.HandlerFunc, vars map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = mux.SetURLVars(req, vars)
	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}
