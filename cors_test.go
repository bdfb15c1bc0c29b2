package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEnableCORS(t *testing.T) {
	Convey("Given the CORS middleware with the default origins", t, func() {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})
		h := enableCORS([]string{"http://localhost:8080", "http://127.0.0.1:5500/"}, next)

		Convey("an allowed origin is echoed with credentials", func() {
			req := httptest.NewRequest(http.MethodGet, "/businfo/273", nil)
			req.Header.Set("Origin", "http://127.0.0.1:5500")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusTeapot)
			So(rec.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "http://127.0.0.1:5500")
			So(rec.Header().Get("Access-Control-Allow-Credentials"), ShouldEqual, "true")
		})

		Convey("an unknown origin gets no CORS headers", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", "http://evil.example")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusTeapot)
			So(rec.Header().Get("Access-Control-Allow-Origin"), ShouldBeEmpty)
		})

		Convey("a preflight is answered directly and reflects the headers", func() {
			req := httptest.NewRequest(http.MethodOptions, "/busRoute/1", nil)
			req.Header.Set("Origin", "http://localhost:8080")
			req.Header.Set("Access-Control-Request-Method", "GET")
			req.Header.Set("Access-Control-Request-Headers", "x-custom, content-type")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Header().Get("Access-Control-Allow-Headers"), ShouldEqual, "x-custom, content-type")
			So(rec.Header().Get("Access-Control-Allow-Methods"), ShouldContainSubstring, "GET")
		})

		Convey("a preflight from an unknown origin is refused", func() {
			req := httptest.NewRequest(http.MethodOptions, "/", nil)
			req.Header.Set("Origin", "http://evil.example")
			req.Header.Set("Access-Control-Request-Method", "GET")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}
