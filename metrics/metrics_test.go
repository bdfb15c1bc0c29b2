package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCollector(t *testing.T) {
	Convey("Given a collector", t, func() {
		c := NewCollector()

		Convey("upstream calls are counted by endpoint and code", func() {
			c.ObserveUpstream("busRouteList", 200, 30*time.Millisecond)
			c.ObserveUpstream("busRouteList", 200, 10*time.Millisecond)
			c.ObserveUpstream("busRouteList", 503, 10*time.Millisecond)
			So(testutil.ToFloat64(c.UpstreamRequests.WithLabelValues("busRouteList", "200")), ShouldEqual, 2)
			So(testutil.ToFloat64(c.UpstreamRequests.WithLabelValues("busRouteList", "503")), ShouldEqual, 1)
		})

		Convey("cache lookups are split into hits and misses", func() {
			c.ObserveCache("busRoute", true)
			c.ObserveCache("busRoute", false)
			c.ObserveCache("busRoute", false)
			So(testutil.ToFloat64(c.CacheLookups.WithLabelValues("busRoute", "hit")), ShouldEqual, 1)
			So(testutil.ToFloat64(c.CacheLookups.WithLabelValues("busRoute", "miss")), ShouldEqual, 2)
		})

		Convey("the handler exposes the registry", func() {
			c.ObserveHTTP("/businfo/{bus_no}", 200, time.Millisecond)
			rec := httptest.NewRecorder()
			c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
			body, _ := io.ReadAll(rec.Body)
			So(rec.Code, ShouldEqual, 200)
			So(string(body), ShouldContainSubstring, "proxy_http_requests_total")
		})
	})

	Convey("A nil collector is a no-op", t, func() {
		var c *Collector
		So(func() {
			c.ObserveUpstream("x", 200, 0)
			c.ObserveCache("x", true)
			c.ObserveHTTP("x", 200, 0)
		}, ShouldNotPanic)
	})
}
