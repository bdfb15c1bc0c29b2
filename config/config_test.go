package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// 테스트 간 환경 변수 간섭을 막기 위해 관련 변수를 모두 비움
func clearEnv(t *testing.T) {
	for _, k := range []string{
		"API_KEY", "PORT", "UPSTREAM_TIMEOUT", "BUS_BASE_URL", "WEATHER_BASE_URL",
		"TERMINAL_STATION", "TZ_NAME", "CORS_ORIGINS", "CACHE_BACKEND", "CACHE_TTL",
		"CACHE_SIZE", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "SQLITE_PATH", "CONFIG_FILE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	Convey("Given an environment without API_KEY", t, func() {
		clearEnv(t)

		Convey("Load fails fast", func() {
			cfg, err := Load()
			So(cfg, ShouldBeNil)
			So(errors.Is(err, ErrMissingAPIKey), ShouldBeTrue)
		})
	})

	Convey("Given only API_KEY", t, func() {
		clearEnv(t)
		t.Setenv("API_KEY", "secret")

		cfg, err := Load()
		So(err, ShouldBeNil)

		Convey("defaults are applied", func() {
			So(cfg.Port, ShouldEqual, DefaultPort)
			So(cfg.UpstreamTimeout, ShouldEqual, DefaultUpstreamTimeout)
			So(cfg.BusBaseURL, ShouldEqual, DefaultBusBaseURL)
			So(cfg.TerminalStation, ShouldEqual, "홍대입구역")
			So(cfg.CORSOrigins, ShouldResemble, DefaultCORSOrigins)
			So(cfg.Cache.Backend, ShouldEqual, "memory")
			So(cfg.Cache.TTL, ShouldEqual, time.Minute)
			So(cfg.Location, ShouldNotBeNil)
		})
	})

	Convey("Given overrides in the environment", t, func() {
		clearEnv(t)
		t.Setenv("API_KEY", "secret")
		t.Setenv("PORT", "9000")
		t.Setenv("UPSTREAM_TIMEOUT", "3s")
		t.Setenv("BUS_BASE_URL", "http://127.0.0.1:1234/api/rest/")
		t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example")
		t.Setenv("CACHE_BACKEND", "NONE")

		cfg, err := Load()
		So(err, ShouldBeNil)
		So(cfg.Port, ShouldEqual, 9000)
		So(cfg.UpstreamTimeout, ShouldEqual, 3*time.Second)
		So(cfg.BusBaseURL, ShouldEqual, "http://127.0.0.1:1234/api/rest")
		So(cfg.CORSOrigins, ShouldResemble, []string{"http://a.example", "http://b.example"})
		So(cfg.Cache.Backend, ShouldEqual, "none")
	})

	Convey("Given invalid values", t, func() {
		clearEnv(t)
		t.Setenv("API_KEY", "secret")

		Convey("an unknown cache backend is rejected", func() {
			t.Setenv("CACHE_BACKEND", "memcached")
			_, err := Load()
			So(err, ShouldNotBeNil)
		})

		Convey("redis without an address is rejected", func() {
			t.Setenv("CACHE_BACKEND", "redis")
			_, err := Load()
			So(err, ShouldNotBeNil)
		})

		Convey("a non-numeric port is rejected", func() {
			t.Setenv("PORT", "http")
			_, err := Load()
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given a YAML config file", t, func() {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "config.yml")
		data := []byte("apiKey: from-file\nport: 8081\nterminalStation: 신촌역\ncache:\n  backend: sqlite\n  ttl: 5m\n  size: 10\n  sqlitePath: /tmp/x.db\n")
		So(os.WriteFile(path, data, 0o600), ShouldBeNil)
		t.Setenv("CONFIG_FILE", path)
		t.Setenv("PORT", "8082")

		cfg, err := Load()
		So(err, ShouldBeNil)
		So(cfg.APIKey, ShouldEqual, "from-file")
		So(cfg.TerminalStation, ShouldEqual, "신촌역")
		So(cfg.Cache.Backend, ShouldEqual, "sqlite")
		So(cfg.Cache.TTL, ShouldEqual, 5*time.Minute)
		// 환경 변수가 파일보다 우선
		So(cfg.Port, ShouldEqual, 8082)
	})
}
