package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 기본값
const (
	DefaultPort            = 8000
	DefaultUpstreamTimeout = 10 * time.Second
	DefaultBusBaseURL      = "http://ws.bus.go.kr/api/rest"
	DefaultWeatherBaseURL  = "http://apis.data.go.kr/1360000/VilageFcstInfoService_2.0"
	DefaultTerminalStation = "홍대입구역"
	DefaultTimeZone        = "Asia/Seoul"
	DefaultCacheBackend    = "memory"
	DefaultCacheTTL        = 60 * time.Second
	DefaultCacheSize       = 1024
	DefaultSQLitePath      = "cache.db"
)

// DefaultCORSOrigins는 로컬 개발용 프론트엔드 주소 목록입니다.
var DefaultCORSOrigins = []string{
	"http://localhost",
	"http://localhost:8080",
	"http://127.0.0.1:5500",
}

var ErrMissingAPIKey = errors.New("API_KEY must be set in the environment or .env file")

type CacheConfig struct {
	Backend       string        `yaml:"backend" validate:"oneof=memory redis sqlite none"`
	TTL           time.Duration `yaml:"ttl" validate:"gt=0"`
	Size          int           `yaml:"size" validate:"gt=0"`
	RedisAddr     string        `yaml:"redisAddr" validate:"required_if=Backend redis"`
	RedisPassword string        `yaml:"redisPassword"`
	RedisDB       int           `yaml:"redisDB" validate:"gte=0"`
	SQLitePath    string        `yaml:"sqlitePath" validate:"required_if=Backend sqlite"`
}

type Config struct {
	APIKey          string        `yaml:"apiKey" validate:"required"`
	Port            int           `yaml:"port" validate:"gt=0,lte=65535"`
	UpstreamTimeout time.Duration `yaml:"upstreamTimeout" validate:"gt=0"`
	BusBaseURL      string        `yaml:"busBaseURL" validate:"required,url"`
	WeatherBaseURL  string        `yaml:"weatherBaseURL" validate:"required,url"`
	// 상행(U) 판정에 쓰는 종점 정류장 이름
	TerminalStation string      `yaml:"terminalStation" validate:"required"`
	CORSOrigins     []string    `yaml:"corsOrigins" validate:"dive,url"`
	TimeZone        string      `yaml:"timeZone" validate:"required"`
	Cache           CacheConfig `yaml:"cache"`

	Location *time.Location `yaml:"-"`
}

// Load는 .env, CONFIG_FILE(YAML), 환경 변수 순서로 설정을 읽고 검증합니다.
// API_KEY가 없으면 ErrMissingAPIKey를 반환합니다.
func Load() (*Config, error) {
	// .env 파일이 없어도 무시
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf(".env 로드 실패: %v", err)
	}

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults는 환경 변수 없이 사용할 기본 설정을 돌려줍니다.
func Defaults() *Config {
	return &Config{
		Port:            DefaultPort,
		UpstreamTimeout: DefaultUpstreamTimeout,
		BusBaseURL:      DefaultBusBaseURL,
		WeatherBaseURL:  DefaultWeatherBaseURL,
		TerminalStation: DefaultTerminalStation,
		CORSOrigins:     append([]string(nil), DefaultCORSOrigins...),
		TimeZone:        DefaultTimeZone,
		Cache: CacheConfig{
			Backend:    DefaultCacheBackend,
			TTL:        DefaultCacheTTL,
			Size:       DefaultCacheSize,
			SQLitePath: DefaultSQLitePath,
		},
	}
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %q", v)
		}
		cfg.Port = port
	}
	if v := os.Getenv("UPSTREAM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid UPSTREAM_TIMEOUT: %q", v)
		}
		cfg.UpstreamTimeout = d
	}
	cfg.BusBaseURL = getenvDefault("BUS_BASE_URL", cfg.BusBaseURL)
	cfg.WeatherBaseURL = getenvDefault("WEATHER_BASE_URL", cfg.WeatherBaseURL)
	cfg.TerminalStation = getenvDefault("TERMINAL_STATION", cfg.TerminalStation)
	cfg.TimeZone = getenvDefault("TZ_NAME", cfg.TimeZone)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}

	cfg.Cache.Backend = strings.ToLower(getenvDefault("CACHE_BACKEND", cfg.Cache.Backend))
	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CACHE_TTL: %q", v)
		}
		cfg.Cache.TTL = d
	}
	if v := os.Getenv("CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CACHE_SIZE: %q", v)
		}
		cfg.Cache.Size = n
	}
	cfg.Cache.RedisAddr = getenvDefault("REDIS_ADDR", cfg.Cache.RedisAddr)
	cfg.Cache.RedisPassword = getenvDefault("REDIS_PASSWORD", cfg.Cache.RedisPassword)
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB: %q", v)
		}
		cfg.Cache.RedisDB = n
	}
	cfg.Cache.SQLitePath = getenvDefault("SQLITE_PATH", cfg.Cache.SQLitePath)
	return nil
}

func (c *Config) finish() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	c.BusBaseURL = strings.TrimRight(c.BusBaseURL, "/")
	c.WeatherBaseURL = strings.TrimRight(c.WeatherBaseURL, "/")

	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		// tzdata가 없는 컨테이너에서는 KST 고정 오프셋으로 대체
		if c.TimeZone != DefaultTimeZone {
			return fmt.Errorf("invalid TZ_NAME: %w", err)
		}
		loc = time.FixedZone("KST", 9*60*60)
	}
	c.Location = loc
	return nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
