package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mseongj/seoul-transit-proxy/metrics"
	"github.com/mseongj/seoul-transit-proxy/models"
)

// 업스트림 응답 본문 최대 크기
const maxBodyBytes = 16 << 20

// Client는 공공데이터 API 호출을 한 곳에서 처리합니다.
// 요청마다 serviceKey를 붙이고, 상태 코드 확인과 지표 기록을 담당합니다.
type Client struct {
	httpClient *http.Client
	apiKey     string
	metrics    *metrics.Collector
}

func NewClient(apiKey string, timeout time.Duration, m *metrics.Collector) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		apiKey:  apiKey,
		metrics: m,
	}
}

// Get은 endpoint에 serviceKey와 params를 붙여 GET 요청을 보내고 본문을 돌려줍니다.
// name은 로그와 지표에 쓰는 짧은 이름입니다.
func (c *Client) Get(ctx context.Context, name, endpoint string, params url.Values) ([]byte, error) {
	q := url.Values{}
	q.Set("serviceKey", c.apiKey)
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	rawURL := endpoint + "?" + q.Encode()
	log.Printf("Fetching: %s", c.mask(rawURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: 요청 생성 실패: %w", name, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(name, 0, time.Since(start))
		return nil, fmt.Errorf("%s: HTTP 요청 실패: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.metrics.ObserveUpstream(name, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%s: 응답 본문 읽기 실패: %w", name, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Received unexpected status code %d: %s", resp.StatusCode, string(body))
		return nil, &StatusError{Endpoint: name, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// GetItems는 XML 응답을 받아 itemList 레코드로 바꿉니다.
func (c *Client) GetItems(ctx context.Context, name, endpoint string, params url.Values) ([]*models.Record, error) {
	body, err := c.Get(ctx, name, endpoint, params)
	if err != nil {
		return nil, err
	}
	items, err := ExtractItems(body)
	if err != nil {
		log.Printf("Failed to parse XML. Response content:\n%s", string(body))
		return nil, err
	}
	return items, nil
}

// GetWeatherItems는 기상청 JSON 응답에서 response.body.items 값을 그대로 돌려줍니다.
func (c *Client) GetWeatherItems(ctx context.Context, name, endpoint string, params url.Values) (json.RawMessage, error) {
	body, err := c.Get(ctx, name, endpoint, params)
	if err != nil {
		return nil, err
	}
	var env models.WeatherEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		// 인증 실패 시 기상청은 200 + XML 에러 본문을 돌려줌
		log.Printf("JSON 파싱 실패. 응답 내용: %s", string(body))
		return nil, &ParseError{Format: "JSON", Body: body, Err: err}
	}
	switch {
	case env.Response == nil:
		return nil, &ContractError{Endpoint: name, Missing: "response"}
	case env.Response.Body == nil:
		return nil, &ContractError{Endpoint: name, Missing: "response.body"}
	case env.Response.Body.Items == nil:
		return nil, &ContractError{Endpoint: name, Missing: "response.body.items"}
	}
	return env.Response.Body.Items, nil
}

// 로그에 API 키가 남지 않도록 가림
func (c *Client) mask(s string) string {
	if c.apiKey == "" {
		return s
	}
	s = strings.ReplaceAll(s, url.QueryEscape(c.apiKey), "***")
	return strings.ReplaceAll(s, c.apiKey, "***")
}
