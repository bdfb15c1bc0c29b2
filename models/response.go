package models

import "encoding/json"

// MessageResponse는 헬스체크/인사 응답입니다.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse는 모든 에러 응답의 형태입니다.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
}

// CacheResponse는 /debug/cache 응답입니다.
type CacheResponse struct {
	Message string                     `json:"message"`
	Cache   map[string]json.RawMessage `json:"cache"`
}
