package upstream

import "fmt"

// StatusError는 업스트림이 200이 아닌 상태 코드를 돌려준 경우입니다.
// 핸들러는 같은 상태 코드로 응답하고 Body를 detail로 넘깁니다.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
}

// ParseError는 업스트림 본문을 XML/JSON으로 읽지 못한 경우입니다.
// 원문은 로그에만 남기고 응답에는 포함하지 않습니다.
type ParseError struct {
	Format string // "XML" | "JSON"
	Body   []byte
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ContractError는 파싱은 됐지만 약속된 구조(예: response.body.items)가 없는 경우입니다.
type ContractError struct {
	Endpoint string
	Missing  string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: response is missing %s", e.Endpoint, e.Missing)
}
