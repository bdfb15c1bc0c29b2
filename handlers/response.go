package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"

	"github.com/mseongj/seoul-transit-proxy/models"
	"github.com/mseongj/seoul-transit-proxy/upstream"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("응답 쓰기 실패: %v", err)
	}
}

// writeError는 업스트림 오류 종류에 맞는 상태 코드와 메시지로 응답합니다.
func writeError(w http.ResponseWriter, err error) {
	var (
		se *upstream.StatusError
		pe *upstream.ParseError
		ce *upstream.ContractError
		ne net.Error
	)
	resp := models.ErrorResponse{StatusCode: http.StatusBadGateway, Message: "Failed to reach upstream server"}

	switch {
	case errors.As(err, &se):
		resp.StatusCode = se.StatusCode
		resp.Message = "Failed to fetch data from server"
		resp.Detail = se.Body
	case errors.As(err, &pe):
		resp.StatusCode = http.StatusInternalServerError
		resp.Message = "Failed to parse " + pe.Format + " from server"
	case errors.As(err, &ce):
		log.Printf("업스트림 응답 구조 오류: %v", ce)
		resp.StatusCode = http.StatusInternalServerError
		resp.Message = "Unexpected upstream response shape"
	case errors.As(err, &ne) && ne.Timeout():
		resp.StatusCode = http.StatusGatewayTimeout
		resp.Message = "Upstream server timed out"
	}

	// 정상 응답 코드로 쓸 수 없는 값은 502로 대체
	if resp.StatusCode < 200 || resp.StatusCode > 599 {
		resp.StatusCode = http.StatusBadGateway
	}
	log.Printf("요청 실패 (%d): %v", resp.StatusCode, err)
	writeJSON(w, resp.StatusCode, resp)
}
