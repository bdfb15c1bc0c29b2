package models

import "encoding/json"

// WeatherEnvelope는 기상청 API 응답에서 response.body.items 까지만 꺼내는 구조체입니다.
// items 아래는 그대로 전달하므로 RawMessage로 둡니다.
type WeatherEnvelope struct {
	Response *struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body *struct {
			DataType   string          `json:"dataType"`
			Items      json.RawMessage `json:"items"`
			PageNo     int             `json:"pageNo"`
			NumOfRows  int             `json:"numOfRows"`
			TotalCount int             `json:"totalCount"`
		} `json:"body"`
	} `json:"response"`
}

// BaseTime은 예보 요청에 넣을 발표 일자/시각입니다.
type BaseTime struct {
	Date string // YYYYMMDD
	Time string // HHMM
}
