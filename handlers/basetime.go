package handlers

import (
	"time"

	"github.com/mseongj/seoul-transit-proxy/models"
)

// 현재 시각을 15분 앞당겨 슬롯을 고름 (14:10 -> 1400, 14:35 -> 1430, 23:45 -> 다음 날 0000)
const forecastLag = 15 * time.Minute

// BasePolicy는 현재 시각으로부터 가장 최근 발표 슬롯을 고릅니다.
type BasePolicy func(now time.Time) models.BaseTime

// UltraShortForecastBase는 초단기예보(getUltraSrtFcst)용 발표 시각입니다.
// now+15분을 30분 단위로 내림하고, 날짜가 넘어가면(23:45 이후) 다음 날 0000을 씁니다.
func UltraShortForecastBase(now time.Time) models.BaseTime {
	t := now.Add(forecastLag)
	if t.YearDay() != now.YearDay() || t.Year() != now.Year() {
		return models.BaseTime{Date: t.Format("20060102"), Time: "0000"}
	}
	minute := 0
	if t.Minute() >= 30 {
		minute = 30
	}
	slot := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute, 0, 0, t.Location())
	return models.BaseTime{Date: slot.Format("20060102"), Time: slot.Format("1504")}
}

// UltraShortNowcastBase는 초단기실황(getUltraSrtNcst)용 발표 시각입니다.
// 30분까지는 이전 정시, 31분부터는 현재 정시. 00:30 이전이면 전날 2300.
func UltraShortNowcastBase(now time.Time) models.BaseTime {
	t := now
	if now.Minute() <= 30 {
		t = now.Add(-time.Hour)
	}
	slot := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	return models.BaseTime{Date: slot.Format("20060102"), Time: slot.Format("1504")}
}
