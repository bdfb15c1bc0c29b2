package models

// ItemListResponse는 버스 엔드포인트 공통 응답입니다.
type ItemListResponse struct {
	ItemList []*Record `json:"itemList"`
}

// 버스 진행 방향 라벨
const (
	DirectionUp   = "U"
	DirectionDown = "D"
)

// 정류장/위치 레코드에서 쓰는 필드 이름
const (
	FieldDirection    = "direction"
	FieldSection      = "section"
	FieldSectionID    = "sectionId"
	FieldBusDirection = "busDirection"
)
