package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/mseongj/seoul-transit-proxy/models"
	"golang.org/x/sync/errgroup"
)

// 서울 버스 API 경로 (getStaionByRoute는 업스트림 철자 그대로)
const (
	busRouteListPath = "/busRouteInfo/getBusRouteList"
	busStationsPath  = "/busRouteInfo/getStaionByRoute"
	busPositionsPath = "/buspos/getBusPosByRtid"
)

// 정류장 목록에 구간이 없을 때 쓰는 방향 값
const unknownDirection = "Unknown"

// GetBusInfo는 노선 번호 검색 결과를 그대로 돌려줍니다.
func (h *Handler) GetBusInfo(w http.ResponseWriter, r *http.Request) {
	items, err := h.busRouteList(r.Context(), mux.Vars(r)["bus_no"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ItemListResponse{ItemList: items})
}

// GetBusRoute는 노선 ID의 정류장 목록에 busDirection을 붙여 돌려줍니다.
func (h *Handler) GetBusRoute(w http.ResponseWriter, r *http.Request) {
	items, err := h.busRouteStations(r.Context(), mux.Vars(r)["bus_no"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ItemListResponse{ItemList: items})
}

// GetBusRealTime은 노선 ID의 실시간 버스 위치에 구간 기준 busDirection을 붙여 돌려줍니다.
func (h *Handler) GetBusRealTime(w http.ResponseWriter, r *http.Request) {
	items, err := h.busPositions(r.Context(), mux.Vars(r)["bus_no"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ItemListResponse{ItemList: items})
}

func (h *Handler) busRouteList(ctx context.Context, search string) ([]*models.Record, error) {
	return h.client.GetItems(ctx, "busRouteList", h.cfg.BusBaseURL+busRouteListPath,
		url.Values{"strSrch": {search}})
}

// busRouteStations는 캐시를 거쳐 정류장 목록을 가져옵니다.
func (h *Handler) busRouteStations(ctx context.Context, routeID string) ([]*models.Record, error) {
	key := "busRoute:" + routeID
	var items []*models.Record
	if h.cachedJSON(ctx, "busRoute", key, &items) {
		return items, nil
	}

	items, err := h.client.GetItems(ctx, "busRouteStations", h.cfg.BusBaseURL+busStationsPath,
		url.Values{"busRouteId": {routeID}})
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		dir, _ := it.Get(models.FieldDirection)
		it.SetString(models.FieldBusDirection, h.classify(dir))
	}
	h.storeJSON(ctx, key, items)
	return items, nil
}

// busPositions는 위치 목록과 정류장 목록을 동시에 받아 sectionId로 묶습니다.
func (h *Handler) busPositions(ctx context.Context, routeID string) ([]*models.Record, error) {
	var (
		g                   errgroup.Group
		positions, stations []*models.Record
		posErr, stErr       error
	)
	g.Go(func() error {
		positions, posErr = h.client.GetItems(ctx, "busPositions", h.cfg.BusBaseURL+busPositionsPath,
			url.Values{"busRouteId": {routeID}})
		return posErr
	})
	g.Go(func() error {
		stations, stErr = h.busRouteStations(ctx, routeID)
		return stErr
	})
	if err := g.Wait(); err != nil {
		// Wait는 먼저 끝난 쪽 오류를 주므로, 둘 다 실패하면 위치 조회 오류를 우선함
		if posErr != nil {
			return nil, posErr
		}
		return nil, err
	}

	directions := sectionDirections(stations)
	unknown := unknownDirection
	for _, it := range positions {
		dir, ok := directions[keyOf(it, models.FieldSectionID)]
		if !ok {
			dir = &unknown
		}
		it.SetString(models.FieldBusDirection, h.classify(dir))
	}
	return positions, nil
}

// sectionKey는 null과 빈 문자열을 구분하는 맵 키입니다.
type sectionKey struct {
	id    string
	valid bool
}

func keyOf(r *models.Record, field string) sectionKey {
	v, _ := r.Get(field)
	if v == nil {
		return sectionKey{}
	}
	return sectionKey{id: *v, valid: true}
}

// sectionDirections는 section -> direction 맵을 만듭니다. 같은 구간은 뒤의 값이 이깁니다.
func sectionDirections(stations []*models.Record) map[sectionKey]*string {
	m := make(map[sectionKey]*string, len(stations))
	for _, st := range stations {
		dir, _ := st.Get(models.FieldDirection)
		m[keyOf(st, models.FieldSection)] = dir
	}
	return m
}

// classify는 방향 값이 종점 이름과 정확히 같을 때만 U, 나머지는 모두 D입니다.
func (h *Handler) classify(direction *string) string {
	if direction != nil && *direction == h.cfg.TerminalStation {
		return models.DirectionUp
	}
	return models.DirectionDown
}
