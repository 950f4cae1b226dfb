package chi

import (
	"encoding/json"

	domarea "github.com/kailas-cloud/campusdir/internal/domain/area"
	dombuilding "github.com/kailas-cloud/campusdir/internal/domain/building"
	domroom "github.com/kailas-cloud/campusdir/internal/domain/room"
	domsearch "github.com/kailas-cloud/campusdir/internal/domain/search"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Error   string       `json:"error,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError is one rejected field of one array element.
type FieldError struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// BuildingResponse is a building as stored, without its id.
type BuildingResponse struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Location    json.RawMessage `json:"location,omitempty"`
	Prefix      string          `json:"prefix,omitempty"`
}

// BuildingSummary is a list entry of GET /buildings.
type BuildingSummary struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Location    json.RawMessage `json:"location,omitempty"`
}

// AreaSummary is a list entry of GET /areas.
type AreaSummary struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Location    json.RawMessage `json:"location,omitempty"`
}

// AreaResponse is an area as stored, without its id.
type AreaResponse struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Location    json.RawMessage `json:"location,omitempty"`
	Type        string          `json:"type"`
}

// AreaItem is an area with its id.
type AreaItem struct {
	ID string `json:"id"`
	AreaResponse
}

// RoomItem is a room with its id.
type RoomItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level"`
}

// BuildingHit is a matching building with the nested matches that surfaced it.
type BuildingHit struct {
	ID string `json:"id"`
	BuildingResponse
	Rooms       []RoomItem `json:"rooms,omitempty"`
	CommonAreas []AreaItem `json:"commonAreas,omitempty"`
}

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Areas     []AreaItem    `json:"areas"`
	Buildings []BuildingHit `json:"buildings"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func buildingToResponse(b *dombuilding.Building) BuildingResponse {
	return BuildingResponse{
		Name:        b.Name(),
		Description: b.Description(),
		Location:    b.Location(),
		Prefix:      b.Prefix(),
	}
}

func buildingToSummary(b *dombuilding.Building) BuildingSummary {
	return BuildingSummary{ID: b.ID(), Name: b.Name(), Description: b.Description(), Location: b.Location()}
}

func areaToResponse(a *domarea.Area) AreaResponse {
	return AreaResponse{Name: a.Name(), Description: a.Description(), Location: a.Location(), Type: a.Type()}
}

func areaToSummary(a *domarea.Area) AreaSummary {
	return AreaSummary{ID: a.ID(), Name: a.Name(), Description: a.Description(), Location: a.Location()}
}

func areasToItems(as []domarea.Area) []AreaItem {
	items := make([]AreaItem, len(as))
	for i := range as {
		items[i] = AreaItem{ID: as[i].ID(), AreaResponse: areaToResponse(&as[i])}
	}
	return items
}

func roomsToItems(rs []domroom.Room) []RoomItem {
	items := make([]RoomItem, len(rs))
	for i := range rs {
		items[i] = RoomItem{ID: rs[i].ID(), Name: rs[i].Name(), Level: rs[i].Level()}
	}
	return items
}

func searchToResponse(res *domsearch.Result) SearchResponse {
	hits := make([]BuildingHit, len(res.Buildings))
	for i := range res.Buildings {
		h := &res.Buildings[i]
		hit := BuildingHit{ID: h.Building.ID(), BuildingResponse: buildingToResponse(&h.Building)}
		if len(h.Rooms) > 0 {
			hit.Rooms = roomsToItems(h.Rooms)
		}
		if len(h.CommonAreas) > 0 {
			hit.CommonAreas = areasToItems(h.CommonAreas)
		}
		hits[i] = hit
	}
	return SearchResponse{Areas: areasToItems(res.Areas), Buildings: hits}
}
