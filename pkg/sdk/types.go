package campusdir

import (
	"encoding/json"

	domroom "github.com/kailas-cloud/campusdir/internal/domain/room"
)

// Building is a campus building.
type Building struct {
	ID          string
	Name        string
	Description string
	Location    json.RawMessage
	Prefix      string
}

// Room is a room inside a building.
type Room struct {
	ID    string
	Name  string
	Level string
}

// Area is a ground area or a common area of a building.
type Area struct {
	ID          string
	Name        string
	Description string
	Location    json.RawMessage
	Type        string
}

// BuildingHit is a building matched by Search. Rooms or CommonAreas is set when the
// building matched through its subcollections rather than its own name or description.
type BuildingHit struct {
	Building
	Rooms       []Room
	CommonAreas []Area
}

// SearchResult holds the matches of a free-text query in store order.
type SearchResult struct {
	Areas     []Area
	Buildings []BuildingHit
}

// BuildingInput is a building to create.
type BuildingInput struct {
	ID          string
	Name        string
	Description string
	Location    json.RawMessage
}

// RoomInput is a room to create.
type RoomInput struct {
	ID    string
	Name  string
	Level string
}

// CodePrefix is a room-code prefix and its meaning, e.g. "T-" for "Torre".
type CodePrefix struct {
	Prefix  string
	Meaning string
}

// Ground floor level label; upper floors are "PISO <n>".
const GroundFloor = domroom.GroundFloor
