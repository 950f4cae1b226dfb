package search

import (
	"github.com/kailas-cloud/campusdir/internal/domain/area"
	"github.com/kailas-cloud/campusdir/internal/domain/building"
	"github.com/kailas-cloud/campusdir/internal/domain/room"
)

// BuildingHit is a matching building, annotated with the nested matches that surfaced it.
// Rooms and CommonAreas are nil when the building matched on its own fields.
type BuildingHit struct {
	Building    building.Building
	Rooms       []room.Room
	CommonAreas []area.Area
}

// Result is the combined outcome of a free-text search.
type Result struct {
	Areas     []area.Area
	Buildings []BuildingHit
}
