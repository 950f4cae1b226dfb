// Package layout names the persisted collection hierarchy:
//
//	buildings/{id}
//	buildings/{id}/rooms/{id}
//	buildings/{id}/common_areas/{id}
//	areas/{id}
package layout

import "github.com/kailas-cloud/campusdir/internal/db"

// Collection names.
const (
	BuildingsCollection   = "buildings"
	AreasCollection       = "areas"
	RoomsCollection       = "rooms"
	CommonAreasCollection = "common_areas"
)

// Buildings returns the top-level buildings collection.
func Buildings() db.CollectionRef { return db.Collection(BuildingsCollection) }

// Building returns the document of one building.
func Building(id string) db.DocRef { return Buildings().Doc(id) }

// Rooms returns the rooms subcollection of a building.
func Rooms(buildingID string) db.CollectionRef {
	return Building(buildingID).Collection(RoomsCollection)
}

// CommonAreas returns the common areas subcollection of a building.
func CommonAreas(buildingID string) db.CollectionRef {
	return Building(buildingID).Collection(CommonAreasCollection)
}

// Areas returns the top-level ground areas collection.
func Areas() db.CollectionRef { return db.Collection(AreasCollection) }
