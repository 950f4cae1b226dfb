package campusdir

import (
	domarea "github.com/kailas-cloud/campusdir/internal/domain/area"
	dombuilding "github.com/kailas-cloud/campusdir/internal/domain/building"
	domroom "github.com/kailas-cloud/campusdir/internal/domain/room"
	domsearch "github.com/kailas-cloud/campusdir/internal/domain/search"
)

func fromBuilding(b *dombuilding.Building) Building {
	return Building{
		ID:          b.ID(),
		Name:        b.Name(),
		Description: b.Description(),
		Location:    b.Location(),
		Prefix:      b.Prefix(),
	}
}

func fromRooms(rooms []domroom.Room) []Room {
	out := make([]Room, 0, len(rooms))
	for i := range rooms {
		r := &rooms[i]
		out = append(out, Room{ID: r.ID(), Name: r.Name(), Level: r.Level()})
	}
	return out
}

func fromArea(a *domarea.Area) Area {
	return Area{
		ID:          a.ID(),
		Name:        a.Name(),
		Description: a.Description(),
		Location:    a.Location(),
		Type:        a.Type(),
	}
}

func fromAreas(areas []domarea.Area) []Area {
	out := make([]Area, 0, len(areas))
	for i := range areas {
		out = append(out, fromArea(&areas[i]))
	}
	return out
}

func fromSearchResult(res domsearch.Result) SearchResult {
	out := SearchResult{
		Areas:     fromAreas(res.Areas),
		Buildings: make([]BuildingHit, 0, len(res.Buildings)),
	}
	for i := range res.Buildings {
		hit := &res.Buildings[i]
		h := BuildingHit{Building: fromBuilding(&hit.Building)}
		if len(hit.Rooms) > 0 {
			h.Rooms = fromRooms(hit.Rooms)
		}
		if len(hit.CommonAreas) > 0 {
			h.CommonAreas = fromAreas(hit.CommonAreas)
		}
		out.Buildings = append(out.Buildings, h)
	}
	return out
}
