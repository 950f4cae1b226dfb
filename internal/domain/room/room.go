package room

import (
	"strings"

	"github.com/kailas-cloud/campusdir/internal/domain"
)

// Room is a space inside a building; its id is unique within that building.
type Room struct {
	id    string
	name  string
	level string
}

// New validates and creates a Room. Only the id is checked.
func New(id, name, level string) (Room, error) {
	if err := domain.ValidateID("room", id); err != nil {
		return Room{}, err
	}
	return Room{id: id, name: name, level: level}, nil
}

// Reconstruct creates a Room without validation (storage hydration).
func Reconstruct(id, name, level string) Room {
	return Room{id: id, name: name, level: level}
}

// ID returns the room code.
func (r *Room) ID() string { return r.id }

// Name returns the display name.
func (r *Room) Name() string { return r.name }

// Level returns the floor label ("PLANTA BAJA", "PISO 2").
func (r *Room) Level() string { return r.level }

// CodeContains reports whether the room id contains query.
func (r *Room) CodeContains(query string) bool {
	return strings.Contains(r.id, query)
}
