package area

import (
	"encoding/json"
	"strings"
)

// Area is a named location: a top-level ground area or a building's common area.
// Both share one schema.
type Area struct {
	id          string
	name        string
	description string
	location    json.RawMessage
	kind        string
}

// Reconstruct creates an Area without validation (storage hydration).
func Reconstruct(id, name, description string, location json.RawMessage, kind string) Area {
	return Area{id: id, name: name, description: description, location: location, kind: kind}
}

// ID returns the area identifier.
func (a *Area) ID() string { return a.id }

// Name returns the display name.
func (a *Area) Name() string { return a.name }

// Description returns the free-text description.
func (a *Area) Description() string { return a.description }

// Location returns the opaque location value.
func (a *Area) Location() json.RawMessage { return a.location }

// Type returns the area category ("cafeteria", "auditorio").
func (a *Area) Type() string { return a.kind }

// Mentions reports whether name or type contains query (case-sensitive).
func (a *Area) Mentions(query string) bool {
	return strings.Contains(a.name, query) || strings.Contains(a.kind, query)
}
