package building

import (
	"encoding/json"
	"strings"

	"github.com/kailas-cloud/campusdir/internal/domain"
)

// Building is a top-level facility owning rooms and common areas (immutable value object).
type Building struct {
	id          string
	name        string
	description string
	location    json.RawMessage
	prefix      string
}

// New validates and creates a Building. Only the id is checked; other fields are stored as given.
func New(id, name, description string, location json.RawMessage) (Building, error) {
	if err := domain.ValidateID("building", id); err != nil {
		return Building{}, err
	}
	return Building{
		id:          id,
		name:        name,
		description: description,
		location:    cloneRaw(location),
	}, nil
}

// Reconstruct creates a Building without validation (storage hydration).
func Reconstruct(id, name, description string, location json.RawMessage, prefix string) Building {
	return Building{id: id, name: name, description: description, location: location, prefix: prefix}
}

// ID returns the building identifier.
func (b *Building) ID() string { return b.id }

// Name returns the display name.
func (b *Building) Name() string { return b.name }

// Description returns the free-text description.
func (b *Building) Description() string { return b.description }

// Location returns the opaque location value, nil when absent.
func (b *Building) Location() json.RawMessage { return b.location }

// Prefix returns the room-code prefix ("T-"), empty when the building declares none.
func (b *Building) Prefix() string { return b.prefix }

// Mentions reports whether name or description contains query (case-sensitive).
func (b *Building) Mentions(query string) bool {
	return strings.Contains(b.name, query) || strings.Contains(b.description, query)
}

// OwnsCode reports whether the building declares a prefix and query starts with it.
func (b *Building) OwnsCode(query string) bool {
	return b.prefix != "" && strings.HasPrefix(query, b.prefix)
}

func cloneRaw(m json.RawMessage) json.RawMessage {
	if m == nil {
		return nil
	}
	return append(json.RawMessage(nil), m...)
}
