package building

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/campusdir/internal/db"
	"github.com/kailas-cloud/campusdir/internal/domain"
	dombuilding "github.com/kailas-cloud/campusdir/internal/domain/building"
)

// buildingDoc is the stored shape of a building. Pointers distinguish absent from empty.
type buildingDoc struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Location    json.RawMessage `json:"location,omitempty"`
	Prefix      string          `json:"prefix,omitempty"`
}

func encode(b *dombuilding.Building) ([]byte, error) {
	name, desc := b.Name(), b.Description()
	data, err := json.Marshal(buildingDoc{
		Name:        &name,
		Description: &desc,
		Location:    b.Location(),
		Prefix:      b.Prefix(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal building %s: %w", b.ID(), err)
	}
	return data, nil
}

func decode(doc db.Document) (dombuilding.Building, error) {
	var d buildingDoc
	if err := json.Unmarshal(doc.Data, &d); err != nil {
		return dombuilding.Building{}, fmt.Errorf("building %s: %w: %w", doc.ID, domain.ErrInvalidDocument, err)
	}
	if d.Name == nil {
		return dombuilding.Building{}, fmt.Errorf("building %s: missing name: %w", doc.ID, domain.ErrInvalidDocument)
	}
	if d.Description == nil {
		return dombuilding.Building{}, fmt.Errorf("building %s: missing description: %w", doc.ID, domain.ErrInvalidDocument)
	}
	return dombuilding.Reconstruct(doc.ID, *d.Name, *d.Description, d.Location, d.Prefix), nil
}
