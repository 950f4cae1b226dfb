package area

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/campusdir/internal/db"
	"github.com/kailas-cloud/campusdir/internal/domain"
	domarea "github.com/kailas-cloud/campusdir/internal/domain/area"
)

// areaDoc is shared by ground areas and common areas.
type areaDoc struct {
	Name        *string         `json:"name"`
	Description string          `json:"description,omitempty"`
	Location    json.RawMessage `json:"location,omitempty"`
	Type        *string         `json:"type"`
}

func encode(a *domarea.Area) ([]byte, error) {
	name, kind := a.Name(), a.Type()
	data, err := json.Marshal(areaDoc{
		Name:        &name,
		Description: a.Description(),
		Location:    a.Location(),
		Type:        &kind,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal area %s: %w", a.ID(), err)
	}
	return data, nil
}

func decode(doc db.Document) (domarea.Area, error) {
	var d areaDoc
	if err := json.Unmarshal(doc.Data, &d); err != nil {
		return domarea.Area{}, fmt.Errorf("area %s: %w: %w", doc.ID, domain.ErrInvalidDocument, err)
	}
	switch {
	case d.Name == nil:
		return domarea.Area{}, fmt.Errorf("area %s: missing name: %w", doc.ID, domain.ErrInvalidDocument)
	case d.Type == nil:
		return domarea.Area{}, fmt.Errorf("area %s: missing type: %w", doc.ID, domain.ErrInvalidDocument)
	}
	return domarea.Reconstruct(doc.ID, *d.Name, d.Description, d.Location, *d.Type), nil
}

func decodeAll(docs []db.Document) ([]domarea.Area, error) {
	out := make([]domarea.Area, 0, len(docs))
	for _, doc := range docs {
		a, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
