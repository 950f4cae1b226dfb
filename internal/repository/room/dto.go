package room

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/campusdir/internal/db"
	"github.com/kailas-cloud/campusdir/internal/domain"
	domroom "github.com/kailas-cloud/campusdir/internal/domain/room"
)

type roomDoc struct {
	Name  *string `json:"name"`
	Level *string `json:"level"`
}

func encode(r *domroom.Room) ([]byte, error) {
	name, level := r.Name(), r.Level()
	data, err := json.Marshal(roomDoc{Name: &name, Level: &level})
	if err != nil {
		return nil, fmt.Errorf("marshal room %s: %w", r.ID(), err)
	}
	return data, nil
}

func decode(doc db.Document) (domroom.Room, error) {
	var d roomDoc
	if err := json.Unmarshal(doc.Data, &d); err != nil {
		return domroom.Room{}, fmt.Errorf("room %s: %w: %w", doc.ID, domain.ErrInvalidDocument, err)
	}
	switch {
	case d.Name == nil:
		return domroom.Room{}, fmt.Errorf("room %s: missing name: %w", doc.ID, domain.ErrInvalidDocument)
	case d.Level == nil:
		return domroom.Room{}, fmt.Errorf("room %s: missing level: %w", doc.ID, domain.ErrInvalidDocument)
	}
	return domroom.Reconstruct(doc.ID, *d.Name, *d.Level), nil
}

func decodeAll(docs []db.Document) ([]domroom.Room, error) {
	out := make([]domroom.Room, 0, len(docs))
	for _, doc := range docs {
		r, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
