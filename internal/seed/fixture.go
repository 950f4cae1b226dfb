// Package seed loads campus directory fixtures into a store.
//
// A fixture is a YAML document listing buildings (with their rooms and common areas) and
// ground areas. It is the only way to populate areas and common areas, which the HTTP API
// exposes read-only.
package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/campusdir/internal/domain"
	"github.com/kailas-cloud/campusdir/internal/usecase/validate"
)

// Fixture is the root of a seed file.
type Fixture struct {
	Buildings []Building `yaml:"buildings" json:"buildings"`
	Areas     []Area     `yaml:"areas" json:"areas"`
}

// Building is a building entry together with its subcollections.
type Building struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Prefix      string `yaml:"prefix" json:"prefix"`
	Location    any    `yaml:"location" json:"location"`
	Rooms       []Room `yaml:"rooms" json:"rooms"`
	CommonAreas []Area `yaml:"common_areas" json:"common_areas"`
}

// Room is a room entry.
type Room struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Level string `yaml:"level" json:"level"`
}

// Area is a ground area or common area entry.
type Area struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Type        string `yaml:"type" json:"type"`
	Location    any    `yaml:"location" json:"location"`
}

// Validate implements validation.Validatable.
func (b Building) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.ID, validation.Required, validate.DocumentID),
		validation.Field(&b.Name, validation.Required),
		validation.Field(&b.Description, validation.Required),
		validation.Field(&b.Rooms),
		validation.Field(&b.CommonAreas),
	)
}

// Validate implements validation.Validatable.
func (r Room) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required, validate.DocumentID),
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Level, validation.Required),
	)
}

// Validate implements validation.Validatable.
func (a Area) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.ID, validation.Required, validate.DocumentID),
		validation.Field(&a.Name, validation.Required),
		validation.Field(&a.Type, validation.Required),
	)
}

// Validate checks every entry and rejects duplicate ids within a collection.
func (f Fixture) Validate() error {
	if err := validation.ValidateStruct(&f,
		validation.Field(&f.Buildings),
		validation.Field(&f.Areas),
	); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	var errs []error
	errs = append(errs, duplicates("buildings", len(f.Buildings), func(i int) string { return f.Buildings[i].ID }))
	errs = append(errs, duplicates("areas", len(f.Areas), func(i int) string { return f.Areas[i].ID }))
	for _, b := range f.Buildings {
		rooms, common := b.Rooms, b.CommonAreas
		errs = append(errs,
			duplicates("buildings/"+b.ID+"/rooms", len(rooms), func(i int) string { return rooms[i].ID }),
			duplicates("buildings/"+b.ID+"/common_areas", len(common), func(i int) string { return common[i].ID }),
		)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}

func duplicates(collection string, n int, id func(int) string) error {
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		if _, dup := seen[id(i)]; dup {
			return fmt.Errorf("%s: duplicate id %q", collection, id(i))
		}
		seen[id(i)] = struct{}{}
	}
	return nil
}

// Decode parses and validates a fixture.
func Decode(r io.Reader) (Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Fixture{}, nil
		}
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return Fixture{}, err
	}
	return f, nil
}

// location renders an opaque YAML location value as JSON; nil stays absent.
func location(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("location: %w", err)
	}
	return b, nil
}
