package db

import (
	"fmt"
	"strings"
)

// Separator joins path segments: "buildings/B1/rooms/T-101".
const Separator = "/"

// CollectionRef addresses a collection, either top-level or nested under a document.
type CollectionRef struct {
	parent string
	name   string
}

// DocRef addresses a single document inside a collection.
type DocRef struct {
	col CollectionRef
	id  string
}

// Collection returns a top-level collection reference.
func Collection(name string) CollectionRef {
	return CollectionRef{name: name}
}

// Doc returns a reference to the document with the given id in this collection.
func (c CollectionRef) Doc(id string) DocRef {
	return DocRef{col: c, id: id}
}

// Name returns the last path segment.
func (c CollectionRef) Name() string { return c.name }

// Parent returns the owning document path, empty for top-level collections.
func (c CollectionRef) Parent() string { return c.parent }

// Path returns the full slash-separated collection path.
func (c CollectionRef) Path() string {
	if c.parent == "" {
		return c.name
	}
	return c.parent + Separator + c.name
}

// Collection returns a subcollection of this document.
func (d DocRef) Collection(name string) CollectionRef {
	return CollectionRef{parent: d.Path(), name: name}
}

// ID returns the document id.
func (d DocRef) ID() string { return d.id }

// Parent returns the collection the document lives in.
func (d DocRef) Parent() CollectionRef { return d.col }

// Path returns the full slash-separated document path.
func (d DocRef) Path() string { return d.col.Path() + Separator + d.id }

// Validate rejects empty segments and segments containing the separator.
func (d DocRef) Validate() error {
	if err := validateSegment(d.id); err != nil {
		return fmt.Errorf("document id: %w", err)
	}
	return d.col.Validate()
}

// Validate rejects empty collection names and names containing the separator.
func (c CollectionRef) Validate() error {
	if err := validateSegment(c.name); err != nil {
		return fmt.Errorf("collection name: %w", err)
	}
	return nil
}

func validateSegment(s string) error {
	if s == "" {
		return fmt.Errorf("empty segment: %w", ErrInvalidPath)
	}
	if strings.Contains(s, Separator) {
		return fmt.Errorf("segment %q contains %q: %w", s, Separator, ErrInvalidPath)
	}
	return nil
}
