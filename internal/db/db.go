package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
// Consumers depend on the narrow sub-interfaces they actually call.
type Store interface {
	Pinger
	DocumentReader
	DocumentWriter
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Document is a stored document: its id within the collection and the raw JSON body.
type Document struct {
	ID   string
	Data []byte
}

// Write is a single upsert inside an atomic Commit.
type Write struct {
	Ref  DocRef
	Data []byte
}

// DocumentReader provides point reads and collection scans.
type DocumentReader interface {
	// Get returns ErrKeyNotFound when the document does not exist.
	Get(ctx context.Context, ref DocRef) (Document, error)
	// List scans a collection in ascending id order, keeping documents matching all filters.
	List(ctx context.Context, col CollectionRef, filters ...Filter) ([]Document, error)
}

// DocumentWriter provides create, upsert and atomic multi-document writes.
type DocumentWriter interface {
	// Create returns ErrKeyExists when the document already exists.
	Create(ctx context.Context, ref DocRef, data []byte) error
	Set(ctx context.Context, ref DocRef, data []byte) error
	// Commit applies all writes or none of them.
	Commit(ctx context.Context, writes []Write) error
}
