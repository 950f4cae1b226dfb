package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kailas-cloud/campusdir/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Store is an in-process db.Store. Collections are keyed by their full path
// ("buildings/B1/rooms"); each keeps its documents by id.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{collections: make(map[string]map[string][]byte)}
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

// WaitForReady returns immediately.
func (s *Store) WaitForReady(_ context.Context, _ time.Duration) error { return nil }

// Get returns a copy of the document stored at ref.
func (s *Store) Get(ctx context.Context, ref db.DocRef) (db.Document, error) {
	if err := ctx.Err(); err != nil {
		return db.Document{}, &db.Error{Op: db.OpGet, Path: ref.Path(), Err: err}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.collections[ref.Parent().Path()][ref.ID()]
	if !ok {
		return db.Document{}, db.ErrKeyNotFound
	}
	return db.Document{ID: ref.ID(), Data: clone(data)}, nil
}

// Create stores the document unless the id is taken.
func (s *Store) Create(ctx context.Context, ref db.DocRef, data []byte) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return &db.Error{Op: db.OpCreate, Path: ref.Path(), Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[ref.Parent().Path()][ref.ID()]; ok {
		return db.ErrKeyExists
	}
	s.put(ref, data)
	return nil
}

// Set upserts the document.
func (s *Store) Set(ctx context.Context, ref db.DocRef, data []byte) error {
	return s.Commit(ctx, []db.Write{{Ref: ref, Data: data}})
}

// Commit applies all writes under a single lock acquisition.
func (s *Store) Commit(ctx context.Context, writes []db.Write) error {
	for _, w := range writes {
		if err := w.Ref.Validate(); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return &db.Error{Op: db.OpCommit, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range writes {
		s.put(w.Ref, w.Data)
	}
	return nil
}

// List returns the collection's documents in ascending id order.
func (s *Store) List(ctx context.Context, col db.CollectionRef, filters ...db.Filter) ([]db.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, &db.Error{Op: db.OpList, Path: col.Path(), Err: err}
	}

	s.mu.RLock()
	docs := s.collections[col.Path()]
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]db.Document, 0, len(ids))
	for _, id := range ids {
		out = append(out, db.Document{ID: id, Data: clone(docs[id])})
	}
	s.mu.RUnlock()

	if len(filters) == 0 {
		return out, nil
	}

	filtered := out[:0]
	for _, doc := range out {
		ok, err := db.Match(doc.Data, filters)
		if err != nil {
			return nil, &db.Error{Op: db.OpDecode, Path: col.Doc(doc.ID).Path(), Err: err}
		}
		if ok {
			filtered = append(filtered, doc)
		}
	}
	return filtered, nil
}

// put must be called with mu held for writing.
func (s *Store) put(ref db.DocRef, data []byte) {
	key := ref.Parent().Path()
	col, ok := s.collections[key]
	if !ok {
		col = make(map[string][]byte)
		s.collections[key] = col
	}
	col[ref.ID()] = clone(data)
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
