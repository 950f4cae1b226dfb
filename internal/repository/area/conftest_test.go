package area

import (
	"context"
	"testing"

	"github.com/kailas-cloud/campusdir/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn  func(ctx context.Context, ref db.DocRef) (db.Document, error)
	listFn func(ctx context.Context, col db.CollectionRef, filters ...db.Filter) ([]db.Document, error)
}

func (m *mockStore) Get(ctx context.Context, ref db.DocRef) (db.Document, error) {
	if m.getFn != nil {
		return m.getFn(ctx, ref)
	}
	return db.Document{}, db.ErrKeyNotFound
}

func (m *mockStore) List(ctx context.Context, col db.CollectionRef, filters ...db.Filter) ([]db.Document, error) {
	if m.listFn != nil {
		return m.listFn(ctx, col, filters...)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}
