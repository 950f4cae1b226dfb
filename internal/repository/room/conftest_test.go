package room

import (
	"context"
	"testing"

	"github.com/kailas-cloud/campusdir/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	createFn func(ctx context.Context, ref db.DocRef, data []byte) error
	commitFn func(ctx context.Context, writes []db.Write) error
	listFn   func(ctx context.Context, col db.CollectionRef, filters ...db.Filter) ([]db.Document, error)
}

func (m *mockStore) Create(ctx context.Context, ref db.DocRef, data []byte) error {
	if m.createFn != nil {
		return m.createFn(ctx, ref, data)
	}
	return nil
}

func (m *mockStore) Commit(ctx context.Context, writes []db.Write) error {
	if m.commitFn != nil {
		return m.commitFn(ctx, writes)
	}
	return nil
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
