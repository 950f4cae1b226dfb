package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/campusdir/internal/db"
)

var errTxAborted = errors.New("transaction aborted")

// Get returns the document stored at ref.
func (s *Store) Get(ctx context.Context, ref db.DocRef) (db.Document, error) {
	cmd := s.b().Get().Key(s.docKey(ref)).Build()
	data, err := s.do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return db.Document{}, db.ErrKeyNotFound
		}
		return db.Document{}, &db.Error{Op: db.OpGet, Path: ref.Path(), Err: err}
	}
	return db.Document{ID: ref.ID(), Data: data}, nil
}

// Create writes the document only if it does not exist yet.
// SET NX and the index ZADD run inside one MULTI/EXEC.
func (s *Store) Create(ctx context.Context, ref db.DocRef, data []byte) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	cmds := make(rueidis.Commands, 0, 4)
	cmds = append(cmds,
		s.b().Multi().Build(),
		s.b().Set().Key(s.docKey(ref)).Value(string(data)).Nx().Build(),
		s.indexAdd(ref),
		s.b().Exec().Build(),
	)

	replies, err := s.exec(ctx, cmds)
	if err != nil {
		return &db.Error{Op: db.OpCreate, Path: ref.Path(), Err: err}
	}
	if replies[0].IsNil() {
		return db.ErrKeyExists
	}
	return nil
}

// Set upserts the document.
func (s *Store) Set(ctx context.Context, ref db.DocRef, data []byte) error {
	return s.Commit(ctx, []db.Write{{Ref: ref, Data: data}})
}

// Commit writes all documents in a single MULTI/EXEC.
func (s *Store) Commit(ctx context.Context, writes []db.Write) error {
	if len(writes) == 0 {
		return nil
	}
	for _, w := range writes {
		if err := w.Ref.Validate(); err != nil {
			return err
		}
	}

	cmds := make(rueidis.Commands, 0, 2+2*len(writes))
	cmds = append(cmds, s.b().Multi().Build())
	for _, w := range writes {
		cmds = append(cmds,
			s.b().Set().Key(s.docKey(w.Ref)).Value(string(w.Data)).Build(),
			s.indexAdd(w.Ref),
		)
	}
	cmds = append(cmds, s.b().Exec().Build())

	if _, err := s.exec(ctx, cmds); err != nil {
		return &db.Error{Op: db.OpCommit, Path: writes[0].Ref.Parent().Path(), Err: err}
	}
	return nil
}

// List reads the collection index, then fetches members in one DoMulti round-trip.
// Ids present in the index but missing as documents are skipped.
func (s *Store) List(ctx context.Context, col db.CollectionRef, filters ...db.Filter) ([]db.Document, error) {
	cmd := s.b().Zrange().Key(s.indexKey(col)).Min("0").Max("-1").Build()
	ids, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpList, Path: col.Path(), Err: err}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	cmds := make(rueidis.Commands, len(ids))
	for i, id := range ids {
		cmds[i] = s.b().Get().Key(s.docKey(col.Doc(id))).Build()
	}

	results := s.client.DoMulti(ctx, cmds...)
	docs := make([]db.Document, 0, len(ids))
	for i, res := range results {
		data, err := res.AsBytes()
		if err != nil {
			if rueidis.IsRedisNil(err) {
				continue
			}
			return nil, &db.Error{Op: db.OpGet, Path: col.Doc(ids[i]).Path(), Err: err}
		}
		ok, err := db.Match(data, filters)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", col.Doc(ids[i]).Path(), err)
		}
		if ok {
			docs = append(docs, db.Document{ID: ids[i], Data: data})
		}
	}
	return docs, nil
}

func (s *Store) indexAdd(ref db.DocRef) rueidis.Completed {
	return s.b().Zadd().Key(s.indexKey(ref.Parent())).ScoreMember().ScoreMember(0, ref.ID()).Build()
}

// exec runs a MULTI ... EXEC pipeline and returns the EXEC replies of the queued commands.
func (s *Store) exec(ctx context.Context, cmds rueidis.Commands) ([]rueidis.RedisMessage, error) {
	results := s.client.DoMulti(ctx, cmds...)
	for _, res := range results[:len(results)-1] {
		if err := res.Error(); err != nil {
			return nil, err
		}
	}

	execRes := results[len(results)-1]
	if err := execRes.Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, errTxAborted
		}
		return nil, err
	}
	replies, err := execRes.ToArray()
	if err != nil {
		return nil, err
	}
	for _, r := range replies {
		if err := r.Error(); err != nil && !rueidis.IsRedisNil(err) {
			return nil, err
		}
	}
	return replies, nil
}
