package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/kailas-cloud/campusdir/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds connection parameters for a MongoDB store.
type Config struct {
	URI      string
	Database string
}

// Store implements db.Store on MongoDB.
//
// Every hierarchy level maps to the MongoDB collection named after its last segment
// ("buildings", "rooms", ...). Documents are keyed by their full path and carry the parent
// document path, so one "rooms" collection holds the rooms of every building.
// Commit runs inside a multi-document transaction and needs a replica set.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to MongoDB. The connection is established lazily by the driver;
// use WaitForReady to block until the server answers.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("uri is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("database is required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	return &Store{client: client, db: client.Database(cfg.Database)}, nil
}

// Ping checks connectivity against the primary.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.client.Disconnect(ctx)
}

// WaitForReady polls Ping until the server responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Get returns the document stored at ref.
func (s *Store) Get(ctx context.Context, ref db.DocRef) (db.Document, error) {
	var rec record
	err := s.coll(ref.Parent()).FindOne(ctx, bson.M{"_id": ref.Path()}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return db.Document{}, db.ErrKeyNotFound
		}
		return db.Document{}, &db.Error{Op: db.OpGet, Path: ref.Path(), Err: err}
	}
	return rec.document(), nil
}

// Create inserts the document; the unique _id makes a second insert fail.
func (s *Store) Create(ctx context.Context, ref db.DocRef, data []byte) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	rec, err := newRecord(ref, data)
	if err != nil {
		return err
	}
	if _, err := s.coll(ref.Parent()).InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return db.ErrKeyExists
		}
		return &db.Error{Op: db.OpCreate, Path: ref.Path(), Err: err}
	}
	return nil
}

// Set upserts the document.
func (s *Store) Set(ctx context.Context, ref db.DocRef, data []byte) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	rec, err := newRecord(ref, data)
	if err != nil {
		return err
	}
	if err := s.replace(ctx, ref, rec); err != nil {
		return &db.Error{Op: db.OpSet, Path: ref.Path(), Err: err}
	}
	return nil
}

// Commit upserts every write inside one transaction.
func (s *Store) Commit(ctx context.Context, writes []db.Write) error {
	if len(writes) == 0 {
		return nil
	}

	recs := make([]record, len(writes))
	for i, w := range writes {
		if err := w.Ref.Validate(); err != nil {
			return err
		}
		rec, err := newRecord(w.Ref, w.Data)
		if err != nil {
			return err
		}
		recs[i] = rec
	}

	sess, err := s.client.StartSession()
	if err != nil {
		return &db.Error{Op: db.OpCommit, Err: err}
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for i, w := range writes {
			if err := s.replace(sc, w.Ref, recs[i]); err != nil {
				return nil, fmt.Errorf("%s: %w", w.Ref.Path(), err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return &db.Error{Op: db.OpCommit, Path: writes[0].Ref.Parent().Path(), Err: err}
	}
	return nil
}

// List returns the children of col's parent in ascending id order. Filters are pushed
// down as equality matches on the mirrored top-level fields.
func (s *Store) List(ctx context.Context, col db.CollectionRef, filters ...db.Filter) ([]db.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "doc_id", Value: 1}})
	cur, err := s.coll(col).Find(ctx, listFilter(col, filters), opts)
	if err != nil {
		return nil, &db.Error{Op: db.OpList, Path: col.Path(), Err: err}
	}
	defer cur.Close(ctx)

	var recs []record
	if err := cur.All(ctx, &recs); err != nil {
		return nil, &db.Error{Op: db.OpList, Path: col.Path(), Err: err}
	}

	docs := make([]db.Document, 0, len(recs))
	for _, rec := range recs {
		docs = append(docs, rec.document())
	}
	return docs, nil
}

func (s *Store) coll(col db.CollectionRef) *mongo.Collection {
	return s.db.Collection(col.Name())
}

func (s *Store) replace(ctx context.Context, ref db.DocRef, rec record) error {
	_, err := s.coll(ref.Parent()).ReplaceOne(ctx,
		bson.M{"_id": ref.Path()}, rec, options.Replace().SetUpsert(true))
	return err
}
