package database

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryStore keeps bson-encoded documents per collection in insertion order.
// It is used for local runs without MongoDB and in tests.
type MemoryStore struct {
	name string

	mu          sync.RWMutex
	collections map[string][]bson.Raw
}

func NewMemoryStore(name string) *MemoryStore {
	return &MemoryStore{
		name:        name,
		collections: make(map[string][]bson.Raw),
	}
}

func (s *MemoryStore) Insert(ctx context.Context, collection string, doc any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode %s document: %w", collection, err)
	}
	var d bson.D
	if err := bson.Unmarshal(raw, &d); err != nil {
		return "", fmt.Errorf("encode %s document: %w", collection, err)
	}

	var id string
	for _, e := range d {
		if e.Key != "_id" {
			continue
		}
		if oid, ok := e.Value.(bson.ObjectID); ok {
			id = oid.Hex()
		} else {
			id = fmt.Sprint(e.Value)
		}
	}
	if id == "" {
		oid := bson.NewObjectID()
		id = oid.Hex()
		d = append(bson.D{{Key: "_id", Value: oid}}, d...)
		if raw, err = bson.Marshal(d); err != nil {
			return "", fmt.Errorf("encode %s document: %w", collection, err)
		}
	}

	s.mu.Lock()
	s.collections[collection] = append(s.collections[collection], raw)
	s.mu.Unlock()
	return id, nil
}

func (s *MemoryStore) Find(ctx context.Context, collection string, q Query) ([]bson.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]bson.Raw, 0)
	for _, raw := range s.collections[collection] {
		if q.Matches(raw) {
			docs = append(docs, append(bson.Raw(nil), raw...))
		}
	}
	return docs, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) ListCollectionNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) Name() string { return s.name }

func (s *MemoryStore) Connected() bool { return true }

func (s *MemoryStore) Close(context.Context) error { return nil }
