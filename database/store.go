package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrStoreUnavailable is returned by every operation of a store whose
// connection was never established.
var ErrStoreUnavailable = errors.New("document store unavailable")

// Store is a collection-of-documents database.
type Store interface {
	// Insert stores doc in collection and returns the assigned id as a string.
	Insert(ctx context.Context, collection string, doc any) (string, error)
	// Find returns every document in collection matching q.
	Find(ctx context.Context, collection string, q Query) ([]bson.Raw, error)
	Ping(ctx context.Context) error
	ListCollectionNames(ctx context.Context) ([]string, error)
	Name() string
	Connected() bool
	Close(ctx context.Context) error
}

// FindAll runs q against collection and decodes the matches into T.
func FindAll[T any](ctx context.Context, s Store, collection string, q Query) ([]T, error) {
	raws, err := s.Find(ctx, collection, q)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		var v T
		if err := bson.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", collection, err)
		}
		out = append(out, v)
	}
	return out, nil
}

type unavailableStore struct {
	name string
}

// Unavailable returns a Store that fails every call with ErrStoreUnavailable.
// It lets the process keep serving when the initial connect failed.
func Unavailable(name string) Store {
	return unavailableStore{name: name}
}

func (unavailableStore) Insert(context.Context, string, any) (string, error) {
	return "", ErrStoreUnavailable
}

func (unavailableStore) Find(context.Context, string, Query) ([]bson.Raw, error) {
	return nil, ErrStoreUnavailable
}

func (unavailableStore) Ping(context.Context) error { return ErrStoreUnavailable }

func (unavailableStore) ListCollectionNames(context.Context) ([]string, error) {
	return nil, ErrStoreUnavailable
}

func (s unavailableStore) Name() string { return s.name }

func (unavailableStore) Connected() bool { return false }

func (unavailableStore) Close(context.Context) error { return nil }
