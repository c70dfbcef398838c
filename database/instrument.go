package database

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Instrument wraps s so that each Insert and Find increments ops with the
// labels operation, collection and outcome ("ok" or "error").
func Instrument(s Store, ops *prometheus.CounterVec) Store {
	if ops == nil {
		return s
	}
	return &instrumentedStore{Store: s, ops: ops}
}

type instrumentedStore struct {
	Store
	ops *prometheus.CounterVec
}

func (s *instrumentedStore) Insert(ctx context.Context, collection string, doc any) (string, error) {
	id, err := s.Store.Insert(ctx, collection, doc)
	s.observe("insert", collection, err)
	return id, err
}

func (s *instrumentedStore) Find(ctx context.Context, collection string, q Query) ([]bson.Raw, error) {
	docs, err := s.Store.Find(ctx, collection, q)
	s.observe("find", collection, err)
	return docs, err
}

func (s *instrumentedStore) observe(op, collection string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.ops.WithLabelValues(op, collection, outcome).Inc()
}
