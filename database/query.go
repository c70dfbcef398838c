package database

import (
	"bytes"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Predicate is an exact-match condition on a single top-level field.
type Predicate struct {
	Field string
	Value any
}

// Query is a conjunction of predicates. The zero value matches every document.
type Query struct {
	preds []Predicate
}

// All returns the query matching every document.
func All() Query {
	return Query{}
}

// Where returns a copy of q with an extra exact-match predicate.
func (q Query) Where(field string, value any) Query {
	preds := make([]Predicate, 0, len(q.preds)+1)
	preds = append(preds, q.preds...)
	preds = append(preds, Predicate{Field: field, Value: value})
	return Query{preds: preds}
}

func (q Query) Predicates() []Predicate {
	return append([]Predicate(nil), q.preds...)
}

func (q Query) IsEmpty() bool {
	return len(q.preds) == 0
}

// Filter renders q as a MongoDB filter document.
func (q Query) Filter() bson.D {
	filter := bson.D{}
	for _, p := range q.preds {
		filter = append(filter, bson.E{Key: p.Field, Value: p.Value})
	}
	return filter
}

// Matches reports whether doc satisfies every predicate. Values are compared
// by their bson encoding, so a string never matches a number.
func (q Query) Matches(doc bson.Raw) bool {
	for _, p := range q.preds {
		got, err := doc.LookupErr(p.Field)
		if err != nil {
			return false
		}
		want, err := rawValueOf(p.Value)
		if err != nil {
			return false
		}
		if got.Type != want.Type || !bytes.Equal(got.Value, want.Value) {
			return false
		}
	}
	return true
}

func rawValueOf(v any) (bson.RawValue, error) {
	b, err := bson.Marshal(bson.D{{Key: "v", Value: v}})
	if err != nil {
		return bson.RawValue{}, err
	}
	return bson.Raw(b).LookupErr("v")
}
