package database

import (
	"strconv"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DocumentID is a stored document's _id in string form. ObjectIDs decode to
// their hex form and other scalars to their text, so every read path shows
// a string whatever the store holds.
type DocumentID string

func (id *DocumentID) UnmarshalBSONValue(t byte, data []byte) error {
	rv := bson.RawValue{Type: bson.Type(t), Value: data}
	switch rv.Type {
	case bson.TypeObjectID:
		*id = DocumentID(rv.ObjectID().Hex())
	case bson.TypeString:
		*id = DocumentID(rv.StringValue())
	case bson.TypeInt32:
		*id = DocumentID(strconv.FormatInt(int64(rv.Int32()), 10))
	case bson.TypeInt64:
		*id = DocumentID(strconv.FormatInt(rv.Int64(), 10))
	case bson.TypeDouble:
		*id = DocumentID(strconv.FormatFloat(rv.Double(), 'g', -1, 64))
	case bson.TypeNull, bson.TypeUndefined:
		*id = ""
	default:
		*id = DocumentID(rv.String())
	}
	return nil
}

func (id DocumentID) String() string {
	return string(id)
}
