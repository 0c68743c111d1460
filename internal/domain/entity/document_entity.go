package entity

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is a schema-flexible record of one of the generic collections
// (videos, forum posts, trainers, success stories, products).
type Document map[string]any

// IDField is the store-assigned identifier key.
const IDField = "_id"

// ParseID validates a store identifier given as a hex string.
func ParseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// Lookup resolves a dotted path such as "seller.email".
func (d Document) Lookup(path string) (any, bool) {
	var cur any = map[string]any(d)
	for _, part := range strings.Split(path, ".") {
		switch m := cur.(type) {
		case map[string]any:
			v, ok := m[part]
			if !ok {
				return nil, false
			}
			cur = v
		case Document:
			v, ok := m[part]
			if !ok {
				return nil, false
			}
			cur = v
		default:
			return nil, false
		}
	}
	return cur, true
}

// Clone returns a shallow copy.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
