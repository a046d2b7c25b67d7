// Package bson adapts go.mongodb.org/mongo-driver/bson to
// codec.Codec. No live MongoDB connection is involved — Marshal and
// Unmarshal are pure encoding functions — this exists so a learned
// structure can be dropped straight into a Mongo collection for
// operators who already keep their fixture corpus there.
package bson

import (
	"github.com/synpatico-dev/synpatico/codec"
	"go.mongodb.org/mongo-driver/bson"
)

type bsonCodec struct{}

// New returns a BSON codec.Codec.
func New() codec.Codec {
	return &bsonCodec{}
}

func (c *bsonCodec) ContentType() string { return "application/bson" }

func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}
