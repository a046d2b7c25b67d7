// Package msgpack adapts vmihailenco/msgpack to codec.Codec, the
// format synpatico-inspect offers for snapshot dumps meant for
// storage rather than reading — a learned Shape tree plus a sample
// Packet compacts noticeably against the JSON form once field names
// repeat across many array elements.
package msgpack

import (
	"github.com/synpatico-dev/synpatico/codec"
	"github.com/vmihailenco/msgpack/v5"
)

type msgpackCodec struct{}

// New returns a MessagePack codec.Codec.
func New() codec.Codec {
	return &msgpackCodec{}
}

func (c *msgpackCodec) ContentType() string { return "application/msgpack" }

func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (c *msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
