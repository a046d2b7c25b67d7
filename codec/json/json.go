// Package json adapts encoding/json to codec.Codec, the default
// format for synpatico-inspect snapshot dumps — the same shape a
// packet already travels the wire in, so this is also what "pretty
// print a learned structure" falls back to with no --format flag.
package json

import (
	"encoding/json"

	"github.com/synpatico-dev/synpatico/codec"
)

type jsonCodec struct{}

// New returns a JSON codec.Codec.
func New() codec.Codec {
	return &jsonCodec{}
}

func (c *jsonCodec) ContentType() string { return "application/json" }

func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
