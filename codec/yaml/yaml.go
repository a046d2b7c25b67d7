// Package yaml adapts gopkg.in/yaml.v3 to codec.Codec, for
// synpatico-inspect snapshot dumps meant to be diffed or checked into
// a fixtures directory — YAML's block style reads a learned Shape
// tree more legibly than single-line JSON.
package yaml

import (
	"github.com/synpatico-dev/synpatico/codec"
	"gopkg.in/yaml.v3"
)

type yamlCodec struct{}

// New returns a YAML codec.Codec.
func New() codec.Codec {
	return &yamlCodec{}
}

func (c *yamlCodec) ContentType() string { return "application/yaml" }

func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (c *yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
