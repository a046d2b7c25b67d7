// Package xml adapts encoding/xml to codec.Codec, offered by
// synpatico-inspect alongside the other formats for operators whose
// snapshot archival pipeline already standardizes on XML.
package xml

import (
	"encoding/xml"

	"github.com/synpatico-dev/synpatico/codec"
)

type xmlCodec struct{}

// New returns an XML codec.Codec.
func New() codec.Codec {
	return &xmlCodec{}
}

func (c *xmlCodec) ContentType() string { return "application/xml" }

func (c *xmlCodec) Marshal(v any) ([]byte, error) {
	return xml.MarshalIndent(v, "", "  ")
}

func (c *xmlCodec) Unmarshal(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}
