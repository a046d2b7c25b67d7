package main

import (
	"github.com/synpatico-dev/synpatico/codec"
	"github.com/synpatico-dev/synpatico/codec/bson"
	"github.com/synpatico-dev/synpatico/codec/json"
	"github.com/synpatico-dev/synpatico/codec/msgpack"
	"github.com/synpatico-dev/synpatico/codec/xml"
	"github.com/synpatico-dev/synpatico/codec/yaml"
)

// formatContentType maps the --format flag's short names to the
// registered codec's content type.
var formatContentType = map[string]string{
	"json":    "application/json",
	"yaml":    "application/yaml",
	"msgpack": "application/msgpack",
	"xml":     "application/xml",
	"bson":    "application/bson",
}

func newRegistry() *codec.Registry {
	r := codec.NewRegistry()
	r.Register(json.New())
	r.Register(yaml.New())
	r.Register(msgpack.New())
	r.Register(xml.New())
	r.Register(bson.New())
	return r
}
