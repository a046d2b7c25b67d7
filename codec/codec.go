// Package codec provides content-type aware marshaling for structure
// snapshots: a StructureDefinition and/or the most recent Packet
// observed for it, as dumped and loaded by cmd/synpatico-inspect.
package codec

import (
	"fmt"
	"sync"

	"github.com/synpatico-dev/synpatico"
)

// Codec provides content-type aware marshaling. The same interface
// cereal's codecs implement, kept because the contract — a
// content-type label plus a symmetric Marshal/Unmarshal pair — fits
// this domain exactly once the payload becomes a Snapshot instead of
// an arbitrary tagged struct.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// Snapshot is the unit cmd/synpatico-inspect dumps and loads: a
// learned structure plus, optionally, the last packet encoded against
// it. Snapshot itself is never handed to a Codec directly — its
// Structure field carries a Shape, a non-empty interface with no
// exported fields, which none of the registered codecs can populate
// by reflection alone. DumpSnapshot/LoadSnapshot lower it through
// wireSnapshot, a plain tagged struct every codec can marshal and
// unmarshal without a format-specific Marshaler interface.
type Snapshot struct {
	Structure synpatico.StructureDefinition
	Packet    *synpatico.Packet
}

// wireSnapshot is Snapshot with Structure lowered to its tagged wire
// form (synpatico.StructureDefinitionWire). Field tags cover every
// registered format's naming convention (json/yaml share camelCase;
// bson uses the same keys so a round trip through mongo-driver's
// bson.Marshal doesn't silently rename fields).
type wireSnapshot struct {
	Structure synpatico.StructureDefinitionWire `json:"structure" yaml:"structure" bson:"structure" xml:"structure"`
	Packet    *synpatico.Packet                 `json:"packet,omitempty" yaml:"packet,omitempty" bson:"packet,omitempty" xml:"packet,omitempty"`
}

// Registry maps a content-type string to the Codec that handles it.
// Grounded on cereal/registry.go's RWMutex-guarded map shape, scaled
// down: a handful of codecs registered once at startup, so the lock
// mostly protects Lookup against a concurrent, unexpected Register.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

// Register adds c under its own ContentType, overwriting any codec
// previously registered for that content type.
func (r *Registry) Register(c Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[c.ContentType()] = c
}

// Lookup returns the codec registered for contentType, if any.
func (r *Registry) Lookup(contentType string) (Codec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.codecs[contentType]
	return c, ok
}

// DumpSnapshot marshals snap with the codec registered for
// contentType, returning an error that names the content type when
// none is registered.
func (r *Registry) DumpSnapshot(contentType string, snap Snapshot) ([]byte, error) {
	c, ok := r.Lookup(contentType)
	if !ok {
		return nil, fmt.Errorf("codec: no codec registered for content type %q", contentType)
	}
	w := wireSnapshot{
		Structure: snap.Structure.ToWire(),
		Packet:    snap.Packet,
	}
	return c.Marshal(w)
}

// LoadSnapshot unmarshals data with the codec registered for
// contentType.
func (r *Registry) LoadSnapshot(contentType string, data []byte) (Snapshot, error) {
	c, ok := r.Lookup(contentType)
	if !ok {
		return Snapshot{}, fmt.Errorf("codec: no codec registered for content type %q", contentType)
	}
	var w wireSnapshot
	if err := c.Unmarshal(data, &w); err != nil {
		return Snapshot{}, err
	}
	def, err := w.Structure.ToStructureDefinition()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Structure: def, Packet: w.Packet}, nil
}
