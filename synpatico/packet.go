package synpatico

import "encoding/json"

// PacketType is the only packet type this revision defines (spec.md
// §4.F, §6.2). The field exists on the wire so a future revision can
// introduce a second type without breaking readers that switch on it.
const PacketType = "values-only"

// PacketMetadata carries the fingerprinter's auxiliary output alongside
// the packet (spec.md §6.2).
type PacketMetadata struct {
	CollisionCount int `json:"collisionCount"`
	Levels         int `json:"levels"`
}

// Packet is the wire packet of spec.md §6.2. Its JSON encoding is
// exactly `{"type","structureId","values","metadata"}`; unknown fields
// on decode are ignored, per the wire contract.
type Packet struct {
	Type        string
	StructureId StructureId
	Values      []Value
	Metadata    PacketMetadata
}

type wirePacket struct {
	Type        string         `json:"type"`
	StructureId string         `json:"structureId"`
	Values      []any          `json:"values"`
	Metadata    PacketMetadata `json:"metadata"`
}

// MarshalJSON implements json.Marshaler by lowering Values through
// ValueToAny — Value itself carries no json tags, so Packet is the
// seam between this package's value domain and encoding/json.
func (p Packet) MarshalJSON() ([]byte, error) {
	w := wirePacket{
		Type:        p.Type,
		StructureId: string(p.StructureId),
		Values:      make([]any, len(p.Values)),
		Metadata:    p.Metadata,
	}
	for i, v := range p.Values {
		w.Values[i] = ValueToAny(v)
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler, the inverse of MarshalJSON.
func (p *Packet) UnmarshalJSON(data []byte) error {
	var w wirePacket
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	p.Type = w.Type
	p.StructureId = StructureId(w.StructureId)
	p.Values = make([]Value, len(w.Values))
	for i, v := range w.Values {
		p.Values[i] = ValueFromAny(v)
	}
	p.Metadata = w.Metadata
	return nil
}

// StructureDefinition is what ShapeCache stores per StructureId
// (spec.md §3.6): the shape needed to decode any future packet
// claiming that id.
type StructureDefinition struct {
	ID    StructureId
	Shape Shape
}

// StructureDefinitionWire is the tagged wire form of StructureDefinition,
// used wherever a StructureDefinition must cross a format boundary
// (codec.Snapshot, cmd/synpatico-inspect). Shape is lowered to
// ShapeWire; ID is already a plain string underneath StructureId.
type StructureDefinitionWire struct {
	ID    string    `json:"id" yaml:"id" bson:"id" xml:"id"`
	Shape ShapeWire `json:"shape" yaml:"shape" bson:"shape" xml:"shape"`
}

// ToWire lowers d into its tagged wire form.
func (d StructureDefinition) ToWire() StructureDefinitionWire {
	return StructureDefinitionWire{ID: string(d.ID), Shape: ShapeToWire(d.Shape)}
}

// ToStructureDefinition is the inverse of ToWire.
func (w StructureDefinitionWire) ToStructureDefinition() (StructureDefinition, error) {
	shape, err := ShapeFromWire(w.Shape)
	if err != nil {
		return StructureDefinition{}, err
	}
	return StructureDefinition{ID: StructureId(w.ID), Shape: shape}, nil
}

// MarshalJSON implements json.Marshaler via StructureDefinitionWire,
// the same lowering Packet applies to Value — Shape has no exported
// fields for encoding/json's reflection to find otherwise.
func (d StructureDefinition) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToWire())
}

// UnmarshalJSON implements json.Unmarshaler, the inverse of MarshalJSON.
func (d *StructureDefinition) UnmarshalJSON(data []byte) error {
	var w StructureDefinitionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	def, err := w.ToStructureDefinition()
	if err != nil {
		return err
	}
	*d = def
	return nil
}

// Encode implements component F's encoder (spec.md §4.F): linearize v,
// wrap the resulting flat sequence through the rich-type envelope, and
// package it with the fingerprint already computed for v by the
// caller. Encode does not recompute the fingerprint itself — by the
// time EMIT is reached the agent state machine has already run LEARN
// (4.B) on this exact value, and recomputing it here would be wasted
// work on every single request.
func Encode(v Value, fp FingerprintResult) Packet {
	flat := Linearize(v)
	wrapped := make([]Value, len(flat))
	for i, leaf := range flat {
		wrapped[i] = ToEnvelope(leaf)
	}
	return Packet{
		Type:        PacketType,
		StructureId: fp.ID,
		Values:      wrapped,
		Metadata:    PacketMetadata{CollisionCount: fp.CollisionCount, Levels: fp.Levels},
	}
}

// Decode implements component F's decoder (spec.md §4.F): reconstruct
// a value tree from the packet's flat sequence against def's shape,
// then unwrap the rich-type envelope over the whole tree.
//
// Decode returns a *ShapeError wrapping ErrShapeMismatch (via
// Reconstruct) when the packet's value count is inconsistent with
// def.Shape — spec.md §4.F's "signals ShapeMismatch" failure mode.
// On that error neither Decode nor Reconstruct returns a partial
// value; the error's path names where the mismatch was found.
func Decode(p Packet, def StructureDefinition) (Value, error) {
	rebuilt, err := Reconstruct(p.Values, def.Shape)
	if err != nil {
		return nil, err
	}
	return FromEnvelope(rebuilt), nil
}

// ShouldEmitPacket implements the size-safety check of spec.md §4.F:
// a protocol-level optimization, not a correctness requirement. The
// caller compares the serialized packet against the serialized
// original and only sends the packet when it is strictly smaller.
func ShouldEmitPacket(packetJSON, originalJSON []byte) bool {
	return len(packetJSON) < len(originalJSON)
}
