package synpatico_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/synpatico-dev/synpatico"
	synpaticotest "github.com/synpatico-dev/synpatico/synpatico-test"
)

// TestShapeWire_RoundTrips covers the codec.Snapshot load path: a
// Shape lowered to ShapeWire and raised back must equal the original
// — the invariant codec.Registry.LoadSnapshot depends on to
// reconstruct a usable StructureDefinition.
func TestShapeWire_RoundTrips(t *testing.T) {
	v := synpaticotest.RichStructure()
	shape, err := synpatico.ExtractShape(v, synpatico.ShapeOptions{})
	if err != nil {
		t.Fatalf("ExtractShape() error: %v", err)
	}

	wire := synpatico.ShapeToWire(shape)
	back, err := synpatico.ShapeFromWire(wire)
	if err != nil {
		t.Fatalf("ShapeFromWire() error: %v", err)
	}
	if diff := cmp.Diff(shape, back); diff != "" {
		t.Fatalf("shape changed across ShapeToWire/ShapeFromWire (-want +got):\n%s", diff)
	}
}

// TestShapeWire_MarshalsThroughPlainJSON covers the defect the wire
// form exists to fix: a bare Shape cannot round-trip through
// encoding/json because it is a non-empty interface with no exported
// fields, but ShapeWire — a plain tagged struct — can.
func TestShapeWire_MarshalsThroughPlainJSON(t *testing.T) {
	shape, err := synpatico.ExtractShape(synpaticotest.SampleStructure(), synpatico.ShapeOptions{})
	if err != nil {
		t.Fatalf("ExtractShape() error: %v", err)
	}
	wire := synpatico.ShapeToWire(shape)

	raw, err := json.Marshal(wire)
	if err != nil {
		t.Fatalf("json.Marshal(ShapeWire) error: %v", err)
	}

	var decoded synpatico.ShapeWire
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("json.Unmarshal(ShapeWire) error: %v", err)
	}
	back, err := synpatico.ShapeFromWire(decoded)
	if err != nil {
		t.Fatalf("ShapeFromWire() error: %v", err)
	}
	if diff := cmp.Diff(shape, back); diff != "" {
		t.Fatalf("shape changed across JSON round trip (-want +got):\n%s", diff)
	}
}

// TestStructureDefinition_JSONRoundTrips covers spec.md §3.3's
// StructureDefinition crossing encoding/json, the exact path
// cmd/synpatico-inspect's decode subcommand relies on.
func TestStructureDefinition_JSONRoundTrips(t *testing.T) {
	v := synpaticotest.SampleStructure()
	fp, err := synpatico.Fingerprint(v, synpatico.FingerprintOptions{})
	if err != nil {
		t.Fatalf("Fingerprint() error: %v", err)
	}
	shape, err := synpatico.ExtractShape(v, synpatico.ShapeOptions{})
	if err != nil {
		t.Fatalf("ExtractShape() error: %v", err)
	}
	def := synpatico.StructureDefinition{ID: fp.ID, Shape: shape}

	raw, err := json.Marshal(def)
	if err != nil {
		t.Fatalf("json.Marshal(StructureDefinition) error: %v", err)
	}

	var decoded synpatico.StructureDefinition
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("json.Unmarshal(StructureDefinition) error: %v", err)
	}
	if decoded.ID != def.ID {
		t.Fatalf("ID = %q, want %q", decoded.ID, def.ID)
	}
	if diff := cmp.Diff(def.Shape, decoded.Shape); diff != "" {
		t.Fatalf("Shape changed across JSON round trip (-want +got):\n%s", diff)
	}
}
