package synpatico_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/synpatico-dev/synpatico"
	synpaticotest "github.com/synpatico-dev/synpatico/synpatico-test"
)

func TestEngine_LearnThenDecode(t *testing.T) {
	e := synpatico.NewEngine()
	v := synpaticotest.SampleStructure()

	def, err := e.Learn(v)
	if err != nil {
		t.Fatalf("Learn() error: %v", err)
	}

	packet, err := e.Encode(v)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if packet.StructureId != def.ID {
		t.Fatalf("Encode() structureId = %q, want %q", packet.StructureId, def.ID)
	}

	got, err := e.Decode(packet)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if diff := cmp.Diff(synpatico.ValueToAny(v), synpatico.ValueToAny(got)); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_Learn_Idempotent(t *testing.T) {
	e := synpatico.NewEngine()
	v := synpaticotest.SampleStructure()

	first, err := e.Learn(v)
	if err != nil {
		t.Fatalf("Learn() error: %v", err)
	}
	if e.Shapes().Len() != 1 {
		t.Fatalf("ShapeCache has %d entries after first Learn, want 1", e.Shapes().Len())
	}

	second, err := e.Learn(v)
	if err != nil {
		t.Fatalf("Learn() error: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("repeated Learn() of the same structure produced different ids: %q != %q", first.ID, second.ID)
	}
	if e.Shapes().Len() != 1 {
		t.Fatalf("ShapeCache grew on a repeat Learn(): %d entries, want 1", e.Shapes().Len())
	}
}

func TestEngine_Decode_UnknownStructureId(t *testing.T) {
	e := synpatico.NewEngine()
	_, err := e.Decode(synpatico.Packet{StructureId: "L0:dead-L1:beef"})
	if !errors.Is(err, synpatico.ErrShapeMismatch) {
		t.Fatalf("Decode() error = %v, want ErrShapeMismatch", err)
	}
}

func TestEngine_ResetState_ClearsShapeCache(t *testing.T) {
	e := synpatico.NewEngine()
	if _, err := e.Learn(synpaticotest.SampleStructure()); err != nil {
		t.Fatalf("Learn() error: %v", err)
	}
	e.ResetState()
	if n := e.Shapes().Len(); n != 0 {
		t.Fatalf("ShapeCache has %d entries after ResetState(), want 0", n)
	}
}

func TestEngine_CollisionMode(t *testing.T) {
	e := synpatico.NewEngine(synpatico.WithCollisionMode(true))
	first, err := e.Fingerprint(synpaticotest.SampleStructure())
	if err != nil {
		t.Fatalf("Fingerprint() error: %v", err)
	}
	second, err := e.Fingerprint(synpaticotest.SampleStructure())
	if err != nil {
		t.Fatalf("Fingerprint() error: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("WithCollisionMode(true) should yield a fresh id each call for equal-structure input")
	}
}

func TestEngine_LearnFingerprint_EncodeWithFingerprintAgree(t *testing.T) {
	e := synpatico.NewEngine(synpatico.WithCollisionMode(true))
	v := synpaticotest.SampleStructure()

	def, fp, err := e.LearnFingerprint(v)
	if err != nil {
		t.Fatalf("LearnFingerprint() error: %v", err)
	}
	if fp.ID != def.ID {
		t.Fatalf("LearnFingerprint() fp.ID = %q, want %q (def.ID)", fp.ID, def.ID)
	}

	packet := e.EncodeWithFingerprint(v, fp)
	if packet.StructureId != def.ID {
		t.Fatalf("EncodeWithFingerprint() structureId = %q, want %q", packet.StructureId, def.ID)
	}

	got, err := e.Decode(packet)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if diff := cmp.Diff(synpatico.ValueToAny(v), synpatico.ValueToAny(got)); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_Encode_RefingerprintsUnderCollisionMode(t *testing.T) {
	// Documents why negotiate.Agent uses EncodeWithFingerprint instead
	// of Encode: calling Fingerprint twice for the same structure under
	// collision mode consumes the CollisionCounter twice, so a second,
	// independent Encode() call mints an id Learn() never stored.
	e := synpatico.NewEngine(synpatico.WithCollisionMode(true))
	v := synpaticotest.SampleStructure()

	def, err := e.Learn(v)
	if err != nil {
		t.Fatalf("Learn() error: %v", err)
	}
	packet, err := e.Encode(v)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if packet.StructureId == def.ID {
		t.Fatal("expected Encode() to mint a different id than Learn() under collision mode")
	}
}

func TestEngine_InvalidMaxDepthFailsValidation(t *testing.T) {
	e := synpatico.NewEngine(synpatico.WithMaxDepth(-1))
	if err := e.Validate(); err == nil {
		t.Fatal("expected Validate() to reject a non-positive max depth")
	}
}

func TestEngine_RequestOptimizationDefaultsOff(t *testing.T) {
	e := synpatico.NewEngine()
	if e.RequestOptimizationEnabled() {
		t.Fatal("request optimization must default to off per spec.md §4.G")
	}
}
