package json

import (
	"testing"

	"github.com/synpatico-dev/synpatico"
	"github.com/synpatico-dev/synpatico/codec"
)

func TestNew(t *testing.T) {
	if New() == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	if got := New().ContentType(); got != "application/json" {
		t.Errorf("ContentType() = %q, want %q", got, "application/json")
	}
}

func TestMarshalUnmarshalSnapshot(t *testing.T) {
	c := New()
	original := codec.Snapshot{
		Structure: synpatico.StructureDefinition{ID: "L0:1-L1:2"},
	}

	data, err := c.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored codec.Snapshot
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if restored.Structure.ID != original.Structure.ID {
		t.Errorf("round-trip ID = %q, want %q", restored.Structure.ID, original.Structure.ID)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	var v codec.Snapshot
	if err := New().Unmarshal([]byte("not json"), &v); err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}
