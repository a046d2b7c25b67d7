package synpatico_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/synpatico-dev/synpatico"
	synpaticotest "github.com/synpatico-dev/synpatico/synpatico-test"
)

func extractShape(t *testing.T, v synpatico.Value) synpatico.Shape {
	t.Helper()
	s, err := synpatico.ExtractShape(v, synpatico.ShapeOptions{})
	if err != nil {
		t.Fatalf("ExtractShape() error: %v", err)
	}
	return s
}

// TestExtractShape_KeyOrderIgnored covers spec.md §3.2: Object.fields
// is always lexicographically ordered regardless of input order.
func TestExtractShape_KeyOrderIgnored(t *testing.T) {
	a := extractShape(t, synpaticotest.SampleStructureOriginalOrder())
	b := extractShape(t, synpaticotest.SampleStructureReordered())
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("shapes differ after key reorder (-a +b):\n%s", diff)
	}
}

// TestExtractShape_RichScalarsAreOpaqueLeaves covers spec.md §3.2:
// every Date/Map/Set/Error is Leaf{special_value}.
func TestExtractShape_RichScalarsAreOpaqueLeaves(t *testing.T) {
	s := extractShape(t, synpaticotest.RichStructure())
	obj, ok := s.(synpatico.ShapeObject)
	if !ok {
		t.Fatalf("ExtractShape() = %T, want ShapeObject", s)
	}
	for _, f := range obj.Fields {
		leaf, ok := f.Shape.(synpatico.ShapeLeaf)
		if !ok {
			t.Fatalf("field %q: shape = %T, want ShapeLeaf", f.Key, f.Shape)
		}
		if leaf.LeafKind != synpatico.LeafSpecialValue {
			t.Fatalf("field %q: LeafKind = %v, want special_value", f.Key, leaf.LeafKind)
		}
	}
}

// TestExtractShape_ArrayLengthIsPartOfShape covers spec.md §3.2.
func TestExtractShape_ArrayLengthIsPartOfShape(t *testing.T) {
	a := extractShape(t, synpaticotest.FromJSON(`[1,2]`))
	b := extractShape(t, synpaticotest.FromJSON(`[1,2,3]`))
	if cmp.Equal(a, b) {
		t.Fatal("arrays of different lengths must produce different shapes")
	}
}

// TestExtractShape_DepthCapReturnsError covers spec.md §7's recursion
// bound.
func TestExtractShape_DepthCapReturnsError(t *testing.T) {
	deep := synpaticotest.FromJSON(`{"a":{"b":{"c":{"d":1}}}}`)
	_, err := synpatico.ExtractShape(deep, synpatico.ShapeOptions{MaxDepth: 2})
	if err == nil {
		t.Fatal("expected an error when structure exceeds MaxDepth")
	}
}
