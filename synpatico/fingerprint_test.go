package synpatico_test

import (
	"testing"
	"time"

	"github.com/synpatico-dev/synpatico"
	synpaticotest "github.com/synpatico-dev/synpatico/synpatico-test"
)

func fingerprintID(t *testing.T, v synpatico.Value) synpatico.StructureId {
	t.Helper()
	res, err := synpatico.Fingerprint(v, synpatico.FingerprintOptions{})
	if err != nil {
		t.Fatalf("Fingerprint() error: %v", err)
	}
	return res.ID
}

// TestFingerprint_Deterministic covers spec.md §8.1.1: two independent
// calls over equal-but-freshly-built input trees agree.
func TestFingerprint_Deterministic(t *testing.T) {
	a := fingerprintID(t, synpaticotest.SampleStructure())
	b := fingerprintID(t, synpaticotest.SampleStructure())
	if a != b {
		t.Fatalf("Fingerprint() not deterministic: %q != %q", a, b)
	}
}

// TestFingerprint_KeyOrderInsensitive covers spec.md §8.1.3.
func TestFingerprint_KeyOrderInsensitive(t *testing.T) {
	a := fingerprintID(t, synpaticotest.SampleStructureOriginalOrder())
	b := fingerprintID(t, synpaticotest.SampleStructureReordered())
	if a != b {
		t.Fatalf("Fingerprint() is key-order sensitive: %q != %q", a, b)
	}
}

// TestFingerprint_ArrayOrderSensitive covers spec.md §8.1.4.
func TestFingerprint_ArrayOrderSensitive(t *testing.T) {
	a := fingerprintID(t, synpaticotest.FromJSON(`[1,"x"]`))
	b := fingerprintID(t, synpaticotest.FromJSON(`["x",1]`))
	if a == b {
		t.Fatal("arrays with the same elements in different order must fingerprint differently")
	}
}

// TestFingerprint_LengthSensitive covers spec.md §8.1.5.
func TestFingerprint_LengthSensitive(t *testing.T) {
	a := fingerprintID(t, synpaticotest.FromJSON(`[1,2]`))
	b := fingerprintID(t, synpaticotest.FromJSON(`[1,2,3]`))
	if a == b {
		t.Fatal("arrays of different lengths must fingerprint differently")
	}
}

// TestFingerprint_TypeSensitive covers spec.md §8.1.6.
func TestFingerprint_TypeSensitive(t *testing.T) {
	a := fingerprintID(t, synpaticotest.FromJSON(`{"a":1}`))
	b := fingerprintID(t, synpaticotest.FromJSON(`{"a":"1"}`))
	if a == b {
		t.Fatal("changing a leaf kind must change the id")
	}
}

// TestFingerprint_StructuralEquivalence covers spec.md §8.1.2: same
// structure, different values.
func TestFingerprint_StructuralEquivalence(t *testing.T) {
	a := fingerprintID(t, synpaticotest.FromJSON(`{"id":2,"email":"janet.weaver@reqres.in"}`))
	b := fingerprintID(t, synpaticotest.FromJSON(`{"id":99,"email":"someone.else@reqres.in"}`))
	if a != b {
		t.Fatalf("values with identical structure must share an id: %q != %q", a, b)
	}
}

// TestFingerprint_EmptyConstants covers spec.md §8.1.8.
func TestFingerprint_EmptyConstants(t *testing.T) {
	if got := fingerprintID(t, synpaticotest.EmptyObject()); got != "{}" {
		t.Fatalf("Fingerprint(empty object) = %q, want {}", got)
	}
	if got := fingerprintID(t, synpaticotest.EmptyArray()); got != "[]" {
		t.Fatalf("Fingerprint(empty array) = %q, want []", got)
	}
}

// TestFingerprint_UsersListDrift covers spec.md §8.2.3.
func TestFingerprint_UsersListDrift(t *testing.T) {
	a := fingerprintID(t, synpaticotest.UsersList())
	b := fingerprintID(t, synpaticotest.UsersListDrifted())
	if a == b {
		t.Fatal("first item's shape differs between fixtures, ids must differ")
	}
}

// TestFingerprint_CycleSafety covers spec.md §8.1.9: finite time, and
// two cycles of the same topology agree.
func TestFingerprint_CycleSafety(t *testing.T) {
	type result struct {
		id  synpatico.StructureId
		err error
	}
	done := make(chan result, 1)
	go func() {
		res, err := synpatico.Fingerprint(synpaticotest.Cyclic(), synpatico.FingerprintOptions{})
		done <- result{res.ID, err}
	}()

	var a synpatico.StructureId
	select {
	case r := <-done:
		if r.err != nil {
			t.Fatalf("Fingerprint() error: %v", r.err)
		}
		a = r.id
	case <-time.After(2 * time.Second):
		t.Fatal("Fingerprint() on a cyclic value did not return")
	}

	b := fingerprintID(t, synpaticotest.Cyclic())
	if a != b {
		t.Fatalf("two cycles of the same topology must agree: %q != %q", a, b)
	}
}

// TestFingerprint_CyclicArraySafety exercises the array half of the
// cycle-handling path (spec.md §4.B.4).
func TestFingerprint_CyclicArraySafety(t *testing.T) {
	_ = fingerprintID(t, synpaticotest.CyclicArray())
}

// TestFingerprint_CollisionModeMonotonic covers spec.md §8.1.10.
func TestFingerprint_CollisionModeMonotonic(t *testing.T) {
	counters := synpatico.NewCollisionCounter()
	opts := synpatico.FingerprintOptions{NewIDOnCollision: true, Counters: counters}

	var lastSignature string
	for i := 0; i < 3; i++ {
		res, err := synpatico.Fingerprint(synpaticotest.SampleStructure(), opts)
		if err != nil {
			t.Fatalf("Fingerprint() error: %v", err)
		}
		if res.CollisionCount != i {
			t.Fatalf("call %d: CollisionCount = %d, want %d", i, res.CollisionCount, i)
		}
		signature := signatureOf(string(res.ID))
		if i > 0 && signature != lastSignature {
			t.Fatalf("call %d: L1+ signature changed: %q != %q", i, signature, lastSignature)
		}
		lastSignature = signature
	}
}

// signatureOf strips the "L0:..." prefix from a StructureId, leaving
// the L1+ signature collision mode must hold constant.
func signatureOf(id string) string {
	for i := 0; i < len(id); i++ {
		if id[i] == '-' {
			return id[i+1:]
		}
	}
	return ""
}
