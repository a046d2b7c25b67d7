package synpatico

import "testing"

func TestHashBytes_Deterministic(t *testing.T) {
	a := HashBytes([]byte("hello"), FlavorFNV1a)
	b := HashBytes([]byte("hello"), FlavorFNV1a)
	if a != b {
		t.Fatalf("HashBytes() not deterministic: %q != %q", a, b)
	}
}

func TestHashBytes_EmptyInputDefined(t *testing.T) {
	got := HashBytes(nil, FlavorFNV1a)
	if got == "" {
		t.Fatal("HashBytes(nil) must return a defined value, got empty string")
	}
}

func TestHashBytes_FlavorsDiffer(t *testing.T) {
	a := HashBytes([]byte("structure"), FlavorFNV1a)
	b := HashBytes([]byte("structure"), FlavorDJB2XOR)
	if a == b {
		t.Fatal("FlavorFNV1a and FlavorDJB2XOR should not coincide on this input")
	}
}

func TestHashBytes_SingleBitFlipChangesOutput(t *testing.T) {
	base := []byte{0x00, 0x00, 0x00, 0x00}
	flipped := []byte{0x01, 0x00, 0x00, 0x00}
	a := HashBytes(base, FlavorFNV1a)
	b := HashBytes(flipped, FlavorFNV1a)
	if a == b {
		t.Fatal("a single input bit flip should change the hash output")
	}
}

func TestHashBytes_LowercaseHexNoLeadingZeros(t *testing.T) {
	got := HashBytes([]byte("x"), FlavorFNV1a)
	for _, r := range got {
		if !(r >= '0' && r <= '9') && !(r >= 'a' && r <= 'f') {
			t.Fatalf("HashBytes() = %q, want lowercase hex", got)
		}
	}
	if len(got) > 1 && got[0] == '0' {
		t.Fatalf("HashBytes() = %q, want leading zeros trimmed", got)
	}
}

func TestArrayIndexKeyBit_DoesNotCollideWithObjectKeyNamed(t *testing.T) {
	arrayBit := arrayIndexKeyBit("[0]")
	objectBit := keyBit("[0]")
	if arrayBit == objectBit {
		t.Fatal("array-index key-bit namespace must not collide with an object field literally named \"[0]\"")
	}
}

func TestKeyBit_SameKeyAnyCall(t *testing.T) {
	if keyBit("email") != keyBit("email") {
		t.Fatal("keyBit must be a pure function of its input")
	}
}
