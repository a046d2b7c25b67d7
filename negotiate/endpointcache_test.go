package negotiate

import "testing"

func TestEndpointCache_LearnAndLookup(t *testing.T) {
	c := NewEndpointCache()
	if _, ok := c.StructureIDFor("https://api.example.com/users/2"); ok {
		t.Fatal("fresh cache should have no entries")
	}
	c.Learn("https://api.example.com/users/2", "L0:1-L1:2")
	id, ok := c.StructureIDFor("https://api.example.com/users/2")
	if !ok || id != "L0:1-L1:2" {
		t.Fatalf("StructureIDFor() = (%q, %v), want (\"L0:1-L1:2\", true)", id, ok)
	}
}

func TestEndpointCache_Forget(t *testing.T) {
	c := NewEndpointCache()
	c.Learn("https://api.example.com/users/2", "L0:1-L1:2")
	c.Forget("https://api.example.com/users/2")
	if _, ok := c.StructureIDFor("https://api.example.com/users/2"); ok {
		t.Fatal("Forget() should discard the learned id")
	}
}

func TestEndpointCache_CapableOrigin(t *testing.T) {
	c := NewEndpointCache()
	if c.IsCapable("https://api.example.com") {
		t.Fatal("fresh cache should not consider any origin capable")
	}
	c.MarkCapable("https://api.example.com")
	if !c.IsCapable("https://api.example.com") {
		t.Fatal("MarkCapable() should make the origin capable")
	}
}

func TestEndpointCache_Reset(t *testing.T) {
	c := NewEndpointCache()
	c.Learn("https://api.example.com/users/2", "L0:1-L1:2")
	c.MarkCapable("https://api.example.com")
	c.Reset()
	if _, ok := c.StructureIDFor("https://api.example.com/users/2"); ok {
		t.Fatal("Reset() should discard endpoint entries")
	}
	if c.IsCapable("https://api.example.com") {
		t.Fatal("Reset() should discard origin capability")
	}
}
