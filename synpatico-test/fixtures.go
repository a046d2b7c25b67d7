// Package synpaticotest provides fixture builders for the module's
// _test.go files, mirroring cereal/testing's role (cereal/testing's
// SimpleUser/SanitizedUser become SampleStructure/RichStructure here).
package synpaticotest

import (
	"encoding/json"

	"github.com/synpatico-dev/synpatico"
)

// FromJSON decodes a JSON literal into the Value domain the way
// negotiate.Agent's LEARN state does: json.Unmarshal into `any`, then
// synpatico.ValueFromAny. Panics on malformed JSON since fixtures are
// always well-formed by construction — a panic here is a bug in the
// fixture, not a caller error.
func FromJSON(raw string) synpatico.Value {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		panic("synpaticotest: invalid fixture JSON: " + err.Error())
	}
	return synpatico.ValueFromAny(v)
}

// SampleStructure is the canonical two-request-cycle fixture from
// spec.md §8.2.1: a reqres.in-shaped user envelope.
func SampleStructure() synpatico.Value {
	return FromJSON(`{"data":{"id":2,"email":"janet.weaver@reqres.in"}}`)
}

// SampleStructureReordered is SampleStructure with its top-level keys
// permuted — same structure, used to exercise spec.md §8.1.3's
// key-order insensitivity invariant. Object field order is never
// semantic in this package's Value domain, so this is just a second
// literal with the same shape rather than an actual permutation of a
// Go map (which has no stable order to permute in the first place).
func SampleStructureReordered() synpatico.Value {
	return FromJSON(`{"c":3,"b":2,"a":1}`)
}

// SampleStructureOriginalOrder is the companion to
// SampleStructureReordered for spec.md §8.2.2.
func SampleStructureOriginalOrder() synpatico.Value {
	return FromJSON(`{"a":1,"b":2,"c":3}`)
}

// UsersList and UsersListDrifted are spec.md §8.2.3's pair: the first
// item's shape differs between them ("age" vs "role"), so their
// fingerprints must differ even though both describe a "users" array
// of two people-shaped objects.
func UsersList() synpatico.Value {
	return FromJSON(`{"users":[{"name":"a","age":1},{"name":"b","age":2}]}`)
}

func UsersListDrifted() synpatico.Value {
	return FromJSON(`{"users":[{"name":"a","role":"x"},{"name":"b","age":2}]}`)
}

// RichStructure exercises all four rich scalars at once: a temporal
// instant, a keyed mapping, an unordered set, and an error-like
// record, each nested under a plain object field. Rich scalars have
// no literal JSON form, so this is built directly rather than via
// FromJSON.
func RichStructure() synpatico.Value {
	return &synpatico.Object{Fields: []synpatico.Field{
		{Key: "createdAt", Val: synpatico.DateValue{ISO8601: "2024-01-15T10:30:00.000Z"}},
		{Key: "tags", Val: &synpatico.SetValue{Items: []synpatico.Value{
			synpatico.String("alpha"), synpatico.String("beta"),
		}}},
		{Key: "headers", Val: &synpatico.MapValue{Entries: []synpatico.MapEntry{
			{Key: synpatico.String("Content-Type"), Val: synpatico.String("application/json")},
		}}},
		{Key: "lastError", Val: synpatico.ErrorValue{
			Message: "upstream timeout", Name: "TimeoutError",
			Stack: "at fetch (client.go:42)", HasStack: true,
		}},
	}}
}

// Cyclic builds a self-referential object: obj.self == obj. JSON has
// no cycle literal, so — like RichStructure — this is built directly,
// exercising spec.md §8.1.9/§4.B.4's cycle-handling path.
func Cyclic() synpatico.Value {
	obj := &synpatico.Object{}
	obj.Fields = []synpatico.Field{
		{Key: "name", Val: synpatico.String("root")},
		{Key: "self", Val: obj},
	}
	return obj
}

// CyclicArray is Cyclic's array-shaped twin: an array whose second
// element (after the number 1) is itself.
func CyclicArray() synpatico.Value {
	arr := &synpatico.Array{}
	arr.Items = []synpatico.Value{synpatico.Number(1), arr}
	return arr
}

// EmptyObject and EmptyArray back spec.md §8.1.8's constant-id checks.
func EmptyObject() synpatico.Value { return &synpatico.Object{} }
func EmptyArray() synpatico.Value  { return &synpatico.Array{} }
