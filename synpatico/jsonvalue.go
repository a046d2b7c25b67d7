package synpatico

import "sort"

// ValueToAny converts v into the plain-data shape (nil, bool,
// float64, string, []any, map[string]any) that encoding/json already
// knows how to marshal. Rich scalars that reach this function
// unenveloped (i.e. callers that bypass ToEnvelope) are converted to
// their most natural plain-JSON form rather than rejected, since
// ValueToAny has no way to signal "wrap me first" — Encode always
// calls ToEnvelope before this function runs.
func ValueToAny(v Value) any {
	if v == nil {
		return nil
	}
	switch val := v.(type) {
	case Null:
		return nil
	case Undefined:
		return nil
	case Bool:
		return bool(val)
	case Number:
		return float64(val)
	case String:
		return string(val)
	case BigInt:
		return string(val)
	case *Array:
		out := make([]any, len(val.Items))
		for i, item := range val.Items {
			out[i] = ValueToAny(item)
		}
		return out
	case *Object:
		out := make(map[string]any, len(val.Fields))
		for _, f := range val.Fields {
			out[f.Key] = ValueToAny(f.Val)
		}
		return out
	case DateValue:
		return val.ISO8601
	case *MapValue:
		out := make([]any, len(val.Entries))
		for i, e := range val.Entries {
			out[i] = []any{ValueToAny(e.Key), ValueToAny(e.Val)}
		}
		return out
	case *SetValue:
		out := make([]any, len(val.Items))
		for i, item := range val.Items {
			out[i] = ValueToAny(item)
		}
		return out
	case ErrorValue:
		out := map[string]any{"message": val.Message, "name": val.Name}
		if val.HasStack {
			out["stack"] = val.Stack
		}
		return out
	default:
		return nil
	}
}

// ValueFromAny is the inverse of ValueToAny: it converts data freshly
// decoded by encoding/json (via `any`) into this package's Value
// domain. Every JSON object becomes an *Object (field order sorted —
// JSON object member order carries no semantics per RFC 8259, and
// every consumer downstream of this function re-sorts anyway), every
// JSON array becomes an *Array, and scalars map onto Null/Bool/
// Number/String directly. Rich scalars are never produced here —
// that is FromEnvelope's job, run separately over the resulting tree.
func ValueFromAny(x any) Value {
	switch val := x.(type) {
	case nil:
		return Null{}
	case bool:
		return Bool(val)
	case float64:
		return Number(val)
	case string:
		return String(val)
	case []any:
		items := make([]Value, len(val))
		for i, item := range val {
			items[i] = ValueFromAny(item)
		}
		return &Array{Items: items}
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			fields[i] = Field{Key: k, Val: ValueFromAny(val[k])}
		}
		return &Object{Fields: fields}
	default:
		return Null{}
	}
}
