package synpatico

import (
	"sort"
	"strconv"
	"strings"
)

// ShapeLeafKind enumerates the leaf kinds of spec.md §3.2's grammar:
//
//	Leaf { kind: "null"|"bool"|"number"|"string"|"bigint"|"undefined"|"symbol"|"special_value" }
//
// special_value covers every rich scalar (Date/Map/Set/Error): they
// are opaque to shape (spec.md §3.2) but visible to the envelope and
// linearizer.
type ShapeLeafKind uint8

// Leaf kinds, matching spec.md §3.2 literally.
const (
	LeafNull ShapeLeafKind = iota
	LeafBool
	LeafNumber
	LeafString
	LeafBigInt
	LeafUndefined
	LeafSymbol
	LeafSpecialValue
)

func (k ShapeLeafKind) String() string {
	switch k {
	case LeafNull:
		return "null"
	case LeafBool:
		return "bool"
	case LeafNumber:
		return "number"
	case LeafString:
		return "string"
	case LeafBigInt:
		return "bigint"
	case LeafUndefined:
		return "undefined"
	case LeafSymbol:
		return "symbol"
	case LeafSpecialValue:
		return "special_value"
	default:
		return "unknown"
	}
}

// Shape is the recursive tagged tree of spec.md §3.2: it describes an
// object's keys, an array's item shapes and length, and leaf kinds —
// never leaf values. Implementations are ShapeLeaf, ShapeArray, and
// ShapeObject.
type Shape interface {
	isShape()
}

// ShapeLeaf is a Shape leaf.
type ShapeLeaf struct {
	LeafKind ShapeLeafKind
}

func (ShapeLeaf) isShape() {}

// ShapeArray describes a positional sequence; length is part of the
// shape (spec.md §3.2: "arrays of differing lengths yield distinct
// shapes").
type ShapeArray struct {
	Items []Shape
}

func (ShapeArray) isShape() {}

// ShapeObjectField is one entry of a ShapeObject, always stored in
// lexicographic key order — the canonical traversal order shared by
// the fingerprinter and the linearizer (spec.md §3.2).
type ShapeObjectField struct {
	Key   string
	Shape Shape
}

// ShapeObject describes a keyed record. Fields is always sorted by
// Key lexicographically.
type ShapeObject struct {
	Fields []ShapeObjectField
}

func (ShapeObject) isShape() {}

// ShapeOptions configures ExtractShape.
type ShapeOptions struct {
	// MaxDepth bounds recursion (spec.md §7: "configurable depth cap
	// (suggested: 256)"). Zero selects the default.
	MaxDepth int
}

// DefaultMaxDepth is the suggested depth cap from spec.md §7.
const DefaultMaxDepth = 256

func (o ShapeOptions) maxDepth() int {
	if o.MaxDepth > 0 {
		return o.MaxDepth
	}
	return DefaultMaxDepth
}

// ExtractShape derives the Shape of v (component C, spec.md §4.C).
// ExtractShape is a pure function of v's structure: it never looks at
// leaf values, only at kinds, key sets, and array lengths.
//
// Grounded on the reflect-kind-switch-then-recurse walk in
// other_examples' moul-go-agent shape_hash.go (jsonToShapeHash),
// adapted from reflect.Kind over arbitrary Go values to a type switch
// over the closed Value sum type, and from an unbounded walk to one
// bounded by ShapeOptions.MaxDepth per spec.md §7.
func ExtractShape(v Value, opts ShapeOptions) (Shape, error) {
	return extractShapeAt(v, 0, opts.maxDepth(), "$")
}

func extractShapeAt(v Value, depth, maxDepth int, path string) (Shape, error) {
	if depth > maxDepth {
		return nil, newShapeError(ErrDepthExceeded, path)
	}
	if v == nil {
		return ShapeLeaf{LeafKind: LeafNull}, nil
	}

	switch val := v.(type) {
	case Null:
		return ShapeLeaf{LeafKind: LeafNull}, nil
	case Undefined:
		return ShapeLeaf{LeafKind: LeafUndefined}, nil
	case Bool:
		return ShapeLeaf{LeafKind: LeafBool}, nil
	case Number:
		return ShapeLeaf{LeafKind: LeafNumber}, nil
	case String:
		return ShapeLeaf{LeafKind: LeafString}, nil
	case BigInt:
		return ShapeLeaf{LeafKind: LeafBigInt}, nil
	case DateValue, *MapValue, *SetValue, ErrorValue:
		// Rich scalars are opaque to shape regardless of internal
		// complexity (spec.md §3.2).
		return ShapeLeaf{LeafKind: LeafSpecialValue}, nil
	case *Array:
		items := make([]Shape, len(val.Items))
		for i, item := range val.Items {
			s, err := extractShapeAt(item, depth+1, maxDepth, arrayPath(path, i))
			if err != nil {
				return nil, err
			}
			items[i] = s
		}
		return ShapeArray{Items: items}, nil
	case *Object:
		return extractObjectShape(val, depth, maxDepth, path)
	default:
		return nil, newShapeError(ErrUnsupportedKind, path)
	}
}

func extractObjectShape(o *Object, depth, maxDepth int, path string) (Shape, error) {
	keys := make([]string, len(o.Fields))
	byKey := make(map[string]Value, len(o.Fields))
	for i, f := range o.Fields {
		keys[i] = f.Key
		byKey[f.Key] = f.Val
	}
	sort.Strings(keys)

	fields := make([]ShapeObjectField, len(keys))
	for i, k := range keys {
		s, err := extractShapeAt(byKey[k], depth+1, maxDepth, objectPath(path, k))
		if err != nil {
			return nil, err
		}
		fields[i] = ShapeObjectField{Key: k, Shape: s}
	}
	return ShapeObject{Fields: fields}, nil
}

func objectPath(parent, key string) string {
	var b strings.Builder
	b.WriteString(parent)
	b.WriteByte('.')
	b.WriteString(key)
	return b.String()
}

func arrayPath(parent string, idx int) string {
	var b strings.Builder
	b.WriteString(parent)
	b.WriteByte('[')
	b.WriteString(strconv.Itoa(idx))
	b.WriteByte(']')
	return b.String()
}
