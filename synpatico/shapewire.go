package synpatico

// ShapeWire is the tagged, self-describing wire form of Shape.
//
// Shape itself is a non-empty interface (isShape()) with no exported
// fields, so no format's reflection-based (Un)Marshal can populate it:
// there is nothing to point a "kind" discriminator at except a
// concrete struct. ShapeWire is that struct — grounded on the same
// lowering Packet's MarshalJSON already applies to Value via
// ValueToAny/ValueFromAny, generalized so it works for every
// registered codec (json/yaml/msgpack/xml/bson), not just JSON: a
// plain tagged struct with no interface fields round-trips through
// reflection-based marshaling in all five without any codec-specific
// Marshaler interface.
type ShapeWire struct {
	Kind   string           `json:"kind" yaml:"kind" bson:"kind" xml:"kind"`
	Leaf   string           `json:"leaf,omitempty" yaml:"leaf,omitempty" bson:"leaf,omitempty" xml:"leaf,omitempty"`
	Items  []ShapeWire      `json:"items,omitempty" yaml:"items,omitempty" bson:"items,omitempty" xml:"items,omitempty"`
	Fields []ShapeFieldWire `json:"fields,omitempty" yaml:"fields,omitempty" bson:"fields,omitempty" xml:"fields,omitempty"`
}

// ShapeFieldWire is one entry of a ShapeWire object, the wire form of
// ShapeObjectField.
type ShapeFieldWire struct {
	Key   string    `json:"key" yaml:"key" bson:"key" xml:"key"`
	Shape ShapeWire `json:"shape" yaml:"shape" bson:"shape" xml:"shape"`
}

// Discriminator values for ShapeWire.Kind.
const (
	shapeWireKindLeaf   = "leaf"
	shapeWireKindArray  = "array"
	shapeWireKindObject = "object"
)

// ShapeToWire lowers s into its tagged wire form.
func ShapeToWire(s Shape) ShapeWire {
	switch v := s.(type) {
	case ShapeLeaf:
		return ShapeWire{Kind: shapeWireKindLeaf, Leaf: v.LeafKind.String()}
	case ShapeArray:
		items := make([]ShapeWire, len(v.Items))
		for i, item := range v.Items {
			items[i] = ShapeToWire(item)
		}
		return ShapeWire{Kind: shapeWireKindArray, Items: items}
	case ShapeObject:
		fields := make([]ShapeFieldWire, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = ShapeFieldWire{Key: f.Key, Shape: ShapeToWire(f.Shape)}
		}
		return ShapeWire{Kind: shapeWireKindObject, Fields: fields}
	default:
		// Shape is a closed set (ShapeLeaf/ShapeArray/ShapeObject); a nil
		// or foreign implementation lowers to the null leaf rather than
		// panicking, matching this package's no-throw-on-malformed-input
		// policy (spec.md §7).
		return ShapeWire{Kind: shapeWireKindLeaf, Leaf: LeafNull.String()}
	}
}

// ShapeFromWire is the inverse of ShapeToWire. It returns a
// *ShapeError wrapping ErrUnsupportedKind for a wire value whose Kind
// or Leaf discriminator is not one this package knows how to raise
// back into a Shape.
func ShapeFromWire(w ShapeWire) (Shape, error) {
	switch w.Kind {
	case shapeWireKindLeaf:
		lk, ok := parseLeafKind(w.Leaf)
		if !ok {
			return nil, newShapeError(ErrUnsupportedKind, "$")
		}
		return ShapeLeaf{LeafKind: lk}, nil
	case shapeWireKindArray:
		items := make([]Shape, len(w.Items))
		for i, item := range w.Items {
			s, err := ShapeFromWire(item)
			if err != nil {
				return nil, err
			}
			items[i] = s
		}
		return ShapeArray{Items: items}, nil
	case shapeWireKindObject:
		fields := make([]ShapeObjectField, len(w.Fields))
		for i, f := range w.Fields {
			s, err := ShapeFromWire(f.Shape)
			if err != nil {
				return nil, err
			}
			fields[i] = ShapeObjectField{Key: f.Key, Shape: s}
		}
		return ShapeObject{Fields: fields}, nil
	default:
		return nil, newShapeError(ErrUnsupportedKind, "$")
	}
}

// parseLeafKind is the inverse of ShapeLeafKind.String.
func parseLeafKind(s string) (ShapeLeafKind, bool) {
	switch s {
	case "null":
		return LeafNull, true
	case "bool":
		return LeafBool, true
	case "number":
		return LeafNumber, true
	case "string":
		return LeafString, true
	case "bigint":
		return LeafBigInt, true
	case "undefined":
		return LeafUndefined, true
	case "symbol":
		return LeafSymbol, true
	case "special_value":
		return LeafSpecialValue, true
	default:
		return 0, false
	}
}
