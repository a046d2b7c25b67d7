package synpatico

// Linearize walks v in the same canonical order as ExtractShape and
// Fingerprint — object fields by lexicographic key, array items by
// index — and returns the flat, ordered sequence of leaf values
// (component E, spec.md §4.E). Rich scalars occupy exactly one slot
// regardless of their internal complexity; they are never recursed
// into here; ToEnvelope/FromEnvelope (envelope.go) handle their
// internal shape separately, at the packet layer.
func Linearize(v Value) []Value {
	var out []Value
	linearizeInto(v, &out)
	return out
}

func linearizeInto(v Value, out *[]Value) {
	if v == nil {
		*out = append(*out, Null{})
		return
	}
	switch val := v.(type) {
	case *Object:
		for _, k := range sortedFieldKeys(val) {
			child, _ := val.Get(k)
			linearizeInto(child, out)
		}
	case *Array:
		for _, item := range val.Items {
			linearizeInto(item, out)
		}
	default:
		// Every other Kind — plain scalars and all four rich scalars —
		// is a Shape leaf and so occupies a single slot.
		*out = append(*out, v)
	}
}

func sortedFieldKeys(o *Object) []string {
	keys := make([]string, len(o.Fields))
	for i, f := range o.Fields {
		keys[i] = f.Key
	}
	sortStrings(keys)
	return keys
}

// reconstructCursor walks a flat value sequence left to right,
// handing out one value per call to next.
type reconstructCursor struct {
	values []Value
	pos    int
}

func (c *reconstructCursor) next(path string) (Value, error) {
	if c.pos >= len(c.values) {
		return nil, newShapeError(ErrEmptyValues, path)
	}
	v := c.values[c.pos]
	c.pos++
	return v, nil
}

// Reconstruct is the inverse of Linearize: it walks shape in the same
// canonical order, consuming one value per Shape leaf and recursing
// into ShapeArray/ShapeObject, rebuilding a Value tree (component E,
// spec.md §4.E "reconstruct"). The caller is responsible for running
// FromEnvelope over the result; Reconstruct itself is unaware of the
// envelope (spec.md §4.F separates the two steps).
//
// The contract from spec.md §4.E is that linearize(v) and shape_of(v)
// must agree; Reconstruct performs no validation beyond the value
// count — a values sequence shorter than shape demands yields
// ErrEmptyValues wrapped in a ShapeError, and a longer one yields
// ErrShapeMismatch, consistent with §7's decode-time failure mode.
func Reconstruct(values []Value, shape Shape) (Value, error) {
	cur := &reconstructCursor{values: values}
	v, err := reconstructAt(cur, shape, "$")
	if err != nil {
		return nil, err
	}
	if cur.pos != len(values) {
		return nil, newShapeCountError("$", cur.pos, len(values))
	}
	return v, nil
}

func reconstructAt(cur *reconstructCursor, shape Shape, path string) (Value, error) {
	switch s := shape.(type) {
	case ShapeLeaf:
		return cur.next(path)
	case ShapeArray:
		items := make([]Value, len(s.Items))
		for i, itemShape := range s.Items {
			v, err := reconstructAt(cur, itemShape, arrayPath(path, i))
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return &Array{Items: items}, nil
	case ShapeObject:
		fields := make([]Field, len(s.Fields))
		for i, f := range s.Fields {
			v, err := reconstructAt(cur, f.Shape, objectPath(path, f.Key))
			if err != nil {
				return nil, err
			}
			fields[i] = Field{Key: f.Key, Val: v}
		}
		return &Object{Fields: fields}, nil
	default:
		return nil, newShapeError(ErrUnsupportedKind, path)
	}
}
