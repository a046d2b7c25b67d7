package synpatico

// Envelope type markers (spec.md §4.D).
const (
	envelopeTypeDate  = "Date"
	envelopeTypeMap   = "Map"
	envelopeTypeSet   = "Set"
	envelopeTypeError = "Error"
)

// ToEnvelope rewrites v so that every rich scalar (Date/Map/Set/Error)
// is replaced by its {__type, value} wrapper, recursing into arrays
// and objects and leaving plain scalars untouched (component D,
// spec.md §4.D "processForSerialization"). The Shape of the result is
// the object shape of the wrapper, not the rich scalar's Leaf shape —
// ToEnvelope is only ever called from within Encode, after Shape has
// already been derived from the unwrapped value.
func ToEnvelope(v Value) Value {
	if v == nil {
		return Null{}
	}
	switch val := v.(type) {
	case *Array:
		items := make([]Value, len(val.Items))
		for i, item := range val.Items {
			items[i] = ToEnvelope(item)
		}
		return &Array{Items: items}
	case *Object:
		fields := make([]Field, len(val.Fields))
		for i, f := range val.Fields {
			fields[i] = Field{Key: f.Key, Val: ToEnvelope(f.Val)}
		}
		return &Object{Fields: fields}
	case DateValue:
		return wrapEnvelope(envelopeTypeDate, String(val.ISO8601))
	case *MapValue:
		entries := make([]Value, len(val.Entries))
		for i, e := range val.Entries {
			entries[i] = &Array{Items: []Value{ToEnvelope(e.Key), ToEnvelope(e.Val)}}
		}
		return wrapEnvelope(envelopeTypeMap, &Array{Items: entries})
	case *SetValue:
		items := make([]Value, len(val.Items))
		for i, item := range val.Items {
			items[i] = ToEnvelope(item)
		}
		return wrapEnvelope(envelopeTypeSet, &Array{Items: items})
	case ErrorValue:
		fields := []Field{
			{Key: "message", Val: String(val.Message)},
			{Key: "name", Val: String(val.Name)},
		}
		if val.HasStack {
			fields = append(fields, Field{Key: "stack", Val: String(val.Stack)})
		}
		return wrapEnvelope(envelopeTypeError, &Object{Fields: fields})
	default:
		// Plain scalars (Null, Undefined, Bool, Number, String, BigInt)
		// pass through opaquely.
		return v
	}
}

func wrapEnvelope(typ string, value Value) Value {
	return &Object{Fields: []Field{
		{Key: "__type", Val: String(typ)},
		{Key: "value", Val: value},
	}}
}

// FromEnvelope is the inverse of ToEnvelope: it recognizes
// {__type, value} wrappers for the four known rich scalars and
// rebuilds the corresponding Value, recursing through plain arrays
// and objects. An object carrying an unrecognized __type is returned
// as its bare .value, per spec.md §4.D's forward-compatibility rule —
// this package never fails decoding because of a marker it doesn't
// yet know about.
func FromEnvelope(v Value) Value {
	if v == nil {
		return Null{}
	}
	switch val := v.(type) {
	case *Array:
		items := make([]Value, len(val.Items))
		for i, item := range val.Items {
			items[i] = FromEnvelope(item)
		}
		return &Array{Items: items}
	case *Object:
		if typ, inner, ok := unwrapEnvelope(val); ok {
			return decodeEnvelope(typ, inner)
		}
		fields := make([]Field, len(val.Fields))
		for i, f := range val.Fields {
			fields[i] = Field{Key: f.Key, Val: FromEnvelope(f.Val)}
		}
		return &Object{Fields: fields}
	default:
		return v
	}
}

// unwrapEnvelope reports whether o looks like an envelope wrapper
// (exactly the shape {__type, value}) and, if so, returns its marker
// and raw inner value.
func unwrapEnvelope(o *Object) (typ string, inner Value, ok bool) {
	typV, hasType := o.Get("__type")
	valueV, hasValue := o.Get("value")
	if !hasType || !hasValue || len(o.Fields) != 2 {
		return "", nil, false
	}
	s, isString := typV.(String)
	if !isString {
		return "", nil, false
	}
	return string(s), valueV, true
}

func decodeEnvelope(typ string, inner Value) Value {
	switch typ {
	case envelopeTypeDate:
		if s, ok := inner.(String); ok {
			return DateValue{ISO8601: string(s)}
		}
		return inner
	case envelopeTypeMap:
		arr, ok := inner.(*Array)
		if !ok {
			return inner
		}
		entries := make([]MapEntry, 0, len(arr.Items))
		for _, pair := range arr.Items {
			pairArr, ok := pair.(*Array)
			if !ok || len(pairArr.Items) != 2 {
				continue
			}
			entries = append(entries, MapEntry{
				Key: FromEnvelope(pairArr.Items[0]),
				Val: FromEnvelope(pairArr.Items[1]),
			})
		}
		return &MapValue{Entries: entries}
	case envelopeTypeSet:
		arr, ok := inner.(*Array)
		if !ok {
			return inner
		}
		items := make([]Value, len(arr.Items))
		for i, item := range arr.Items {
			items[i] = FromEnvelope(item)
		}
		return &SetValue{Items: items}
	case envelopeTypeError:
		obj, ok := inner.(*Object)
		if !ok {
			return inner
		}
		ev := ErrorValue{}
		if m, ok := obj.Get("message"); ok {
			if s, ok := m.(String); ok {
				ev.Message = string(s)
			}
		}
		if n, ok := obj.Get("name"); ok {
			if s, ok := n.(String); ok {
				ev.Name = string(s)
			}
		}
		if s, ok := obj.Get("stack"); ok {
			if ss, ok := s.(String); ok {
				ev.Stack = string(ss)
				ev.HasStack = true
			}
		}
		return ev
	default:
		// Unknown marker: forward-compatibility rule from spec.md §4.D
		// — return the bare value, not an error.
		return FromEnvelope(inner)
	}
}
