package synpatico

import (
	"strconv"
	"strings"
)

// StructureId is the textual identifier produced by the fingerprinter
// (spec.md §3.4): a concatenation of per-depth-level hash parts,
// "L0:h0-L1:h1-...-Ln:hn", with the special-cased constants "{}" and
// "[]" for the empty record and empty sequence.
type StructureId string

const (
	emptyObjectID StructureId = "{}"
	emptyArrayID  StructureId = "[]"
)

// typeBits holds the fixed 32-bit type-bit contribution for each Kind
// (spec.md §4.B.6). These constants are part of the wire contract:
// two independent processes must derive the same StructureId for the
// same structure, so the values below must never change once shipped.
// Chosen arbitrarily but spaced out in the 32-bit space to keep the
// per-level accumulator's avalanche behavior good even for
// single-field structures; see DESIGN.md decision #4 for why the
// accumulators themselves are uint64.
var typeBits = map[Kind]uint64{
	KindNull:      0x9e3779b9,
	KindUndefined: 0x85ebca6b,
	KindBool:      0xc2b2ae35,
	KindNumber:    0x27d4eb2f,
	KindString:    0x165667b1,
	KindBigInt:    0xd3a2646c,
	KindSymbol:    0xfd7046c5,
	KindArray:     0xb55a4f09,
	KindObject:    0x2545f491,
	KindDate:      0x94d049bb,
	KindMap:       0x6c62272e,
	KindSet:       0x1b873593,
	KindErr:       0xe6546b64,
}

// FingerprintOptions configures Fingerprint.
type FingerprintOptions struct {
	// MaxDepth bounds traversal depth (spec.md §7). Zero selects
	// DefaultMaxDepth.
	MaxDepth int

	// NewIDOnCollision switches the stateful collision mode described
	// in spec.md §4.B: when true, H[0] is replaced by the current
	// value of CollisionCounter[signature], which is then
	// incremented. Counters is required when this is true.
	NewIDOnCollision bool
	Counters         *CollisionCounter
}

func (o FingerprintOptions) maxDepth() int {
	if o.MaxDepth > 0 {
		return o.MaxDepth
	}
	return DefaultMaxDepth
}

// FingerprintResult is the output of Fingerprint (spec.md §4.B):
// the StructureId, the number of levels past the root the traversal
// reached, and the collision counter value used (0 when collision
// mode is off).
type FingerprintResult struct {
	ID             StructureId
	Levels         int
	CollisionCount int
}

// fingerprintState carries the per-call mutable traversal state: the
// per-level accumulators and the cycle-detection stack. It is always
// constructed fresh per Fingerprint call, so the traversal shares no
// state between calls; the only cross-call state is the
// CollisionCounter that collision mode consults.
type fingerprintState struct {
	levels  map[int]uint64
	maxSeen int
	onStack map[Value]string
}

// Fingerprint computes the StructureId of v (component B, spec.md
// §4.B). It returns in finite time for every value, including cyclic
// ones (spec.md §8.1.9). It is not total: it returns ErrDepthExceeded
// when v nests deeper than opts.MaxDepth, and an error when
// opts.NewIDOnCollision is set without opts.Counters.
//
// Grounded on other_examples' moul-go-agent shape_hash.go for the
// "sort object keys, then hash" discipline, generalized to per-depth
// accumulators, positional multipliers, and explicit cycle handling
// per spec.md §4.B.
func Fingerprint(v Value, opts FingerprintOptions) (FingerprintResult, error) {
	if v == nil {
		v = Null{}
	}

	switch val := v.(type) {
	case *Object:
		if len(val.Fields) == 0 {
			return FingerprintResult{ID: emptyObjectID, Levels: 0}, nil
		}
	case *Array:
		if len(val.Items) == 0 {
			return FingerprintResult{ID: emptyArrayID, Levels: 0}, nil
		}
	default:
		if !isContainerKind(v.Kind()) {
			t := typeBits[v.Kind()]
			id := StructureId("L0:" + hex64(t) + "-L1:" + hex64(t))
			return FingerprintResult{ID: id, Levels: 1}, nil
		}
	}

	st := &fingerprintState{
		levels:  make(map[int]uint64),
		onStack: make(map[Value]string),
	}
	maxDepth := opts.maxDepth()
	if err := st.visit(v, 0, "$", maxDepth); err != nil {
		return FingerprintResult{}, err
	}

	signature := buildSignature(st.levels, st.maxSeen)

	collisionCount := 0
	h0 := st.levels[0]
	if opts.NewIDOnCollision {
		if opts.Counters == nil {
			return FingerprintResult{}, newFingerprintError(ErrShapeMismatch, "$")
		}
		collisionCount = opts.Counters.Next(signature)
		h0 = uint64(collisionCount)
	}

	id := StructureId("L0:" + hex64(h0) + "-" + signature)
	return FingerprintResult{ID: id, Levels: st.maxSeen, CollisionCount: collisionCount}, nil
}

func isContainerKind(k Kind) bool {
	return k == KindObject || k == KindArray
}

// buildSignature renders H[1..maxSeen] as "L1:h1-L2:h2-..." (spec.md
// §3.4, §4.B: "the signature is H[1..n]… concatenated").
func buildSignature(levels map[int]uint64, maxSeen int) string {
	var b strings.Builder
	for d := 1; d <= maxSeen; d++ {
		if d > 1 {
			b.WriteByte('-')
		}
		b.WriteString("L")
		b.WriteString(strconv.Itoa(d))
		b.WriteByte(':')
		b.WriteString(hex64(levels[d]))
	}
	return b.String()
}

func hex64(v uint64) string {
	return strconv.FormatUint(v, 16)
}

func (st *fingerprintState) ensureLevel(d int) uint64 {
	h, ok := st.levels[d]
	if !ok {
		shift := d
		if shift > 63 {
			shift = 63
		}
		h = uint64(1) << uint(shift)
		st.levels[d] = h
	}
	if d > st.maxSeen {
		st.maxSeen = d
	}
	return h
}

func (st *fingerprintState) addToLevel(d int, amount uint64) {
	st.ensureLevel(d)
	st.levels[d] += amount
}

// visit implements the depth-first traversal of spec.md §4.B step 3,
// with cycle handling per step 4.
func (st *fingerprintState) visit(v Value, depth int, path string, maxDepth int) error {
	if depth > maxDepth {
		return newFingerprintError(ErrDepthExceeded, path)
	}
	st.ensureLevel(depth)
	st.addToLevel(depth, typeBits[v.Kind()])

	switch val := v.(type) {
	case *Object:
		return st.visitObject(val, depth, path, maxDepth)
	case *Array:
		return st.visitArray(val, depth, path, maxDepth)
	default:
		// Scalars and rich scalars are terminal: their type bit was
		// already folded into H[depth] above.
		return nil
	}
}

func (st *fingerprintState) visitObject(o *Object, depth int, path string, maxDepth int) error {
	if sig, onStack := st.onStack[Value(o)]; onStack {
		st.addToLevel(depth, uint64(keyBit("circular:"+sig)))
		return nil
	}

	keys := make([]string, len(o.Fields))
	byKey := make(map[string]Value, len(o.Fields))
	for i, f := range o.Fields {
		keys[i] = f.Key
		byKey[f.Key] = f.Val
	}
	sortStrings(keys)

	sig := path + "." + strings.Join(keys, ",")
	st.onStack[Value(o)] = sig
	defer delete(st.onStack, Value(o))

	for i, k := range keys {
		m := uint64(i + 1)
		child := byKey[k]
		st.addToLevel(depth, uint64(keyBit(k))*m+typeBits[child.Kind()]*m)
		if err := st.visit(child, depth+1, objectPath(path, k), maxDepth); err != nil {
			return err
		}
	}
	return nil
}

func (st *fingerprintState) visitArray(a *Array, depth int, path string, maxDepth int) error {
	if sig, onStack := st.onStack[Value(a)]; onStack {
		st.addToLevel(depth, uint64(keyBit("circular:"+sig)))
		return nil
	}

	sig := path + "." + "length:" + strconv.Itoa(len(a.Items))
	st.onStack[Value(a)] = sig
	defer delete(st.onStack, Value(a))

	st.addToLevel(depth, uint64(keyBit("length:"+strconv.Itoa(len(a.Items)))))
	for i, item := range a.Items {
		m := uint64(i + 1)
		indexKey := "[" + strconv.Itoa(i) + "]"
		st.addToLevel(depth, uint64(arrayIndexKeyBit(indexKey))*m+typeBits[item.Kind()]*m)
		if err := st.visit(item, depth+1, arrayPath(path, i), maxDepth); err != nil {
			return err
		}
	}
	return nil
}

func sortStrings(s []string) {
	// Insertion sort in byte-wise lexicographic order, the canonical
	// key order. sortedFieldKeys in linearize.go calls this too;
	// shape.go sorts with sort.Strings, which yields the same order.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

